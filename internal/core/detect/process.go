package detect

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dogtracer/dogtracer/internal/core/db"
	"github.com/dogtracer/dogtracer/internal/core/models"
)

const (
	// MaxRetries bounds detection attempts per moment.
	MaxRetries = 3
	// RetryDelay spaces retry attempts.
	RetryDelay = 5 * time.Second
)

// Processor runs detection for moments and writes results back: the
// detection record, the moment's inferred mood, and resolved entity links.
type Processor struct {
	db     *db.DB
	client *Client
	logger zerolog.Logger

	// retryDelay is overridable in tests
	retryDelay time.Duration
}

// NewProcessor creates a detection processor.
func NewProcessor(database *db.DB, client *Client, logger zerolog.Logger) *Processor {
	return &Processor{
		db:         database,
		client:     client,
		logger:     logger,
		retryDelay: RetryDelay,
	}
}

// Result is the outcome of processing one moment.
type Result struct {
	MomentID string
	Status   db.DetectionStatus
	Entities []LabeledEntity
	Mood     models.MomentMood
	Attempts int
}

// ProcessMoment runs detection for one moment, retrying transient failures
// up to MaxRetries with RetryDelay spacing. On success the moment's mood is
// set from the inference and resolved entities are linked to the moment.
func (p *Processor) ProcessMoment(ctx context.Context, momentID string) (*Result, error) {
	moment, err := p.db.MomentByID(momentID)
	if err != nil {
		return nil, err
	}
	if moment == nil {
		return nil, fmt.Errorf("moment %s not found", momentID)
	}
	if moment.PhotoPath == "" {
		return nil, fmt.Errorf("moment %s has no photo", momentID)
	}

	photoDataURL, err := PhotoDataURL(moment.PhotoPath)
	if err != nil {
		return nil, err
	}

	if err := p.db.SaveDetection(&db.Detection{
		MomentID: momentID,
		Status:   db.DetectionProcessing,
	}); err != nil {
		return nil, err
	}

	var resp *Response
	var lastErr error
	attempts := 0
	for attempts < MaxRetries {
		attempts++
		resp, lastErr = p.client.Detect(ctx, photoDataURL)
		if lastErr == nil {
			break
		}
		p.logger.Warn().
			Str("moment_id", momentID).
			Int("attempt", attempts).
			Err(lastErr).
			Msg("detection attempt failed")
		if attempts < MaxRetries {
			select {
			case <-time.After(p.retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	if lastErr != nil {
		if err := p.db.SaveDetection(&db.Detection{
			MomentID:     momentID,
			Status:       db.DetectionFailed,
			ErrorMessage: lastErr.Error(),
			RetryCount:   attempts,
		}); err != nil {
			return nil, err
		}
		return &Result{MomentID: momentID, Status: db.DetectionFailed, Attempts: attempts},
			fmt.Errorf("detection failed after %d attempts: %w", attempts, lastErr)
	}

	labeled, err := p.applyResult(momentID, resp)
	if err != nil {
		return nil, err
	}

	result := &Result{
		MomentID: momentID,
		Status:   db.DetectionCompleted,
		Entities: labeled,
		Attempts: attempts,
	}
	if resp.MoodInference != nil {
		result.Mood = resp.MoodInference.Mood
	}

	rawEntities, err := json.Marshal(resp.Entities)
	if err != nil {
		return nil, err
	}
	detection := &db.Detection{
		MomentID:    momentID,
		Status:      db.DetectionCompleted,
		Entities:    rawEntities,
		RetryCount:  attempts - 1,
		ProcessedAt: time.Now().UTC(),
	}
	if resp.MoodInference != nil {
		detection.Mood = string(resp.MoodInference.Mood)
		conf := resp.MoodInference.Confidence
		detection.MoodConfidence = &conf
	}
	if err := p.db.SaveDetection(detection); err != nil {
		return nil, err
	}

	return result, nil
}

// applyResult resolves labels against known entities, links the resolved
// ones to the moment, and writes the inferred mood.
func (p *Processor) applyResult(momentID string, resp *Response) ([]LabeledEntity, error) {
	profile, err := p.db.Profile()
	if err != nil {
		return nil, err
	}
	dogs, err := p.db.ListEntities(models.EntityDog)
	if err != nil {
		return nil, err
	}
	humans, err := p.db.ListEntities(models.EntityHuman)
	if err != nil {
		return nil, err
	}

	labeled := LabelEntities(resp.Entities, profile, dogs, humans)

	var entityIDs []string
	for _, le := range labeled {
		if le.EntityID != "" {
			entityIDs = append(entityIDs, le.EntityID)
		}
	}
	if err := p.db.AddMomentEntities(momentID, entityIDs); err != nil {
		return nil, err
	}

	if resp.MoodInference != nil {
		err := p.db.UpdateMomentMood(momentID, resp.MoodInference.Mood, resp.MoodInference.Confidence)
		if err != nil {
			return nil, err
		}
	}

	return labeled, nil
}

// ProcessPending runs detection for every moment that has a photo and no
// mood yet. Failures are logged and skipped so one bad moment does not stop
// the batch.
func (p *Processor) ProcessPending(ctx context.Context) ([]Result, error) {
	moments, err := p.db.MomentsWithoutMood()
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, m := range moments {
		if m.PhotoPath == "" {
			continue
		}
		res, err := p.ProcessMoment(ctx, m.ID)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			p.logger.Error().Str("moment_id", m.ID).Err(err).Msg("detection failed")
			if res != nil {
				results = append(results, *res)
			}
			continue
		}
		results = append(results, *res)
	}
	return results, nil
}

// PhotoDataURL reads a photo file and encodes it as a data URL, the format
// the detection API validates.
func PhotoDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}

	mimeType := "image/jpeg"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		mimeType = "image/png"
	case ".gif":
		mimeType = "image/gif"
	case ".webp":
		mimeType = "image/webp"
	case ".heic":
		mimeType = "image/heic"
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

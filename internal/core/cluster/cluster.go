// Package cluster groups a day's moments into activity sessions.
//
// Clustering is greedy and chained: moments are sorted by timestamp and each
// moment joins the current cluster if it is close enough in time (and space,
// when both sides carry GPS) to the immediately preceding moment. Sessions
// are fully derived values and can be recomputed from the day's moments alone.
package cluster

import (
	"fmt"
	"sort"
	"time"

	"github.com/dogtracer/dogtracer/internal/core/geo"
	"github.com/dogtracer/dogtracer/internal/core/models"
)

const (
	// MaxGap is the largest timestamp gap between consecutive moments of
	// one session.
	MaxGap = 30 * time.Minute
	// MaxDistanceMeters is the largest great-circle distance between
	// consecutive moments that both carry GPS.
	MaxDistanceMeters = 100.0
)

// tagFlags maps moment tags to derived behavior flags. Tags without an
// entry (walk, vet, bath) contribute no flag.
var tagFlags = map[models.MomentTag]models.BehaviorFlag{
	models.TagPlay:     models.FlagSocial,
	models.TagRest:     models.FlagRest,
	models.TagTraining: models.FlagTraining,
	models.TagFeeding:  models.FlagFood,
	models.TagSocial:   models.FlagSocial,
	models.TagStress:   models.FlagTrigger,
}

// typePriority decides the session type: the first tag in this order that
// any cluster member carries wins; a cluster with none of them is rest.
var typePriority = []struct {
	tag models.MomentTag
	typ models.SessionType
}{
	{models.TagWalk, models.SessionWalk},
	{models.TagPlay, models.SessionPlay},
	{models.TagTraining, models.SessionTraining},
	{models.TagSocial, models.SessionSocial},
	{models.TagRest, models.SessionRest},
}

// BuildSessions partitions moments (all from one calendar date) into derived
// sessions. The input is not mutated. Returns nil for an empty day.
func BuildSessions(moments []models.Moment) []models.Session {
	if len(moments) == 0 {
		return nil
	}

	sorted := make([]models.Moment, len(moments))
	copy(sorted, moments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var clusters [][]models.Moment
	current := []models.Moment{sorted[0]}
	for i := 1; i < len(sorted); i++ {
		if shouldCluster(&sorted[i-1], &sorted[i]) {
			current = append(current, sorted[i])
		} else {
			clusters = append(clusters, current)
			current = []models.Moment{sorted[i]}
		}
	}
	clusters = append(clusters, current)

	dateKey := sorted[0].DateKey()
	sessions := make([]models.Session, 0, len(clusters))
	for i, c := range clusters {
		sessions = append(sessions, buildSession(dateKey, i+1, c))
	}
	return sessions
}

// shouldCluster applies the chain rule between two consecutive moments:
// the time gap must be within MaxGap, and when both moments carry GPS the
// distance must be within MaxDistanceMeters. Missing GPS on either side
// falls back to the time rule alone.
func shouldCluster(prev, curr *models.Moment) bool {
	gap := curr.Timestamp.Sub(prev.Timestamp)
	if gap < 0 {
		gap = -gap
	}
	if gap > MaxGap {
		return false
	}
	if prev.GPS != nil && curr.GPS != nil {
		d := geo.DistanceMeters(
			prev.GPS.Latitude, prev.GPS.Longitude,
			curr.GPS.Latitude, curr.GPS.Longitude,
		)
		if d > MaxDistanceMeters {
			return false
		}
	}
	return true
}

func buildSession(dateKey string, ordinal int, cluster []models.Moment) models.Session {
	sorted := make([]models.Moment, len(cluster))
	copy(sorted, cluster)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	momentIDs := make([]string, len(cluster))
	for i, m := range cluster {
		momentIDs[i] = m.ID
	}

	return models.Session{
		// Deterministic id: rebuilding an unchanged day reproduces the
		// same sessions byte for byte.
		ID:            fmt.Sprintf("session_%s_%d", dateKey, ordinal),
		Type:          classifyType(cluster),
		StartTime:     sorted[0].Timestamp,
		EndTime:       sorted[len(sorted)-1].Timestamp,
		MomentIDs:     momentIDs,
		KeyPhotoIDs:   selectKeyPhotos(sorted),
		BehaviorFlags: deriveFlags(cluster),
		PlaceLabel:    firstPlaceLabel(cluster),
	}
}

func classifyType(cluster []models.Moment) models.SessionType {
	for _, p := range typePriority {
		for _, m := range cluster {
			if m.HasTag(p.tag) {
				return p.typ
			}
		}
	}
	return models.SessionRest
}

// selectKeyPhotos picks up to three representative moments from the
// time-sorted cluster: always the first, the middle for clusters of three
// or more, and the last for clusters of two or more.
func selectKeyPhotos(sorted []models.Moment) []string {
	picks := []string{sorted[0].ID}
	if len(sorted) >= 3 {
		picks = append(picks, sorted[len(sorted)/2].ID)
	}
	if len(sorted) >= 2 {
		picks = append(picks, sorted[len(sorted)-1].ID)
	}

	seen := make(map[string]bool, len(picks))
	unique := picks[:0]
	for _, id := range picks {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) > 3 {
		unique = unique[:3]
	}
	return unique
}

// deriveFlags collects the set of behavior flags implied by every tag in
// the cluster, emitted in canonical flag order.
func deriveFlags(cluster []models.Moment) []models.BehaviorFlag {
	present := make(map[models.BehaviorFlag]bool)
	for _, m := range cluster {
		for _, tag := range m.Tags {
			if flag, ok := tagFlags[tag]; ok {
				present[flag] = true
			}
		}
	}

	flags := make([]models.BehaviorFlag, 0, len(present))
	for _, flag := range models.BehaviorFlags {
		if present[flag] {
			flags = append(flags, flag)
		}
	}
	return flags
}

func firstPlaceLabel(cluster []models.Moment) string {
	for _, m := range cluster {
		if m.GPS != nil && m.GPS.PlaceLabel != "" {
			return m.GPS.PlaceLabel
		}
	}
	return ""
}

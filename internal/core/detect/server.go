package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// ServerConfig holds the mock detection service configuration.
// Environment variables are prefixed with DOGTRACER_DETECT_.
type ServerConfig struct {
	Port int `envconfig:"PORT" default:"8090"`

	// Simulated processing latency bounds
	MinLatencyMs int `envconfig:"MIN_LATENCY_MS" default:"500"`
	MaxLatencyMs int `envconfig:"MAX_LATENCY_MS" default:"1500"`

	// Fraction of requests that fail with 503
	FailureRate float64 `envconfig:"FAILURE_RATE" default:"0.05"`
}

// NewServerConfig parses the configuration from environment variables.
func NewServerConfig() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := envconfig.Process("DOGTRACER_DETECT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &cfg, nil
}

// Addr returns the listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Server is the mock detection HTTP service.
type Server struct {
	cfg    *ServerConfig
	gen    *Generator
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewServer creates a mock detection server.
func NewServer(cfg *ServerConfig, rng *rand.Rand, logger zerolog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		gen:    NewGenerator(rng),
		rng:    rng,
		logger: logger,
	}
}

// Router builds the HTTP router.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/detect", s.handleDetect).Methods(http.MethodPost)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	return r
}

// ListenAndServe runs the server until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Addr()).Msg("mock detection service listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Error: "invalid request body"})
		return
	}

	if req.PhotoDataURL == "" {
		writeJSON(w, http.StatusBadRequest, Response{Error: "photoDataUrl is required and must be a string"})
		return
	}
	if !strings.HasPrefix(req.PhotoDataURL, "data:image/") {
		writeJSON(w, http.StatusBadRequest, Response{Error: "Invalid image data URL format"})
		return
	}

	// Simulated processing latency
	latency := time.Duration(s.cfg.MinLatencyMs) * time.Millisecond
	if spread := s.cfg.MaxLatencyMs - s.cfg.MinLatencyMs; spread > 0 {
		latency += time.Duration(s.rng.Intn(spread)) * time.Millisecond
	}
	select {
	case <-time.After(latency):
	case <-r.Context().Done():
		return
	}

	if s.rng.Float64() < s.cfg.FailureRate {
		s.logger.Warn().Msg("simulated transient failure")
		writeJSON(w, http.StatusServiceUnavailable, Response{Error: "Temporary server error, please retry"})
		return
	}

	entities := s.gen.Detections()
	mood := s.gen.MoodInference()

	s.logger.Info().
		Int("entities", len(entities)).
		Str("mood", string(mood.Mood)).
		Dur("latency", time.Since(start)).
		Msg("detection completed")

	writeJSON(w, http.StatusOK, Response{
		Success:       true,
		Entities:      entities,
		MoodInference: &mood,
		ProcessedAt:   time.Now().UnixMilli(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

package cli

import (
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dogtracer/dogtracer/internal/core/detect"
)

var mockapiCmd = &cobra.Command{
	Use:   "mockapi",
	Short: "Run the mock detection service",
	Long: `Start the stand-in detection HTTP service. It fabricates entity
detections and mood inference with realistic latency and an occasional
simulated failure.

Configuration via environment: DOGTRACER_DETECT_PORT (default 8090),
DOGTRACER_DETECT_MIN_LATENCY_MS, DOGTRACER_DETECT_MAX_LATENCY_MS,
DOGTRACER_DETECT_FAILURE_RATE.`,
	RunE: runMockAPI,
}

func init() {
	rootCmd.AddCommand(mockapiCmd)
}

func runMockAPI(cmd *cobra.Command, args []string) error {
	cfg, err := detect.NewServerConfig()
	if err != nil {
		return err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	srv := detect.NewServer(cfg, rng, logger)
	return srv.ListenAndServe(cmd.Context())
}

package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dogtracer/dogtracer/internal/core/config"
	"github.com/dogtracer/dogtracer/internal/core/db"
	"github.com/dogtracer/dogtracer/internal/core/detect"
)

var detectCmd = &cobra.Command{
	Use:   "detect [moment-id]",
	Short: "Run detection for moments",
	Long: `Send a moment's photo to the detection service and write the
inferred mood and recognized entities back onto the moment. Transient
failures are retried up to 3 times.

With no arguments, processes every moment that has a photo and no mood yet.

Examples:
  dogtracer detect moment_abc123
  dogtracer detect
  dogtracer detect --url http://localhost:9000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDetect,
}

var detectURL string

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().StringVar(&detectURL, "url", "", "Detection service base URL (default from config)")
}

func runDetect(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	url := detectURL
	if url == "" {
		cfg, _ := config.Load()
		url = cfg.DetectURL
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	proc := detect.NewProcessor(database, detect.NewClient(url), logger)

	if len(args) == 1 {
		res, err := proc.ProcessMoment(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printDetectResult(res)
		return nil
	}

	results, err := proc.ProcessPending(cmd.Context())
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No moments awaiting detection.")
		return nil
	}
	for i := range results {
		printDetectResult(&results[i])
	}
	return nil
}

func printDetectResult(res *detect.Result) {
	fmt.Printf("%s: %s", res.MomentID, res.Status)
	if res.Mood != "" {
		fmt.Printf(", mood %s", res.Mood)
	}
	fmt.Println()
	for _, e := range res.Entities {
		id := ""
		if e.EntityID != "" {
			id = " -> " + e.EntityID
		}
		fmt.Printf("  %s %s (%.0f%%)%s\n", e.Type, e.DisplayLabel, e.Confidence, id)
	}
}

package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dogtracer/dogtracer/internal/core/db"
	"github.com/dogtracer/dogtracer/internal/core/models"
)

var captureCmd = &cobra.Command{
	Use:   "capture [photo]",
	Short: "Capture a moment",
	Long: `Record one moment of your dog's day: an optional photo plus tags,
notes, and GPS.

Examples:
  dogtracer capture walk.jpg --tags walk,play --notes "fetch at the park"
  dogtracer capture --tags rest --lat 37.77 --lon -122.42 --place "Dolores Park"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCapture,
}

var (
	captureTags     string
	captureNotes    string
	captureLat      float64
	captureLon      float64
	captureAccuracy float64
	capturePlace    string
	captureTime     string
)

func init() {
	rootCmd.AddCommand(captureCmd)

	captureCmd.Flags().StringVar(&captureTags, "tags", "", "Comma-separated tags (walk, play, training, rest, feeding, social, stress, vet, bath)")
	captureCmd.Flags().StringVar(&captureNotes, "notes", "", "Free-form notes")
	captureCmd.Flags().Float64Var(&captureLat, "lat", 0, "Latitude")
	captureCmd.Flags().Float64Var(&captureLon, "lon", 0, "Longitude")
	captureCmd.Flags().Float64Var(&captureAccuracy, "accuracy", 0, "GPS accuracy in meters")
	captureCmd.Flags().StringVar(&capturePlace, "place", "", "Place label")
	captureCmd.Flags().StringVar(&captureTime, "time", "", "Capture time (RFC3339, defaults to now)")
}

func runCapture(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	var photoPath string
	if len(args) == 1 {
		photoPath = args[0]
		if _, err := os.Stat(photoPath); err != nil {
			return fmt.Errorf("photo not found: %s", photoPath)
		}
	}

	timestamp := time.Now()
	if captureTime != "" {
		timestamp, err = time.Parse(time.RFC3339, captureTime)
		if err != nil {
			return fmt.Errorf("invalid --time (want RFC3339): %w", err)
		}
	}

	var tags []models.MomentTag
	if captureTags != "" {
		for _, raw := range strings.Split(captureTags, ",") {
			tag, err := models.ParseMomentTag(strings.TrimSpace(raw))
			if err != nil {
				return err
			}
			tags = append(tags, tag)
		}
	}

	moment := &models.Moment{
		ID:        "moment_" + uuid.NewString(),
		PhotoPath: photoPath,
		Timestamp: timestamp.UTC(),
		// TimestampLocal keeps the capture device's wall clock, including
		// any zone offset passed via --time. Timestamp itself is UTC, and
		// summary clocks render from it.
		TimestampLocal: timestamp.Format("15:04"),
		CreatedAt:      time.Now().UTC(),
		Tags:           tags,
		Notes:          captureNotes,
	}

	if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
		if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
			return fmt.Errorf("--lat and --lon must be given together")
		}
		moment.GPS = &models.GPSLocation{
			Latitude:   captureLat,
			Longitude:  captureLon,
			Accuracy:   captureAccuracy,
			PlaceLabel: capturePlace,
		}
	}

	if err := database.SaveMoment(moment); err != nil {
		return fmt.Errorf("failed to save moment: %w", err)
	}

	fmt.Printf("Captured %s\n", moment.ID)
	fmt.Printf("  Date:  %s %s\n", moment.DateKey(), moment.TimestampLocal)
	if len(tags) > 0 {
		fmt.Printf("  Tags:  %s\n", captureTags)
	}
	if moment.GPS != nil && moment.GPS.PlaceLabel != "" {
		fmt.Printf("  Place: %s\n", moment.GPS.PlaceLabel)
	}
	fmt.Println()
	fmt.Println("Run 'dogtracer rebuild' to refresh sessions for the day.")

	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dogtracer/dogtracer/internal/core/db"
	"github.com/dogtracer/dogtracer/internal/core/models"
)

var moodCmd = &cobra.Command{
	Use:   "mood <moment-id> <mood>",
	Short: "Override a moment's mood",
	Long: `Set a moment's mood by hand, overriding any detected value.
User overrides are always recorded with confidence 100.

Moods: calm, excited, alert, anxious, tired, playful`,
	Args: cobra.ExactArgs(2),
	RunE: runMood,
}

func init() {
	rootCmd.AddCommand(moodCmd)
}

func runMood(cmd *cobra.Command, args []string) error {
	mood, err := models.ParseMomentMood(args[1])
	if err != nil {
		return err
	}

	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	if err := database.UpdateMomentMood(args[0], mood, 100); err != nil {
		return err
	}

	fmt.Printf("Set mood of %s to %s\n", args[0], mood)
	return nil
}

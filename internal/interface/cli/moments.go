package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dogtracer/dogtracer/internal/core/db"
)

var momentsCmd = &cobra.Command{
	Use:   "moments [date]",
	Short: "List moments for a date",
	Long: `List the captured moments for one calendar date (defaults to today).

Examples:
  dogtracer moments
  dogtracer moments yesterday
  dogtracer moments 2026-08-29`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMoments,
}

func init() {
	rootCmd.AddCommand(momentsCmd)
}

func runMoments(cmd *cobra.Command, args []string) error {
	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	date, err := resolveDate(arg)
	if err != nil {
		return err
	}

	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	moments, err := database.MomentsByDate(date)
	if err != nil {
		return fmt.Errorf("failed to load moments: %w", err)
	}

	if len(moments) == 0 {
		fmt.Printf("No moments captured on %s.\n", date)
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Moments for %s (%d)", date, len(moments))))
	fmt.Println()

	for _, m := range moments {
		line := fmt.Sprintf("%s  %s", m.Timestamp.Format("15:04"), m.ID)
		fmt.Println(line)

		var details []string
		if len(m.Tags) > 0 {
			tags := make([]string, len(m.Tags))
			for i, t := range m.Tags {
				tags[i] = string(t)
			}
			details = append(details, "tags: "+strings.Join(tags, ", "))
		}
		if m.Mood != "" {
			mood := string(m.Mood)
			if m.MoodConfidence != nil {
				mood = fmt.Sprintf("%s (%d%%)", mood, *m.MoodConfidence)
			}
			details = append(details, "mood: "+mood)
		}
		if m.GPS != nil && m.GPS.PlaceLabel != "" {
			details = append(details, "place: "+m.GPS.PlaceLabel)
		}
		if m.SessionID != "" {
			details = append(details, "session: "+m.SessionID)
		}
		if len(details) > 0 {
			fmt.Println(labelStyle.Render("       " + strings.Join(details, " | ")))
		}
		if m.Notes != "" {
			fmt.Printf("       %s\n", m.Notes)
		}
		if !m.CreatedAt.IsZero() {
			fmt.Println(labelStyle.Render("       captured " + humanize.Time(m.CreatedAt)))
		}
		fmt.Println()
	}

	return nil
}

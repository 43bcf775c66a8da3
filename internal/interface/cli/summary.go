package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/dogtracer/dogtracer/internal/core/config"
	"github.com/dogtracer/dogtracer/internal/core/db"
	"github.com/dogtracer/dogtracer/internal/core/models"
	"github.com/dogtracer/dogtracer/internal/core/narrative"
	"github.com/dogtracer/dogtracer/internal/core/summary"
	"github.com/dogtracer/dogtracer/internal/core/tone"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [date]",
	Short: "Generate the daily summary",
	Long: `Synthesize the tone-adjusted daily summary for a date (defaults to
today): overview, timeline highlights, social map, behavior insights, and
recommendations.

Examples:
  dogtracer summary
  dogtracer summary yesterday --json
  dogtracer summary 2026-08-29 --copy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummary,
}

var (
	summaryJSON   bool
	summaryCopy   bool
	summaryOutput string
)

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "Output as JSON")
	summaryCmd.Flags().BoolVar(&summaryCopy, "copy", false, "Copy the summary to the clipboard")
	summaryCmd.Flags().StringVarP(&summaryOutput, "output", "o", "", "Write the summary to a file")
}

func runSummary(cmd *cobra.Command, args []string) error {
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
		fmt.Printf("No moments captured on %s, nothing to summarize.\n", date)
		return nil
	}

	sessions, err := database.SessionsByDate(date)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("No sessions for %s yet; run 'dogtracer rebuild %s' first.", date, date)))
	}

	profile, err := database.Profile()
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	cfg, _ := config.Load()
	bank := narrative.LoadBank(cfg.TemplatesDir)

	s := summary.Generate(summary.Input{
		Date:     date,
		Moments:  moments,
		Sessions: sessions,
		Profile:  profile,
	}, database, bank)

	var rendered string
	if summaryJSON {
		out, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		rendered = string(out)
	} else {
		rendered = renderSummary(s)
	}

	if summaryOutput != "" {
		if err := os.WriteFile(summaryOutput, []byte(rendered+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
		fmt.Printf("Wrote summary to %s\n", summaryOutput)
		return nil
	}

	fmt.Println(rendered)

	if summaryCopy {
		if err := clipboard.WriteAll(rendered); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Println()
		fmt.Println("Copied to clipboard.")
	}

	return nil
}

func renderSummary(s *models.DailySummary) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %s's Day - %s", tone.Emoji(s.Tone), s.DogName, s.Date)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Tone: " + tone.Description(s.Tone)))
	b.WriteString("\n\n")

	// Overview
	b.WriteString(sectionStyle.Render("Overview"))
	b.WriteString("\n")
	o := s.Overview
	b.WriteString(fmt.Sprintf("  %d moment(s), %d min active, %d min rest\n", o.TotalMoments, o.ActiveMinutes, o.RestMinutes))
	var counts []string
	for _, st := range models.SessionTypes {
		if o.SessionCounts[st] > 0 {
			counts = append(counts, fmt.Sprintf("%s x%d", st, o.SessionCounts[st]))
		}
	}
	if len(counts) > 0 {
		b.WriteString("  Sessions: " + strings.Join(counts, ", ") + "\n")
	}
	if o.TopMood != "" {
		b.WriteString(fmt.Sprintf("  Top mood: %s (%d moment(s))\n", o.TopMood, o.TopMoodCount))
	}
	for _, shift := range o.MoodShifts {
		b.WriteString(fmt.Sprintf("  Mood shift at %s: %s -> %s\n", shift.Time, shift.From, shift.To))
	}
	b.WriteString("\n")

	// Timeline
	if len(s.TimelineHighlights) > 0 {
		b.WriteString(sectionStyle.Render("Timeline"))
		b.WriteString("\n")
		for _, h := range s.TimelineHighlights {
			b.WriteString(fmt.Sprintf("  %s  %s\n", h.TimeRange, h.Description))
			var extra []string
			for _, t := range h.Tags {
				extra = append(extra, t.Emoji+" "+t.Label)
			}
			if len(h.Interactions) > 0 {
				extra = append(extra, "with "+strings.Join(h.Interactions, ", "))
			}
			if len(extra) > 0 {
				b.WriteString(labelStyle.Render("           "+strings.Join(extra, " | ")) + "\n")
			}
		}
		b.WriteString("\n")
	}

	// Social map
	if len(s.SocialMap) > 0 {
		b.WriteString(sectionStyle.Render("Social Map"))
		b.WriteString("\n")
		for _, entry := range s.SocialMap {
			b.WriteString(fmt.Sprintf("  %s (%s): %d encounter(s), %s\n",
				entry.Name, entry.Type, entry.EncounterCount, entry.Outcome))
		}
		b.WriteString("\n")
	}

	// Insights
	if len(s.BehaviorInsights) > 0 {
		b.WriteString(sectionStyle.Render("Behavior Insights"))
		b.WriteString("\n")
		for _, insight := range s.BehaviorInsights {
			b.WriteString(fmt.Sprintf("  [%s] %s\n", insight.Type, insight.Title))
			b.WriteString("         " + insight.Description + "\n")
		}
		b.WriteString("\n")
	}

	// Recommendations
	if len(s.Recommendations) > 0 {
		b.WriteString(sectionStyle.Render("Recommendations for Tomorrow"))
		b.WriteString("\n")
		for _, rec := range s.Recommendations {
			b.WriteString(fmt.Sprintf("  (%s) %s\n", rec.Priority, rec.Title))
			b.WriteString("         " + rec.Description + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

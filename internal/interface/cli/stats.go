package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dogtracer/dogtracer/internal/core/db"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show journal statistics",
	Long: `Display comprehensive statistics about the journal: moment and
session counts, date range, most-visited place, and mood/tag breakdowns.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	stats, err := database.GetStats()
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	fmt.Println("Journal Statistics")
	fmt.Println("==================")
	fmt.Println()

	fmt.Printf("Total Moments:   %d\n", stats.TotalMoments)
	fmt.Printf("Total Sessions:  %d\n", stats.TotalSessions)
	fmt.Printf("Total Entities:  %d\n", stats.TotalEntities)
	fmt.Println()

	if stats.TotalMoments > 0 {
		if !stats.OldestMoment.IsZero() {
			fmt.Printf("First Moment:    %s (%s)\n",
				stats.OldestMoment.Format("Jan 2, 2006 3:04 PM"), humanize.Time(stats.OldestMoment))
		}
		if !stats.NewestMoment.IsZero() {
			fmt.Printf("Latest Moment:   %s (%s)\n",
				stats.NewestMoment.Format("Jan 2, 2006 3:04 PM"), humanize.Time(stats.NewestMoment))
		}
		fmt.Println()

		if stats.MostVisitedPlace != "" {
			fmt.Printf("Favorite Place:  %s (%d moment(s))\n", stats.MostVisitedPlace, stats.MostVisitedPlaceCount)
			fmt.Println()
		}

		printCounts("Moods", stats.MoodCounts)
		printCounts("Tags", stats.TagCounts)
	}

	fileInfo, err := os.Stat(dbPath)
	if err != nil {
		return fmt.Errorf("failed to stat database file: %w", err)
	}
	fmt.Printf("Database Location: %s\n", dbPath)
	fmt.Printf("Database Size:     %s\n", humanize.Bytes(uint64(fileInfo.Size())))

	return nil
}

func printCounts(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	fmt.Printf("%s:\n", title)
	for _, k := range keys {
		fmt.Printf("  %-10s %d\n", k, counts[k])
	}
	fmt.Println()
}

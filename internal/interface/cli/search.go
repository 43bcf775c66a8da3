package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dogtracer/dogtracer/internal/core/db"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over moment notes",
	Long: `Search moment notes with full-text matching (porter stemming, so
"napping" finds "napped").

Examples:
  dogtracer search retriever
  dogtracer search "tennis ball" --limit 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var searchLimit int

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	moments, err := database.SearchMoments(query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(moments) == 0 {
		fmt.Printf("No moments matching %q.\n", query)
		return nil
	}

	fmt.Printf("Found %d moment(s) matching %q:\n\n", len(moments), query)
	for _, m := range moments {
		fmt.Printf("%s  %s (%s)\n", m.DateKey(), m.ID, humanize.Time(m.Timestamp))
		if m.Notes != "" {
			fmt.Printf("   %s\n", m.Notes)
		}
		fmt.Println()
	}

	return nil
}

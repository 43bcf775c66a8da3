package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dogtracer/dogtracer/internal/core/cluster"
	"github.com/dogtracer/dogtracer/internal/core/db"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild [date]",
	Short: "Recompute sessions for a date",
	Long: `Re-cluster a date's moments into sessions (defaults to today).
Sessions are fully derived, so rebuilding an unchanged day reproduces the
same sessions. A date with no moments is left untouched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRebuild,
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(cmd *cobra.Command, args []string) error {
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

	result, err := cluster.RebuildForDate(database, database, date)
	if err != nil {
		return err
	}

	if len(result.Sessions) == 0 {
		fmt.Printf("No moments on %s, nothing to rebuild.\n", date)
		return nil
	}

	fmt.Printf("Rebuilt %s: %d session(s) (%d replaced)\n", date, len(result.Sessions), result.Removed)
	for _, s := range result.Sessions {
		flags := ""
		if len(s.BehaviorFlags) > 0 {
			parts := make([]string, len(s.BehaviorFlags))
			for i, f := range s.BehaviorFlags {
				parts[i] = string(f)
			}
			flags = " [" + strings.Join(parts, " ") + "]"
		}
		fmt.Printf("  %s  %s-%s  %-8s %d moment(s)%s\n",
			s.ID,
			s.StartTime.Format("15:04"), s.EndTime.Format("15:04"),
			s.Type, len(s.MomentIDs), flags)
	}

	return nil
}

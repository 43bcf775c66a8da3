package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dogtracer/dogtracer/internal/core/db"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions [date]",
	Short: "List sessions for a date",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
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

	sessions, err := database.SessionsByDate(date)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Printf("No sessions on %s. Run 'dogtracer rebuild %s' after capturing moments.\n", date, date)
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Sessions for %s (%d)", date, len(sessions))))
	fmt.Println()

	for _, s := range sessions {
		fmt.Printf("%s-%s  %-8s  %s\n",
			s.StartTime.Format("15:04"), s.EndTime.Format("15:04"), s.Type, s.ID)

		var details []string
		details = append(details, fmt.Sprintf("%d moment(s), %d min", len(s.MomentIDs), s.DurationMinutes()))
		if s.PlaceLabel != "" {
			details = append(details, "place: "+s.PlaceLabel)
		}
		if len(s.BehaviorFlags) > 0 {
			parts := make([]string, len(s.BehaviorFlags))
			for i, f := range s.BehaviorFlags {
				parts[i] = string(f)
			}
			details = append(details, "flags: "+strings.Join(parts, ", "))
		}
		fmt.Println(labelStyle.Render("             " + strings.Join(details, " | ")))
	}

	return nil
}

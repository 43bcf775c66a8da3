package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dogtracer/dogtracer/internal/core/db"
)

var linkCmd = &cobra.Command{
	Use:   "link <moment-id> <entity-id>...",
	Short: "Link entities to a moment",
	Long: `Record that one or more known entities appear in a moment. Links
feed the social map and timeline interactions; attach order is preserved.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runLink,
}

func init() {
	rootCmd.AddCommand(linkCmd)
}

func runLink(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	momentID := args[0]
	entityIDs := args[1:]

	moment, err := database.MomentByID(momentID)
	if err != nil {
		return err
	}
	if moment == nil {
		return fmt.Errorf("moment %s not found", momentID)
	}

	for _, id := range entityIDs {
		entity, err := database.EntityByID(id)
		if err != nil {
			return err
		}
		if entity == nil {
			return fmt.Errorf("entity %s not found", id)
		}
	}

	if err := database.AddMomentEntities(momentID, entityIDs); err != nil {
		return fmt.Errorf("failed to link entities: %w", err)
	}

	fmt.Printf("Linked %d entit(ies) to %s\n", len(entityIDs), momentID)
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dogtracer/dogtracer/internal/core/db"
	"github.com/dogtracer/dogtracer/internal/core/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full journal as JSON",
	Long: `Write the whole journal (profile, moments, sessions, entities) to a
JSON file for backup or transfer.

Examples:
  dogtracer export
  dogtracer export -o backup.json
  dogtracer export --summary`,
	RunE: runExport,
}

var (
	exportOutput  string
	exportSummary bool
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output path (default <Dog>_export_<date>.json)")
	exportCmd.Flags().BoolVar(&exportSummary, "summary", false, "Only show what an export would contain")
}

func runExport(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	if exportSummary {
		s, err := export.GetSummary(database)
		if err != nil {
			return err
		}
		fmt.Printf("Moments:  %d\n", s.Moments)
		fmt.Printf("Sessions: %d\n", s.Sessions)
		fmt.Printf("Entities: %d\n", s.Entities)
		fmt.Printf("Profile:  %v\n", s.HasProfile)
		return nil
	}

	path, err := export.WriteFile(database, exportOutput)
	if err != nil {
		return err
	}

	fmt.Printf("Exported journal to %s\n", path)
	return nil
}

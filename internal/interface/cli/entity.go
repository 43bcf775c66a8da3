package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dogtracer/dogtracer/internal/core/db"
	"github.com/dogtracer/dogtracer/internal/core/models"
)

var entityCmd = &cobra.Command{
	Use:   "entity",
	Short: "Manage known dogs and humans",
}

var entityAddCmd = &cobra.Command{
	Use:   "add <dog|human>",
	Short: "Add a dog or human",
	Long: `Register a dog or human your dog encounters, so detections and the
social map can name them.

Examples:
  dogtracer entity add dog --name Luna --breed "Border Collie" --relationship friend
  dogtracer entity add dog --name Biscuit --primary
  dogtracer entity add human --name Sam --relationship neighbor`,
	Args: cobra.ExactArgs(1),
	RunE: runEntityAdd,
}

var entityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known entities",
	RunE:  runEntityList,
}

var (
	entityName         string
	entityNotes        string
	entityBreed        string
	entitySex          string
	entitySize         string
	entityRelationship string
	entityPrimary      bool
	entityListType     string
)

func init() {
	rootCmd.AddCommand(entityCmd)
	entityCmd.AddCommand(entityAddCmd)
	entityCmd.AddCommand(entityListCmd)

	entityAddCmd.Flags().StringVar(&entityName, "name", "", "Name")
	entityAddCmd.Flags().StringVar(&entityNotes, "notes", "", "Notes")
	entityAddCmd.Flags().StringVar(&entityBreed, "breed", "", "Breed (dogs)")
	entityAddCmd.Flags().StringVar(&entitySex, "sex", "unknown", "Sex: male, female, unknown (dogs)")
	entityAddCmd.Flags().StringVar(&entitySize, "size", "unknown", "Size: small, medium, large, unknown (dogs)")
	entityAddCmd.Flags().StringVar(&entityRelationship, "relationship", "", "Relationship (dogs: friend, neutral, conflict, unknown; humans: owner, friend, stranger, neighbor, vet, trainer)")
	entityAddCmd.Flags().BoolVar(&entityPrimary, "primary", false, "Mark as the tracked dog (dogs)")

	entityListCmd.Flags().StringVar(&entityListType, "type", "", "Filter by type: dog or human")
}

func runEntityAdd(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	entity := &models.Entity{
		ID:    "entity_" + uuid.NewString(),
		Name:  entityName,
		Notes: entityNotes,
	}

	switch args[0] {
	case "dog":
		entity.Type = models.EntityDog
		rel := models.DogUnknown
		if entityRelationship != "" {
			rel = models.DogRelationship(entityRelationship)
		}
		entity.Dog = &models.DogMetadata{
			Breed:        entityBreed,
			Sex:          models.DogSex(entitySex),
			Size:         models.DogSize(entitySize),
			Relationship: rel,
			IsPrimary:    entityPrimary,
		}
	case "human":
		entity.Type = models.EntityHuman
		rel := models.HumanStranger
		if entityRelationship != "" {
			rel = models.HumanRelationship(entityRelationship)
		}
		entity.Human = &models.HumanMetadata{Relationship: rel}
	default:
		return fmt.Errorf("entity type must be dog or human, got %q", args[0])
	}

	if err := database.SaveEntity(entity); err != nil {
		return fmt.Errorf("failed to save entity: %w", err)
	}

	fmt.Printf("Added %s %s (%s)\n", args[0], entity.DisplayName(), entity.ID)
	return nil
}

func runEntityList(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	entities, err := database.ListEntities(models.EntityType(entityListType))
	if err != nil {
		return fmt.Errorf("failed to list entities: %w", err)
	}

	if len(entities) == 0 {
		fmt.Println("No entities recorded yet. Add one with 'dogtracer entity add'.")
		return nil
	}

	for _, e := range entities {
		line := fmt.Sprintf("%-8s %s", e.Type, e.DisplayName())
		if e.Type == models.EntityDog && e.Dog != nil && e.Dog.IsPrimary {
			line += " " + highlightStyle.Render("(primary)")
		}
		fmt.Println(line)
		fmt.Println(labelStyle.Render(fmt.Sprintf("         %s | relationship: %s", e.ID, e.Relationship())))
		if e.Type == models.EntityDog && e.Dog != nil && e.Dog.Breed != "" {
			fmt.Println(labelStyle.Render("         breed: " + e.Dog.Breed))
		}
		if e.Notes != "" {
			fmt.Printf("         %s\n", e.Notes)
		}
	}

	return nil
}

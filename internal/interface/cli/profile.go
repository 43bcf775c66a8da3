package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dogtracer/dogtracer/internal/core/db"
	"github.com/dogtracer/dogtracer/internal/core/models"
	"github.com/dogtracer/dogtracer/internal/core/tone"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the dog profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the dog profile",
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update the dog profile",
	Long: `Set the tracked dog's profile. The temperament tags pick the
narrative tone of daily summaries; triggers and goals feed insights and
recommendations.

Temperaments: confident, shy, curious, protective, social, independent,
high-energy, calm, anxious, reactive

Examples:
  dogtracer profile set --name Biscuit --temperament anxious,curious
  dogtracer profile set --name Rex --temperament confident --goals "loose-leash walking"`,
	RunE: runProfileSet,
}

var (
	profileName        string
	profileAge         string
	profileTemperament string
	profileTriggers    string
	profileGoals       string
)

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)

	profileSetCmd.Flags().StringVar(&profileName, "name", "", "Dog's name (required)")
	profileSetCmd.Flags().StringVar(&profileAge, "age", "", "Age, free-form")
	profileSetCmd.Flags().StringVar(&profileTemperament, "temperament", "", "Comma-separated temperament tags")
	profileSetCmd.Flags().StringVar(&profileTriggers, "triggers", "", "Comma-separated known triggers")
	profileSetCmd.Flags().StringVar(&profileGoals, "goals", "", "Comma-separated training goals")
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	p, err := database.Profile()
	if err != nil {
		return err
	}
	if p == nil {
		fmt.Println("No profile yet. Create one with 'dogtracer profile set --name <name>'.")
		return nil
	}

	t := tone.ForProfile(p)

	fmt.Println(headerStyle.Render(p.Name))
	if p.Age != "" {
		fmt.Printf("  Age:         %s\n", p.Age)
	}
	if len(p.Temperament) > 0 {
		parts := make([]string, len(p.Temperament))
		for i, temp := range p.Temperament {
			parts[i] = string(temp)
		}
		fmt.Printf("  Temperament: %s\n", strings.Join(parts, ", "))
	}
	fmt.Printf("  Summary tone: %s %s\n", tone.Emoji(t), tone.Description(t))
	if len(p.Triggers) > 0 {
		fmt.Printf("  Triggers:    %s\n", strings.Join(p.Triggers, ", "))
	}
	if len(p.Goals) > 0 {
		fmt.Printf("  Goals:       %s\n", strings.Join(p.Goals, ", "))
	}

	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	existing, err := database.Profile()
	if err != nil {
		return err
	}

	p := existing
	if p == nil {
		p = &models.DogProfile{ID: "profile_" + uuid.NewString()}
	}

	if profileName != "" {
		p.Name = profileName
	}
	if p.Name == "" {
		return fmt.Errorf("--name is required for a new profile")
	}
	if cmd.Flags().Changed("age") {
		p.Age = profileAge
	}
	if cmd.Flags().Changed("temperament") {
		p.Temperament = nil
		for _, raw := range splitList(profileTemperament) {
			t, err := models.ParseTemperament(raw)
			if err != nil {
				return err
			}
			p.Temperament = append(p.Temperament, t)
		}
	}
	if cmd.Flags().Changed("triggers") {
		p.Triggers = splitList(profileTriggers)
	}
	if cmd.Flags().Changed("goals") {
		p.Goals = splitList(profileGoals)
	}
	if p.Temperament == nil {
		p.Temperament = []models.Temperament{}
	}
	if p.Triggers == nil {
		p.Triggers = []string{}
	}
	if p.Goals == nil {
		p.Goals = []string{}
	}

	if err := database.SaveProfile(p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	t := tone.ForProfile(p)
	fmt.Printf("Saved profile for %s. Summaries will use the %s voice %s.\n",
		p.Name, tone.Description(t), tone.Emoji(t))
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

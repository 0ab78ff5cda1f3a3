package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pawden-app/pawden/internal/app/keeper"
	"github.com/pawden-app/pawden/internal/daemon"
)

func init() {
	createCmd.Flags().StringVar(&createOwner, "owner", "", "Owner account id (required)")
	createCmd.Flags().StringVar(&createSpecies, "species", "", "Species, e.g. cat (required)")
	createCmd.Flags().StringVar(&createBreed, "breed", "", "Breed")
	createCmd.Flags().StringVar(&createColor, "color", "", "Color")
	createCmd.Flags().StringVar(&createNotes, "notes", "", "Free-form notes")
	createCmd.Flags().StringVar(&createLabel, "label", "", "Owner display label on the shared page")
	createCmd.MarkFlagRequired("owner")
	createCmd.MarkFlagRequired("species")
	rootCmd.AddCommand(createCmd)
}

var (
	createOwner   string
	createSpecies string
	createBreed   string
	createColor   string
	createNotes   string
	createLabel   string
)

var createCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a new pet",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	pet, err := d.Keeper.Create(keeper.CreateParams{
		OwnerID:    createOwner,
		OwnerLabel: createLabel,
		Name:       args[0],
		Species:    createSpecies,
		Breed:      createBreed,
		Color:      createColor,
		Notes:      createNotes,
	}, time.Now().UTC())
	if err != nil {
		return err
	}

	fmt.Printf("Created %s the %s (id %s)\n", pet.Name, pet.Species, pet.ID)
	fmt.Printf("Share token (enable sharing first): %s\n", pet.ShareableID)
	return nil
}

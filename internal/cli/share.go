package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pawden-app/pawden/internal/daemon"
)

func init() {
	shareCmd.Flags().BoolVar(&shareOff, "off", false, "Disable the shared link")
	rootCmd.AddCommand(shareCmd)
}

var shareOff bool

var shareCmd = &cobra.Command{
	Use:   "share PET_ID",
	Short: "Enable or disable a pet's public shared link",
	Args:  cobra.ExactArgs(1),
	RunE:  runShare,
}

func runShare(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	pet, err := d.Keeper.SetSharing(args[0], !shareOff)
	if err != nil {
		return err
	}

	if pet.SharingEnabled {
		fmt.Printf("Sharing enabled. Visitors can reach %s at /api/shared/%s\n", pet.Name, pet.ShareableID)
	} else {
		fmt.Printf("Sharing disabled for %s.\n", pet.Name)
	}
	return nil
}

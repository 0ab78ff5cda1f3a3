package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pawden-app/pawden/internal/daemon"
)

func init() {
	rootCmd.AddCommand(rmCmd)
}

var rmCmd = &cobra.Command{
	Use:   "rm PET_ID",
	Short: "Delete a pet",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Keeper.Delete(args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted pet %s\n", args[0])
	return nil
}

package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pawden-app/pawden/internal/daemon"
)

func init() {
	listCmd.Flags().StringVar(&listOwner, "owner", "", "Owner account id (required)")
	listCmd.MarkFlagRequired("owner")
	rootCmd.AddCommand(listCmd)
}

var listOwner string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List an owner's pets",
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	pets, err := d.Keeper.List(listOwner)
	if err != nil {
		return err
	}

	if len(pets) == 0 {
		fmt.Println("No pets yet. Run 'pawden create <name>' to get started.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSPECIES\tSTAGE\tXP\tSTREAK\tCOINS\tID")
	for _, p := range pets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			p.Name, p.Species, p.Stage, p.XP, p.CurrentStreak, p.Coins, p.ID)
	}
	return w.Flush()
}

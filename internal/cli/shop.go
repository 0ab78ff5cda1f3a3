package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pawden-app/pawden/internal/app/keeper"
	"github.com/pawden-app/pawden/internal/daemon"
)

func init() {
	equipCmd.Flags().BoolVar(&equipOff, "off", false, "Take the accessory off instead")
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(equipCmd)
}

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "List the item catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ITEM\tKIND\tPRICE")
		for _, it := range keeper.Catalog() {
			fmt.Fprintf(w, "%s\t%s\t%d\n", it.Name, it.Kind, it.Price)
		}
		return w.Flush()
	},
}

var buyCmd = &cobra.Command{
	Use:   "buy PET_ID ITEM",
	Short: "Buy a catalog item with the pet's coins",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		pet, err := d.Keeper.Purchase(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Bought %s. %s now has %d coins.\n", args[1], pet.Name, pet.Coins)
		return nil
	},
}

var equipOff bool

var equipCmd = &cobra.Command{
	Use:   "equip PET_ID ITEM",
	Short: "Equip or unequip an owned accessory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		if equipOff {
			if _, err := d.Keeper.Unequip(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Unequipped %s.\n", args[1])
			return nil
		}

		pet, err := d.Keeper.Equip(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Equipped %s.", args[1])
		if !pet.AccessoriesVisible() {
			fmt.Print(" It will show once the pet is an Adult.")
		}
		fmt.Println()
		return nil
	},
}

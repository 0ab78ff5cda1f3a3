package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pawden-app/pawden/internal/daemon"
	"github.com/pawden-app/pawden/internal/domain"
)

func init() {
	rootCmd.AddCommand(actCmd)
}

var actCmd = &cobra.Command{
	Use:   "act PET_ID ACTION",
	Short: "Perform an owner action (feed, play, clean, rest, exercise, treat, work)",
	Args:  cobra.ExactArgs(2),
	RunE:  runAct,
}

func runAct(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	result, err := d.Keeper.PerformOwner(args[0], domain.ActionType(args[1]), time.Now().UTC())
	if err != nil {
		if ce, ok := domain.IsCooldown(err); ok {
			return fmt.Errorf("on cooldown — try again in %ds", ce.Remaining)
		}
		return err
	}

	p := result.Pet
	fmt.Printf("%s: fullness %d, happiness %d, cleanliness %d, energy %d, xp %d\n",
		p.Name, p.Vitals.Fullness, p.Vitals.Happiness, p.Vitals.Cleanliness,
		p.Vitals.Energy, p.XP)
	for _, n := range result.Notices {
		fmt.Println(" ", n.Message)
	}
	return nil
}

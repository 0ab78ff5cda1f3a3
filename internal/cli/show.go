package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pawden-app/pawden/internal/daemon"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show PET_ID",
	Short: "Show a pet's current state",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	st, err := d.Keeper.Status(args[0], time.Now().UTC())
	if err != nil {
		return err
	}
	p := st.Pet

	fmt.Printf("%s the %s — %s\n", p.Name, p.Species, p.Stage)
	fmt.Printf("  fullness     %s\n", vitalBar(p.Vitals.Fullness))
	fmt.Printf("  happiness    %s\n", vitalBar(p.Vitals.Happiness))
	fmt.Printf("  cleanliness  %s\n", vitalBar(p.Vitals.Cleanliness))
	fmt.Printf("  energy       %s\n", vitalBar(p.Vitals.Energy))
	fmt.Printf("  age          %d months\n", p.AgeMonths)
	fmt.Printf("  coins        %d\n", p.Coins)

	if st.Progress.AtMaxStage {
		fmt.Printf("  xp           %d (max stage)\n", p.XP)
	} else {
		fmt.Printf("  xp           %d (%d%% through %s, %d to next)\n",
			p.XP, st.Progress.Percent, st.Progress.Stage, st.Progress.XPToNext)
	}

	fmt.Printf("  streak       %d days (longest %d)\n", p.CurrentStreak, p.LongestStreak)
	if st.Cooldown.OnCooldown {
		fmt.Printf("  cooldown     %ds remaining (window %ds)\n",
			st.Cooldown.RemainingSeconds, st.Cooldown.EffectiveSeconds)
	} else {
		fmt.Printf("  cooldown     ready (window %ds)\n", st.Cooldown.EffectiveSeconds)
	}

	if p.SharingEnabled {
		fmt.Printf("  shared       yes — tier %s, token %s\n", st.Social.Tier, p.ShareableID)
	} else {
		fmt.Println("  shared       no")
	}
	if len(p.EquippedAccessories) > 0 {
		fmt.Printf("  accessories  %s\n", strings.Join(p.EquippedAccessories, ", "))
	}
	return nil
}

// vitalBar renders a 0–100 stat as a 20-cell bar.
func vitalBar(v int) string {
	filled := v / 5
	return fmt.Sprintf("[%s%s] %3d", strings.Repeat("#", filled), strings.Repeat("-", 20-filled), v)
}

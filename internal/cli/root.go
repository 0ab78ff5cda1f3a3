// Package cli implements the Pawden command-line interface using Cobra.
// Each subcommand maps to an owner operation (create, act, share, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pawden-app/pawden/internal/api"
)

var rootCmd = &cobra.Command{
	Use:   "pawden",
	Short: "Pawden — keep a virtual pet",
	Long: `Pawden is a virtual-pet daemon.
Your pet's stats decay over real time, actions nudge them back up,
daily streaks and a shared-link audience shrink the action cooldown,
and experience drives evolution from Baby to Teen to Adult.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version
	api.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

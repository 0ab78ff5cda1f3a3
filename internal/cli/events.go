package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pawden-app/pawden/internal/daemon"
)

func init() {
	eventsCmd.Flags().StringVar(&eventsOwner, "owner", "", "Owner account id (required)")
	eventsCmd.Flags().BoolVar(&eventsAck, "ack", false, "Mark listed events as shown")
	eventsCmd.MarkFlagRequired("owner")
	rootCmd.AddCommand(eventsCmd)
}

var (
	eventsOwner string
	eventsAck   bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show pending pet notifications",
	RunE:  runEvents,
}

func runEvents(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	events, err := d.Notifier.Pending(eventsOwner, 100)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No pending notifications.")
		return nil
	}

	for _, ev := range events {
		fmt.Printf("%s  [%s] %s\n", ev.CreatedAt.Format("2006-01-02 15:04"), ev.Type, ev.Message)
		if eventsAck {
			if err := d.Notifier.MarkShown(ev.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

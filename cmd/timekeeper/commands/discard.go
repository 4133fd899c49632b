package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDiscardCommand creates the discard command
func NewDiscardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "discard",
		Short: "Stop the timer without logging a session",
		Args:  cobra.NoArgs,
		RunE:  runDiscard,
	}
}

func runDiscard(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	state, err := a.timer.Read()
	if err != nil {
		return err
	}
	if !state.IsActive {
		fmt.Println("No active timer")
		return nil
	}

	if err := a.ledger.DiscardTimer(); err != nil {
		return err
	}
	fmt.Printf("Discarded timer for %q\n", state.Label)
	return nil
}

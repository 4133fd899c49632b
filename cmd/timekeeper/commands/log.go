package commands

import (
	"errors"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tas-github/ogeemo-timekeeper/internal/billing"
	"github.com/tas-github/ogeemo-timekeeper/internal/ledger"
)

// NewLogCommand creates the log command
func NewLogCommand() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log the current timer as a session and stop it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			sess, err := a.ledger.LogCurrentSession(notes)
			if errors.Is(err, ledger.ErrNoActiveTimer) {
				return fmt.Errorf("nothing to log: no timer is running")
			}
			if err != nil {
				if sess.ID == "" {
					return err
				}
				// Session committed; only the journal copy failed.
				charmlog.Warn("report journal not updated", "err", err)
			}

			fmt.Printf("Logged %s\n", billing.FormatSeconds(sess.DurationSeconds))
			return nil
		},
	}

	cmd.Flags().StringVarP(&notes, "message", "m", "", "Notes to attach to the session")
	return cmd
}

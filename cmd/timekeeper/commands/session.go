package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tas-github/ogeemo-timekeeper/internal/billing"
)

// NewSessionCommand creates the session command group
func NewSessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect and correct logged sessions",
	}
	cmd.AddCommand(newSessionListCommand())
	cmd.AddCommand(newSessionEditCommand())
	cmd.AddCommand(newSessionDeleteCommand())
	return cmd
}

func newSessionListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <task>",
		Short: "List a task's logged sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			task, err := a.tasks.FindTask(args[0])
			if err != nil {
				return err
			}
			sessions, err := a.tasks.SessionsForTask(task.ID)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Printf("No sessions logged for %q\n", task.Label)
				return nil
			}

			fmt.Printf("Sessions for %q:\n", task.Label)
			for _, sess := range sessions {
				start := time.UnixMilli(sess.StartTime).Format("2006-01-02 15:04")
				line := fmt.Sprintf("%-36s  %s  %s", sess.ID, start, billing.FormatSeconds(sess.DurationSeconds))
				if sess.Notes != "" {
					line += "  " + sess.Notes
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newSessionEditCommand() *cobra.Command {
	var (
		hours   int
		minutes int
		notes   string
	)

	cmd := &cobra.Command{
		Use:   "edit <session-id>",
		Short: "Replace a session's duration and notes",
		Long: `Replace a logged session's duration and notes. The session keeps its
identity and timestamps; only the duration recorded against the task
changes, so the edited value can disagree with end minus start.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			sess, err := a.ledger.EditSession(args[0], hours, minutes, notes)
			if err != nil {
				return err
			}

			fmt.Printf("Session now %s\n", billing.FormatSeconds(sess.DurationSeconds))
			return nil
		},
	}

	cmd.Flags().IntVar(&hours, "hours", 0, "New duration, hours part")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "New duration, minutes part")
	cmd.Flags().StringVarP(&notes, "message", "m", "", "New notes")
	return cmd
}

func newSessionDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session from the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.ledger.DeleteSession(args[0]); err != nil {
				return err
			}
			fmt.Println("Session deleted")
			return nil
		},
	}
}

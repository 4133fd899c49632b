package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tas-github/ogeemo-timekeeper/internal/timer"
)

// NewStartCommand creates the start command
func NewStartCommand() *cobra.Command {
	var switchTasks bool

	cmd := &cobra.Command{
		Use:   "start <task>",
		Short: "Start the timer on a task",
		Long: `Start the timer on a task, referenced by ID or label. Only one timer
runs at a time: starting while another task's timer is active is an
error unless --switch is given, which logs the running timer to its
task first (or discards it when nothing has elapsed).`,
		Args: cobra.ExactArgs(1),
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

			state, err := a.ledger.StartTimer(task.ID, switchTasks)
			if errors.Is(err, timer.ErrTimerConflict) {
				return fmt.Errorf("a timer is already running for %q; use --switch to log it and start %q", state.Label, task.Label)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Timer running for %q\n", task.Label)
			return nil
		},
	}

	cmd.Flags().BoolVar(&switchTasks, "switch", false, "Log the currently running timer before starting this one")
	return cmd
}

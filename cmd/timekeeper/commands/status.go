package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tas-github/ogeemo-timekeeper/internal/billing"
	"github.com/tas-github/ogeemo-timekeeper/internal/timer"
)

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current timer and its elapsed time",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
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

	now := a.clock.NowMillis()
	elapsed := timer.ElapsedSeconds(state, now)

	mode := "running"
	if state.IsPaused {
		mode = "paused"
	}
	fmt.Printf("Task:    %s\n", state.Label)
	fmt.Printf("State:   %s\n", mode)
	fmt.Printf("Elapsed: %s\n", billing.FormatSeconds(elapsed))

	task, err := a.tasks.GetTask(state.TaskID)
	if err != nil {
		return nil
	}
	total := billing.TotalTrackedSeconds(task, state, now)
	fmt.Printf("Total:   %s\n", billing.FormatSeconds(total))
	if task.IsBillable {
		fmt.Printf("Billable: %s%.2f\n", a.cfg.Currency, billing.BillableAmount(task, total))
	}
	return nil
}

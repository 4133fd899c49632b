package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tas-github/ogeemo-timekeeper/internal/billing"
	"github.com/tas-github/ogeemo-timekeeper/internal/timer"
	"github.com/tas-github/ogeemo-timekeeper/pkg/models"
)

// NewTaskCommand creates the task command group
func NewTaskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the tasks sessions are tracked against",
	}
	cmd.AddCommand(newTaskAddCommand())
	cmd.AddCommand(newTaskListCommand())
	return cmd
}

func newTaskAddCommand() *cobra.Command {
	var (
		billable bool
		rate     float64
	)

	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if billable && !cmd.Flags().Changed("rate") {
				rate = a.cfg.DefaultRate
			}

			task := models.Task{
				ID:           uuid.New().String(),
				Label:        args[0],
				IsBillable:   billable,
				BillableRate: rate,
				CreatedAt:    a.clock.Now(),
			}
			if err := a.tasks.CreateTask(task); err != nil {
				return err
			}

			fmt.Printf("Created task %q (%s)\n", task.Label, task.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&billable, "billable", false, "Bill tracked time for this task")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Hourly rate (defaults to the configured default_rate)")
	return cmd
}

func newTaskListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks with their tracked totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			tasks, err := a.tasks.ListTasks()
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks yet; create one with 'timekeeper task add'")
				return nil
			}

			live, err := a.timer.Read()
			if err != nil {
				return err
			}
			now := a.clock.NowMillis()

			for _, task := range tasks {
				total := billing.TotalTrackedSeconds(task, live, now)
				line := fmt.Sprintf("%-36s  %-24s  %s", task.ID, task.Label, billing.FormatSeconds(total))
				if task.IsBillable {
					line += fmt.Sprintf("  %s%.2f", a.cfg.Currency, billing.BillableAmount(task, total))
				}
				if live.IsActive && live.TaskID == task.ID {
					marker := "running"
					if live.IsPaused {
						marker = "paused"
					}
					line += fmt.Sprintf("  [%s %s]", marker, billing.FormatSeconds(timer.ElapsedSeconds(live, now)))
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

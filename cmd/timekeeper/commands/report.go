package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tas-github/ogeemo-timekeeper/internal/billing"
	"github.com/tas-github/ogeemo-timekeeper/internal/report"
)

// NewReportCommand creates the report command
func NewReportCommand() *cobra.Command {
	var (
		taskArg string
		weekly  bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate logged sessions from the journal",
		Long: `Aggregate logged sessions. By default totals are grouped per task;
--weekly rolls them up by week instead, optionally narrowed to one
task with --task.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			taskID := ""
			if taskArg != "" {
				task, err := a.tasks.FindTask(taskArg)
				if err != nil {
					return err
				}
				taskID = task.ID
			}

			glob := a.journal.Glob()

			if weekly {
				weeks, err := report.WeeklyTotals(cmd.Context(), glob, taskID)
				if err != nil {
					return err
				}
				if len(weeks) == 0 {
					fmt.Println("No sessions in the journal")
					return nil
				}
				for _, w := range weeks {
					fmt.Printf("week of %s  %3d sessions  %10s  %s%.2f\n",
						w.WeekStart.Format("2006-01-02"), w.SessionCount,
						billing.FormatSeconds(w.TotalSeconds), a.cfg.Currency, w.BillableAmount)
				}
				return nil
			}

			totals, err := report.TaskTotals(cmd.Context(), glob)
			if err != nil {
				return err
			}
			if len(totals) == 0 {
				fmt.Println("No sessions in the journal")
				return nil
			}
			for _, t := range totals {
				if taskID != "" && t.TaskID != taskID {
					continue
				}
				fmt.Printf("%-24s  %3d sessions  %10s  %s%.2f\n",
					t.Label, t.SessionCount,
					billing.FormatSeconds(t.TotalSeconds), a.cfg.Currency, t.BillableAmount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&taskArg, "task", "", "Limit the report to one task (ID or label)")
	cmd.Flags().BoolVar(&weekly, "weekly", false, "Roll totals up by week")
	return cmd
}

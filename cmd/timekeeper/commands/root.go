package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tas-github/ogeemo-timekeeper/internal/broadcast"
	"github.com/tas-github/ogeemo-timekeeper/internal/tui"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "timekeeper",
		Short: "Track time against tasks from the terminal",
		Long: `timekeeper runs a single shared timer against a task list and keeps
an append-only ledger of logged sessions. Without arguments it opens
the interactive dashboard; subcommands drive the same timer from
scripts or other terminals.`,
		RunE: runDashboard,
	}

	rootCmd.AddCommand(NewStartCommand())
	rootCmd.AddCommand(NewPauseCommand())
	rootCmd.AddCommand(NewResumeCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewLogCommand())
	rootCmd.AddCommand(NewDiscardCommand())
	rootCmd.AddCommand(NewTaskCommand())
	rootCmd.AddCommand(NewSessionCommand())
	rootCmd.AddCommand(NewReportCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runDashboard(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	// Mutations made by other processes land on the bus through the
	// poller; mutations made here land on it directly.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	watcher := broadcast.NewWatcher(a.timer, a.bus, a.cfg.PollInterval)
	go watcher.Run(ctx)

	states, unsubscribe := a.bus.Subscribe()
	defer unsubscribe()

	return tui.Show(tui.Deps{
		Tasks:    a.tasks,
		Timer:    a.timer,
		Ledger:   a.ledger,
		States:   states,
		Clock:    a.clock,
		Currency: a.cfg.Currency,
	})
}

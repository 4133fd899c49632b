package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tas-github/ogeemo-timekeeper/internal/billing"
	"github.com/tas-github/ogeemo-timekeeper/internal/timer"
	"github.com/tas-github/ogeemo-timekeeper/pkg/models"
)

// NewPauseCommand creates the pause command
func NewPauseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause the running timer",
		Args:  cobra.NoArgs,
		RunE:  runPause,
	}
}

func runPause(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	state, err := a.timer.Read()
	if err != nil {
		return err
	}

	elapsed := timer.ElapsedSeconds(state, a.clock.NowMillis())
	msg, apply := pauseTransition(state, elapsed)
	if apply {
		if _, err := a.timer.Pause(); err != nil {
			return err
		}
	}
	fmt.Println(msg)
	return nil
}

// pauseTransition reports the message for a pause request against the
// given state and whether the pause actually applies.
func pauseTransition(state models.TimerState, elapsed int64) (string, bool) {
	switch {
	case !state.IsActive:
		return "No active timer", false
	case state.IsPaused:
		return "Timer is already paused", false
	}
	return fmt.Sprintf("Paused %q at %s", state.Label, billing.FormatSeconds(elapsed)), true
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tas-github/ogeemo-timekeeper/pkg/models"
)

// NewResumeCommand creates the resume command
func NewResumeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused timer",
		Args:  cobra.NoArgs,
		RunE:  runResume,
	}
}

func runResume(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	state, err := a.timer.Read()
	if err != nil {
		return err
	}

	msg, apply := resumeTransition(state)
	if apply {
		if _, err := a.timer.Resume(); err != nil {
			return err
		}
	}
	fmt.Println(msg)
	return nil
}

// resumeTransition reports the message for a resume request against
// the given state and whether the resume actually applies.
func resumeTransition(state models.TimerState) (string, bool) {
	switch {
	case !state.IsActive:
		return "No active timer", false
	case !state.IsPaused:
		return "Timer is not paused", false
	}
	return fmt.Sprintf("Resumed %q", state.Label), true
}

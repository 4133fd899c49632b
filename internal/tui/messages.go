package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tas-github/ogeemo-timekeeper/pkg/models"
)

// Message types for timer and task events
type (
	// TickMsg drives the 1 Hz elapsed-time recompute.
	TickMsg time.Time

	// StateMsg carries a timer snapshot from the broadcast bus.
	StateMsg models.TimerState

	// TasksLoadedMsg contains the reloaded task list.
	TasksLoadedMsg struct {
		Tasks []models.Task
		Error error
	}

	// ActionDoneMsg reports the outcome of a timer or ledger action.
	ActionDoneMsg struct {
		Status string
		Err    error
	}
)

// tickCmd schedules the next display tick. One second keeps every
// view within a tick of ground truth.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForState blocks on the bus subscription and converts the next
// snapshot into a message. Update re-issues it after every receipt.
func waitForState(sub <-chan models.TimerState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-sub
		if !ok {
			return nil
		}
		return StateMsg(state)
	}
}

// loadTasksCmd reloads the task list asynchronously.
func loadTasksCmd(tasks TaskLister) tea.Cmd {
	return func() tea.Msg {
		list, err := tasks.ListTasks()
		return TasksLoadedMsg{Tasks: list, Error: err}
	}
}

func actionCmd(status string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return ActionDoneMsg{Err: err}
		}
		return ActionDoneMsg{Status: status}
	}
}

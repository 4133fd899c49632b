package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Spinner animates while the task list loads.
type Spinner struct {
	frames []string
	frame  int
}

// NewSpinner creates a spinner at its first frame.
func NewSpinner() *Spinner {
	return &Spinner{
		frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"},
	}
}

// Next advances to the next frame.
func (s *Spinner) Next() {
	s.frame = (s.frame + 1) % len(s.frames)
}

// View returns the current frame.
func (s *Spinner) View() string {
	return s.frames[s.frame]
}

func loadingLine(s *Spinner, message string) string {
	spinnerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	messageStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	return fmt.Sprintf("%s %s", spinnerStyle.Render(s.View()), messageStyle.Render(message))
}

// Package tui is the live dashboard: a subscribed view that re-reads
// the shared timer state through the broadcast bus and recomputes
// elapsed time and billable totals on a one-second tick. Several
// dashboards (or other timekeeper processes) over the same data dir
// stay within a tick of each other.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tas-github/ogeemo-timekeeper/internal/billing"
	"github.com/tas-github/ogeemo-timekeeper/internal/clock"
	"github.com/tas-github/ogeemo-timekeeper/internal/timer"
	"github.com/tas-github/ogeemo-timekeeper/pkg/models"
)

// TaskLister is the slice of the task store the dashboard reads.
type TaskLister interface {
	ListTasks() ([]models.Task, error)
}

// TimerControl is the slice of the timer store the dashboard drives
// directly.
type TimerControl interface {
	Pause() (models.TimerState, error)
	Resume() (models.TimerState, error)
}

// LedgerService is the slice of the session ledger the dashboard
// drives.
type LedgerService interface {
	StartTimer(taskID string, switchTasks bool) (models.TimerState, error)
	LogCurrentSession(notes string) (models.TimeSession, error)
	DiscardTimer() error
}

// Deps wires the dashboard to the engine.
type Deps struct {
	Tasks    TaskLister
	Timer    TimerControl
	Ledger   LedgerService
	States   <-chan models.TimerState
	Clock    clock.Clock
	Currency string
}

type viewMode int

const (
	listMode viewMode = iota
	notesMode
)

type model struct {
	deps Deps

	currentMode viewMode
	tasks       []models.Task
	cursor      int
	state       models.TimerState
	nowMillis   int64

	viewport   viewport.Model
	notesInput textinput.Model
	spinner    *Spinner
	loading    bool
	statusLine string

	ready  bool
	width  int
	height int
}

func initialModel(deps Deps) model {
	input := textinput.New()
	input.Placeholder = "what was done"
	input.CharLimit = 200

	return model{
		deps:       deps,
		spinner:    NewSpinner(),
		loading:    true,
		notesInput: input,
		nowMillis:  deps.Clock.NowMillis(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		loadTasksCmd(m.deps.Tasks),
		waitForState(m.deps.States),
		tickCmd(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listHeight := msg.Height - 9
		if listHeight < 3 {
			listHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, listHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = listHeight
		}
		m.updateViewport()

	case TickMsg:
		// The only externally observable liveness of the timer is this
		// recompute; nothing is cached past one tick.
		m.nowMillis = m.deps.Clock.NowMillis()
		if m.loading {
			m.spinner.Next()
		}
		m.updateViewport()
		cmds = append(cmds, tickCmd())

	case StateMsg:
		m.state = models.TimerState(msg)
		m.updateViewport()
		cmds = append(cmds, waitForState(m.deps.States))

	case TasksLoadedMsg:
		m.loading = false
		if msg.Error != nil {
			m.statusLine = fmt.Sprintf("failed to load tasks: %v", msg.Error)
		} else {
			m.tasks = msg.Tasks
			if m.cursor >= len(m.tasks) {
				m.cursor = 0
			}
		}
		m.updateViewport()

	case ActionDoneMsg:
		if msg.Err != nil {
			m.statusLine = msg.Err.Error()
		} else {
			m.statusLine = msg.Status
		}
		// Ledger mutations move cached durations; refresh the list.
		cmds = append(cmds, loadTasksCmd(m.deps.Tasks))

	case tea.KeyMsg:
		if m.currentMode == notesMode {
			return m.updateNotesMode(msg)
		}
		return m.updateListMode(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.updateViewport()
		}

	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
			m.updateViewport()
		}

	case "enter", "s":
		if task, ok := m.selectedTask(); ok {
			id := task.ID
			return m, actionCmd("timer started", func() error {
				_, err := m.deps.Ledger.StartTimer(id, false)
				if errors.Is(err, timer.ErrTimerConflict) {
					return fmt.Errorf("a timer is active for another task (S switches and logs it)")
				}
				return err
			})
		}

	case "S":
		if task, ok := m.selectedTask(); ok {
			id := task.ID
			return m, actionCmd("switched task", func() error {
				_, err := m.deps.Ledger.StartTimer(id, true)
				return err
			})
		}

	case " ", "p":
		if m.state.IsActive {
			paused := m.state.IsPaused
			return m, actionCmd(pauseStatus(paused), func() error {
				var err error
				if paused {
					_, err = m.deps.Timer.Resume()
				} else {
					_, err = m.deps.Timer.Pause()
				}
				return err
			})
		}

	case "l":
		if m.state.IsActive {
			m.currentMode = notesMode
			m.notesInput.SetValue("")
			m.notesInput.Focus()
		} else {
			m.statusLine = "no active timer to log"
		}

	case "d":
		if m.state.IsActive {
			return m, actionCmd("timer discarded", m.deps.Ledger.DiscardTimer)
		}

	case "r":
		m.loading = true
		return m, loadTasksCmd(m.deps.Tasks)
	}

	return m, nil
}

func (m model) updateNotesMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		notes := m.notesInput.Value()
		m.currentMode = listMode
		m.notesInput.Blur()
		return m, actionCmd("session logged", func() error {
			_, err := m.deps.Ledger.LogCurrentSession(notes)
			return err
		})

	case "esc":
		m.currentMode = listMode
		m.notesInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.notesInput, cmd = m.notesInput.Update(msg)
	return m, cmd
}

func pauseStatus(wasPaused bool) string {
	if wasPaused {
		return "timer resumed"
	}
	return "timer paused"
}

func (m *model) selectedTask() (models.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return models.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *model) updateViewport() {
	if m.ready {
		m.viewport.SetContent(m.renderTasks())
	}
}

func (m model) renderTasks() string {
	if m.loading {
		return loadingLine(m.spinner, "Loading tasks...")
	}
	if len(m.tasks) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
		return emptyStyle.Render("No tasks yet. Add one with: timekeeper task add")
	}

	var s strings.Builder
	for i, task := range m.tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		style := lipgloss.NewStyle()
		if i == m.cursor {
			style = style.Foreground(lipgloss.Color("212")).Bold(true)
		}

		total := task.Duration
		marker := " "
		if m.state.IsActive && m.state.TaskID == task.ID {
			total += timer.ElapsedSeconds(m.state, m.nowMillis)
			marker = "●"
		}

		line := fmt.Sprintf("%s%s %-30s %10s", cursor, marker,
			truncate(task.Label, 30), billing.FormatSeconds(total))
		if task.IsBillable {
			line += fmt.Sprintf("  %s%.2f/h", m.deps.Currency, task.BillableRate)
		}
		s.WriteString(style.Render(line) + "\n")
	}
	return s.String()
}

func (m model) renderTimerPanel() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	if !m.state.IsActive {
		idleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		return idleStyle.Render("no timer running")
	}

	elapsed := timer.ElapsedSeconds(m.state, m.nowMillis)

	stateText := "RUNNING"
	stateStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	if m.state.IsPaused {
		stateText = "PAUSED"
		stateStyle = stateStyle.Foreground(lipgloss.Color("214"))
	}

	elapsedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	line := fmt.Sprintf("%s %s  %s",
		stateStyle.Render(stateText),
		elapsedStyle.Render(billing.FormatSeconds(elapsed)),
		labelStyle.Render(m.state.Label))

	if task, ok := m.taskByID(m.state.TaskID); ok && task.IsBillable {
		total := task.Duration + elapsed
		amount := billing.BillableAmount(task, total)
		rateStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		line += rateStyle.Render(fmt.Sprintf("  (%s tracked, %s%.2f)",
			billing.FormatSeconds(total), m.deps.Currency, amount))
	}
	return line
}

func (m model) taskByID(id string) (models.Task, bool) {
	for _, task := range m.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return models.Task{}, false
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	header := m.renderHeader()
	panel := m.renderTimerPanel()
	footer := m.renderFooter()

	status := ""
	if m.statusLine != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
		status = statusStyle.Render(m.statusLine)
	}

	if m.currentMode == notesMode {
		promptStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
		return fmt.Sprintf("%s\n\n%s\n\n%s\n%s\n\n%s\n%s",
			header, panel,
			promptStyle.Render("Notes for this session (enter to log, esc to cancel):"),
			m.notesInput.View(),
			status, footer)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s\n%s\n%s",
		header, panel, m.viewport.View(), status, footer)
}

func (m model) renderHeader() string {
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("63"))
	return style.Render("Timekeeper")
}

func (m model) renderFooter() string {
	info := "↑/↓: navigate • s: start • S: switch • space: pause/resume • l: log • d: discard • r: reload • q: quit"
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return style.Render(info)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Show runs the dashboard until the user quits.
func Show(deps Deps) error {
	p := tea.NewProgram(
		initialModel(deps),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

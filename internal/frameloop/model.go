// Package frameloop runs a progressive waiter inside a Bubble Tea program,
// one Query per frame tick, and renders its progress.
package frameloop

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kbukum/progressive/config"
	"github.com/kbukum/progressive/progressive"
)

const (
	maxBarWidth = 60
	padding     = 2
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// State is the model's lifecycle.
type State int

const (
	// StateRunning means frames are still being scheduled.
	StateRunning State = iota
	// StateDone means the waiter returned its output.
	StateDone
	// StateCancelled means the user quit before the waiter finished.
	StateCancelled
)

// frameMsg is delivered once per frame interval.
type frameMsg time.Time

// Config controls the loop.
type Config struct {
	// Title is shown above the bar.
	Title string
	// Budget is passed to every Query call.
	Budget time.Duration
	// Frame is the interval between Query calls.
	Frame time.Duration
}

// Model is a Bubble Tea model that drives a SizedWaiter.
type Model[D, P, O, C any] struct {
	waiter   *progressive.SizedWaiter[D, P, O, C]
	ctx      C
	cfg      Config
	describe func(P) string

	bar    progress.Model
	state  State
	status string
	frames int
	output O
}

// New creates a model. describe, when non-nil, turns each progress update
// into the status line.
func New[D, P, O, C any](w *progressive.SizedWaiter[D, P, O, C], c C, cfg Config, describe func(P) string) *Model[D, P, O, C] {
	if cfg.Budget <= 0 {
		cfg.Budget = config.DefaultBudget
	}
	if cfg.Frame <= 0 {
		cfg.Frame = config.DefaultFrame
	}
	return &Model[D, P, O, C]{
		waiter:   w,
		ctx:      c,
		cfg:      cfg,
		describe: describe,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxBarWidth)),
	}
}

// Init schedules the first frame.
func (m *Model[D, P, O, C]) Init() tea.Cmd {
	if m.state != StateRunning {
		return tea.Quit
	}
	return m.tick()
}

// Update handles frame ticks, resizes and quit keys.
func (m *Model[D, P, O, C]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.state == StateRunning {
				m.state = StateCancelled
			}
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-padding*2, maxBarWidth)
		if m.bar.Width < 1 {
			m.bar.Width = 1
		}
		return m, nil

	case frameMsg:
		return m.handleFrame()
	}
	return m, nil
}

func (m *Model[D, P, O, C]) handleFrame() (tea.Model, tea.Cmd) {
	// A tick can still arrive after quitting.
	if m.state != StateRunning {
		return m, nil
	}

	m.frames++
	res := m.waiter.Query(m.cfg.Budget, m.ctx)
	if out, ok := res.Output(); ok {
		m.output = out
		m.state = StateDone
		return m, tea.Quit
	}
	if m.describe != nil {
		update, _ := res.Update()
		m.status = m.describe(update)
	}
	return m, m.tick()
}

func (m *Model[D, P, O, C]) tick() tea.Cmd {
	return tea.Tick(m.cfg.Frame, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// View renders the title, the bar and the status line.
func (m *Model[D, P, O, C]) View() string {
	var b strings.Builder
	pad := strings.Repeat(" ", padding)

	b.WriteString("\n" + pad + titleStyle.Render(m.cfg.Title) + "\n\n")
	b.WriteString(pad + m.bar.ViewAs(m.waiter.Progress()) + "\n\n")

	counts := fmt.Sprintf("%d/%d", m.waiter.FinishedCount(), m.waiter.TotalElements())
	switch m.state {
	case StateDone:
		b.WriteString(pad + statusStyle.Render(counts+" done") + "\n")
	case StateCancelled:
		b.WriteString(pad + statusStyle.Render(counts+" cancelled") + "\n")
	default:
		line := counts
		if m.status != "" {
			line += "  " + m.status
		}
		b.WriteString(pad + statusStyle.Render(line) + "\n")
		b.WriteString(pad + helpStyle.Render("q to quit") + "\n")
	}
	return b.String()
}

// State returns the lifecycle state.
func (m *Model[D, P, O, C]) State() State { return m.state }

// Frames returns how many frames queried the waiter.
func (m *Model[D, P, O, C]) Frames() int { return m.frames }

// Output returns the waiter's output once the model is done.
func (m *Model[D, P, O, C]) Output() (O, bool) {
	return m.output, m.state == StateDone
}

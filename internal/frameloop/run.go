package frameloop

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kbukum/progressive/errors"
)

// Run starts a Bubble Tea program for m and blocks until it exits. It
// returns the waiter's output, or a CANCELLED error if the user quit first.
func Run[D, P, O, C any](m *Model[D, P, O, C], opts ...tea.ProgramOption) (O, error) {
	var zero O
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return zero, errors.Internal(fmt.Errorf("running interactive TUI: %w", err))
	}
	out, ok := m.Output()
	if !ok {
		return zero, errors.Cancelled(m.waiter.FinishedCount())
	}
	return out, nil
}

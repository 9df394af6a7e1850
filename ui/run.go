package ui

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/montrey/f/search"
)

// ErrNoTerminal is returned when there is no terminal to draw the selector on.
var ErrNoTerminal = errors.New("interactive selection needs a terminal on stderr")

// Run lets the user pick one of items. It draws on stderr and reads from the
// controlling terminal so stdout stays clean for the chosen path. ok is false
// when the user cancelled or items is empty.
func Run(items []search.Candidate, opts Options) (path string, ok bool, err error) {
	if len(items) == 0 {
		return "", false, nil
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return "", false, ErrNoTerminal
	}

	model := NewSelector(items, opts, lipgloss.NewRenderer(os.Stderr))
	p := tea.NewProgram(model,
		tea.WithOutput(os.Stderr),
		tea.WithInputTTY(),
		tea.WithMouseCellMotion(),
	)

	return result(p.Run())
}

// result turns the program's exit into a selection. An interrupt from
// outside the program is a cancel, not a failure.
func result(final tea.Model, err error) (path string, ok bool, rerr error) {
	if errors.Is(err, tea.ErrInterrupted) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("selector failed: %w", err)
	}
	sel, isSelector := final.(Selector)
	if !isSelector {
		return "", false, nil
	}
	path, ok = sel.Selected()
	return path, ok, nil
}

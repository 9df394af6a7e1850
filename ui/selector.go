package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/montrey/f/search"
)

// DefaultPageSize is the number of rows drawn at once. Quick-pick digits
// cover exactly one page of this size.
const DefaultPageSize = 10

// State is where the selector is in its lifecycle.
type State int

const (
	Running State = iota
	Committed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Options configures a selector.
type Options struct {
	PageSize     int
	ShowDetail   bool
	Disambiguate bool
}

// Selector is the bubbletea model for picking one of a ranked list. It only
// navigates: the order of items is never changed.
type Selector struct {
	items      []search.Candidate
	selected   int
	offset     int
	pageSize   int
	showDetail bool
	state      State

	keys   KeyMap
	help   help.Model
	format Formatter
}

// NewSelector builds a selector in the Running state with the first item
// selected. r styles the output; pass the renderer for the stream the
// program draws on.
func NewSelector(items []search.Candidate, opts Options, r *lipgloss.Renderer) Selector {
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > DefaultPageSize {
		pageSize = DefaultPageSize
	}

	h := help.New()
	h.ShortSeparator = " · "
	h.Styles.ShortKey = r.NewStyle().Faint(true)
	h.Styles.ShortDesc = r.NewStyle().Faint(true)
	h.Styles.ShortSeparator = r.NewStyle().Faint(true)

	return Selector{
		items:      items,
		pageSize:   pageSize,
		showDetail: opts.ShowDetail,
		keys:       DefaultKeyMap(),
		help:       h,
		format:     NewFormatter(items, r, opts.ShowDetail, opts.Disambiguate),
	}
}

func (m Selector) Init() tea.Cmd {
	return nil
}

func (m Selector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state != Running {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.state = Cancelled
			return m, tea.Quit
		case key.Matches(msg, m.keys.Commit):
			if len(m.items) == 0 {
				m.state = Cancelled
			} else {
				m.state = Committed
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pick):
			if i, ok := pickIndex(msg.String()); ok && i < len(m.items) {
				m.selected = i
				m.state = Committed
				return m, tea.Quit
			}
		case key.Matches(msg, m.keys.Down):
			m.move(1)
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
		case key.Matches(msg, m.keys.Detail):
			m.showDetail = !m.showDetail
			m.format.ShowDetail = m.showDetail
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			m.move(1)
		case tea.MouseButtonWheelUp:
			m.move(-1)
		}
	}
	return m, nil
}

// move shifts the selection by delta, clamped to the list, and scrolls the
// window so the selection stays visible.
func (m *Selector) move(delta int) {
	if len(m.items) == 0 {
		return
	}
	m.selected = max(0, min(len(m.items)-1, m.selected+delta))
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.pageSize {
		m.offset = m.selected - m.pageSize + 1
	}
}

// View draws the visible window. Once the selector has finished it draws
// nothing, so the program leaves no list behind on exit.
func (m Selector) View() string {
	if m.state != Running {
		return ""
	}

	var b strings.Builder
	end := min(len(m.items), m.offset+m.pageSize)
	for i := m.offset; i < end; i++ {
		b.WriteString(m.format.Row(i, m.items[i], i == m.selected))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// State reports the lifecycle state.
func (m Selector) State() State {
	return m.state
}

// Selected returns the committed path. ok is false unless the selector
// reached Committed.
func (m Selector) Selected() (path string, ok bool) {
	if m.state != Committed {
		return "", false
	}
	return m.items[m.selected].Path, true
}

// Cursor returns the selected index and the window offset.
func (m Selector) Cursor() (selected, offset int) {
	return m.selected, m.offset
}

// ShowDetail reports whether detail columns are on.
func (m Selector) ShowDetail() bool {
	return m.showDetail
}

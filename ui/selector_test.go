package ui

import (
	"fmt"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/montrey/f/search"
)

func plainRenderer() *lipgloss.Renderer {
	return lipgloss.NewRenderer(io.Discard)
}

func candidates(paths ...string) []search.Candidate {
	items := make([]search.Candidate, len(paths))
	for i, p := range paths {
		items[i] = search.Candidate{Path: p, Score: uint32(100 * (len(paths) - i))}
	}
	return items
}

func numbered(n int) []search.Candidate {
	paths := make([]string, n)
	for i := range paths {
		paths[i] = fmt.Sprintf("/p/dir%02d", i)
	}
	return candidates(paths...)
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// feed drives the model the way the program loop would, reporting whether
// the last message asked the program to quit.
func feed(m Selector, msgs ...tea.Msg) (Selector, bool) {
	quit := false
	for _, msg := range msgs {
		next, cmd := m.Update(msg)
		m = next.(Selector)
		quit = false
		if cmd != nil {
			_, quit = cmd().(tea.QuitMsg)
		}
	}
	return m, quit
}

func TestSelectorRoundTrip(t *testing.T) {
	items := candidates("/a", "/b", "/c")

	tests := []struct {
		name      string
		msgs      []tea.Msg
		wantState State
		wantPath  string
	}{
		{"down down up enter", []tea.Msg{keyDown, keyDown, keyUp, keyEnter}, Committed, "/b"},
		{"esc", []tea.Msg{keyEsc}, Cancelled, ""},
		{"q", []tea.Msg{runes("q")}, Cancelled, ""},
		{"interrupt", []tea.Msg{keyCtrlC}, Cancelled, ""},
		{"quick pick 2", []tea.Msg{runes("2")}, Committed, "/b"},
		{"quick pick after moving", []tea.Msg{keyDown, keyDown, runes("1")}, Committed, "/a"},
		{"enter immediately", []tea.Msg{keyEnter}, Committed, "/a"},
		{"vim keys", []tea.Msg{runes("j"), runes("j"), runes("k"), keyEnter}, Committed, "/b"},
		{"clamped at bottom", []tea.Msg{keyDown, keyDown, keyDown, keyDown, keyEnter}, Committed, "/c"},
		{"clamped at top", []tea.Msg{keyUp, keyUp, keyEnter}, Committed, "/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, quit := feed(NewSelector(items, Options{}, plainRenderer()), tt.msgs...)
			if m.State() != tt.wantState {
				t.Fatalf("Expected state %s, got %s", tt.wantState, m.State())
			}
			if !quit {
				t.Error("Expected the last event to quit the program")
			}
			path, ok := m.Selected()
			if ok != (tt.wantState == Committed) || path != tt.wantPath {
				t.Errorf("Expected selection %q (ok=%v), got %q (ok=%v)", tt.wantPath, tt.wantState == Committed, path, ok)
			}
		})
	}
}

func TestSelectorQuickPickOutOfRange(t *testing.T) {
	m, quit := feed(NewSelector(candidates("/a", "/b", "/c"), Options{}, plainRenderer()), runes("5"), runes("0"))
	if quit || m.State() != Running {
		t.Fatalf("Expected picks past the list to be ignored, got state %s", m.State())
	}
	if sel, _ := m.Cursor(); sel != 0 {
		t.Errorf("Expected selection untouched, got %d", sel)
	}
}

func TestSelectorQuickPickZeroIsTenth(t *testing.T) {
	m, _ := feed(NewSelector(numbered(12), Options{}, plainRenderer()), runes("0"))
	path, ok := m.Selected()
	if !ok || path != "/p/dir09" {
		t.Errorf("Expected 0 to pick the tenth row, got %q (ok=%v)", path, ok)
	}
}

func TestSelectorPaging(t *testing.T) {
	m := NewSelector(numbered(8), Options{PageSize: 3}, plainRenderer())

	steps := []struct {
		msg        tea.Msg
		wantSel    int
		wantOffset int
	}{
		{keyDown, 1, 0},
		{keyDown, 2, 0},
		{keyDown, 3, 1},
		{keyDown, 4, 2},
		{keyUp, 3, 2},
		{keyUp, 2, 2},
		{keyUp, 1, 1},
		{keyUp, 0, 0},
		{keyUp, 0, 0},
	}
	for i, s := range steps {
		m, _ = feed(m, s.msg)
		sel, off := m.Cursor()
		if sel != s.wantSel || off != s.wantOffset {
			t.Fatalf("step %d: expected selected=%d offset=%d, got %d/%d", i, s.wantSel, s.wantOffset, sel, off)
		}
	}
}

func TestSelectorWindowKeepsSelectionVisible(t *testing.T) {
	m := NewSelector(numbered(25), Options{PageSize: 4}, plainRenderer())
	for i := 0; i < 30; i++ {
		m, _ = feed(m, keyDown)
		sel, off := m.Cursor()
		if sel < off || sel >= off+4 {
			t.Fatalf("selection %d outside window [%d,%d)", sel, off, off+4)
		}
	}
	if sel, _ := m.Cursor(); sel != 24 {
		t.Errorf("Expected selection clamped to last index, got %d", sel)
	}

	view := m.View()
	if strings.Contains(view, "dir20") || !strings.Contains(view, "dir24") {
		t.Errorf("Expected only the last page drawn, got:\n%s", view)
	}
}

func TestSelectorPageSizeClamp(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultPageSize},
		{-3, DefaultPageSize},
		{5, 5},
		{50, DefaultPageSize},
	}
	for _, tt := range tests {
		m := NewSelector(numbered(3), Options{PageSize: tt.in}, plainRenderer())
		if m.pageSize != tt.want {
			t.Errorf("PageSize %d: expected %d, got %d", tt.in, tt.want, m.pageSize)
		}
	}
}

func TestSelectorMouseWheel(t *testing.T) {
	wheel := func(b tea.MouseButton) tea.MouseMsg {
		return tea.MouseMsg{Button: b, Action: tea.MouseActionPress}
	}
	m, _ := feed(NewSelector(candidates("/a", "/b", "/c"), Options{}, plainRenderer()),
		wheel(tea.MouseButtonWheelDown),
		wheel(tea.MouseButtonWheelDown),
		wheel(tea.MouseButtonWheelUp),
		tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress},
	)
	if sel, _ := m.Cursor(); sel != 1 {
		t.Errorf("Expected wheel to move selection to 1, got %d", sel)
	}
	if m.State() != Running {
		t.Errorf("Expected clicks to be ignored, got state %s", m.State())
	}
}

func TestSelectorToggleDetail(t *testing.T) {
	m := NewSelector(candidates("/a", "/b"), Options{}, plainRenderer())
	if strings.Contains(m.View(), "░") || strings.Contains(m.View(), "█") {
		t.Error("Expected no score bar with detail off")
	}

	m, quit := feed(m, keyDown, keyTab)
	if quit {
		t.Fatal("Toggle should not quit")
	}
	if !m.ShowDetail() {
		t.Fatal("Expected detail on after tab")
	}
	if sel, _ := m.Cursor(); sel != 1 {
		t.Errorf("Expected toggle to keep selection, got %d", sel)
	}
	if !strings.Contains(m.View(), "█") {
		t.Errorf("Expected score bar with detail on, got:\n%s", m.View())
	}

	m, _ = feed(m, keyTab)
	if m.ShowDetail() {
		t.Error("Expected detail off after second tab")
	}
}

func TestSelectorIgnoresOtherInput(t *testing.T) {
	m := NewSelector(candidates("/a", "/b", "/c"), Options{}, plainRenderer())
	m, _ = feed(m, keyDown)

	next, cmd := m.Update(runes("x"))
	if cmd != nil {
		t.Error("Expected no command for unbound key")
	}
	next, cmd = next.(Selector).Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if cmd != nil {
		t.Error("Expected no command for resize")
	}
	got := next.(Selector)
	if got.State() != Running {
		t.Errorf("Expected Running, got %s", got.State())
	}
	if sel, _ := got.Cursor(); sel != 1 {
		t.Errorf("Expected selection unchanged, got %d", sel)
	}
}

func TestSelectorTerminalStateIsFinal(t *testing.T) {
	m, _ := feed(NewSelector(candidates("/a", "/b"), Options{}, plainRenderer()), keyEsc, keyDown, keyEnter)
	if m.State() != Cancelled {
		t.Errorf("Expected events after cancel to be ignored, got %s", m.State())
	}
	if m.View() != "" {
		t.Errorf("Expected blank final frame, got %q", m.View())
	}
}

func TestSelectorEmptyList(t *testing.T) {
	m, _ := feed(NewSelector(nil, Options{}, plainRenderer()), keyDown, keyEnter)
	if _, ok := m.Selected(); ok {
		t.Error("Expected no selection from an empty list")
	}
	if m.State() != Cancelled {
		t.Errorf("Expected Cancelled, got %s", m.State())
	}
}

func TestSelectorViewDigits(t *testing.T) {
	m := NewSelector(numbered(12), Options{}, plainRenderer())
	for i := 0; i < 11; i++ {
		m, _ = feed(m, keyDown)
	}
	lines := strings.Split(m.View(), "\n")
	// Window is rows 2..11; row 9 is labelled 0, rows 10 and 11 have no digit.
	var row9, row11 string
	for _, l := range lines {
		if strings.Contains(l, "dir09") {
			row9 = l
		}
		if strings.Contains(l, "dir11") {
			row11 = l
		}
	}
	if !strings.Contains(row9, "0 /p/dir09") {
		t.Errorf("Expected digit 0 on the tenth row, got %q", row9)
	}
	if !strings.HasPrefix(row11, ">   /p/dir11") {
		t.Errorf("Expected selected unlabelled row, got %q", row11)
	}
}

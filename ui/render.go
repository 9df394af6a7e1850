package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/montrey/f/search"
)

const barWidth = 10

type styles struct {
	cursor   lipgloss.Style
	selected lipgloss.Style
	normal   lipgloss.Style
	dim      lipgloss.Style
	digit    lipgloss.Style
	bar      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		cursor:   r.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		selected: r.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		normal:   r.NewStyle(),
		dim:      r.NewStyle().Faint(true),
		digit:    r.NewStyle().Foreground(lipgloss.Color("240")),
		bar:      r.NewStyle().Foreground(lipgloss.Color("62")),
	}
}

// Formatter renders ranked candidates as selector rows. With Disambiguate set,
// rows whose basename appears more than once get their parent directory
// appended, dimmed; without it every row shows the full path. ShowDetail adds
// the combined score and a bar relative to the best score in the list.
type Formatter struct {
	ShowDetail   bool
	Disambiguate bool

	styles   styles
	home     string
	dupes    map[string]int
	maxScore uint32
}

// NewFormatter prepares a formatter for items, styled through r.
func NewFormatter(items []search.Candidate, r *lipgloss.Renderer, showDetail, disambiguate bool) Formatter {
	home, _ := os.UserHomeDir()
	f := Formatter{
		ShowDetail:   showDetail,
		Disambiguate: disambiguate,
		styles:       newStyles(r),
		home:         home,
		dupes:        make(map[string]int),
	}
	for _, c := range items {
		f.dupes[search.Basename(c.Path)]++
		if c.Score > f.maxScore {
			f.maxScore = c.Score
		}
	}
	return f
}

// Row renders the candidate at index i of the full list.
func (f Formatter) Row(i int, c search.Candidate, selected bool) string {
	var b strings.Builder

	if selected {
		b.WriteString(f.styles.cursor.Render("> "))
	} else {
		b.WriteString("  ")
	}

	if i < 10 {
		b.WriteString(f.styles.digit.Render(fmt.Sprintf("%d ", (i+1)%10)))
	} else {
		b.WriteString("  ")
	}

	name := f.Name(c.Path)
	if selected {
		b.WriteString(f.styles.selected.Render(name))
	} else {
		b.WriteString(f.styles.normal.Render(name))
	}

	if f.Disambiguate && f.dupes[search.Basename(c.Path)] > 1 {
		b.WriteString(" ")
		b.WriteString(f.styles.dim.Render(f.shorten(filepath.Dir(c.Path))))
	}

	if f.ShowDetail {
		b.WriteString("  ")
		b.WriteString(f.styles.bar.Render(f.bar(c.Score)))
		b.WriteString(" ")
		b.WriteString(f.styles.dim.Render(fmt.Sprintf("%d", c.Score)))
	}
	return b.String()
}

// Name is the display name for path, before any disambiguating suffix.
func (f Formatter) Name(path string) string {
	if !f.Disambiguate {
		return f.shorten(path)
	}
	return search.Basename(path)
}

func (f Formatter) bar(score uint32) string {
	filled := 0
	if f.maxScore > 0 {
		filled = int(uint64(score) * barWidth / uint64(f.maxScore))
	}
	if score > 0 && filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// shorten replaces the home directory prefix with ~.
func (f Formatter) shorten(path string) string {
	if f.home == "" {
		return path
	}
	if path == f.home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(path, f.home+string(filepath.Separator)); ok {
		return "~" + string(filepath.Separator) + rest
	}
	return path
}

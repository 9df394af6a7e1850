package ui

import (
	"strings"
	"testing"

	"github.com/montrey/f/search"
)

func TestFormatterDisambiguate(t *testing.T) {
	items := []search.Candidate{
		{Path: "/work/alpha/web", Score: 10},
		{Path: "/work/beta/web", Score: 5},
		{Path: "/work/api", Score: 1},
	}
	f := NewFormatter(items, plainRenderer(), false, true)
	f.home = ""

	tests := []struct {
		i        int
		contains string
		excludes string
	}{
		{0, "web /work/alpha", ""},
		{1, "web /work/beta", ""},
		{2, "api", "/work"},
	}
	for _, tt := range tests {
		row := f.Row(tt.i, items[tt.i], false)
		if !strings.Contains(row, tt.contains) {
			t.Errorf("row %d: expected %q in %q", tt.i, tt.contains, row)
		}
		if tt.excludes != "" && strings.Contains(row, tt.excludes) {
			t.Errorf("row %d: expected no %q in %q", tt.i, tt.excludes, row)
		}
	}
}

func TestFormatterFullPaths(t *testing.T) {
	items := []search.Candidate{{Path: "/home/me/code/f", Score: 3}}
	f := NewFormatter(items, plainRenderer(), false, false)
	f.home = "/home/me"

	if got := f.Name(items[0].Path); got != "~/code/f" {
		t.Errorf("Expected shortened full path, got %q", got)
	}
}

func TestFormatterDetailBar(t *testing.T) {
	items := []search.Candidate{
		{Path: "/a", Score: 200},
		{Path: "/b", Score: 100},
		{Path: "/c", Score: 0},
	}
	f := NewFormatter(items, plainRenderer(), true, true)

	tests := []struct {
		i    int
		bar  string
		want string
	}{
		{0, strings.Repeat("█", 10), "200"},
		{1, strings.Repeat("█", 5) + strings.Repeat("░", 5), "100"},
		{2, strings.Repeat("░", 10), "0"},
	}
	for _, tt := range tests {
		row := f.Row(tt.i, items[tt.i], false)
		if !strings.Contains(row, tt.bar+" "+tt.want) {
			t.Errorf("row %d: expected bar %q and score %s in %q", tt.i, tt.bar, tt.want, row)
		}
	}
}

func TestPickIndex(t *testing.T) {
	tests := map[string]int{"1": 0, "2": 1, "9": 8, "0": 9}
	for in, want := range tests {
		got, ok := pickIndex(in)
		if !ok || got != want {
			t.Errorf("pickIndex(%q) = %d, %v; want %d", in, got, ok, want)
		}
	}
	for _, in := range []string{"a", "10", ""} {
		if _, ok := pickIndex(in); ok {
			t.Errorf("pickIndex(%q) should not match", in)
		}
	}
}

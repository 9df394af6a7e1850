package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindBack(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "Work", "repo", "src", "pkg")
	if err := os.MkdirAll(deep, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, "Work", "repo", ".git"), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		cwd    string
		query  string
		want   string
		wantOK bool
	}{
		{"nearest name match", deep, "src", filepath.Join(root, "Work", "repo", "src"), true},
		{"case insensitive substring", deep, "wor", filepath.Join(root, "Work"), true},
		{"cwd itself is skipped", deep, "pkg", "", false},
		{"git root without query", deep, "", filepath.Join(root, "Work", "repo"), true},
		{"no match", deep, "nothing-like-this", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := findBack(tt.cwd, tt.query)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("findBack(%q) = %q, %v; want %q, %v", tt.query, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

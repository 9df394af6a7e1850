package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var backCmd = &cobra.Command{
	Use:   "back [query]",
	Short: "Jump to an enclosing directory",
	Long: `Print the nearest enclosing directory whose name contains query
(case-insensitive). Without a query, print the nearest enclosing git
repository root.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		if dir, ok := findBack(cwd, query); ok {
			fmt.Fprintln(cmd.OutOrStdout(), dir)
		}
		return nil
	},
}

// findBack searches the ancestors of cwd, nearest first. cwd itself is
// never a result.
func findBack(cwd, query string) (string, bool) {
	query = strings.ToLower(query)
	current := filepath.Clean(cwd)
	for {
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		if query != "" {
			if strings.Contains(strings.ToLower(filepath.Base(parent)), query) {
				return parent, true
			}
		} else if exists(filepath.Join(parent, ".git")) {
			return parent, true
		}
		current = parent
	}
}

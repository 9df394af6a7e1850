package main

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/montrey/f/config"
	"github.com/montrey/f/store"
)

var addCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Register a root directory to index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := absPath(args[0])
		if err != nil {
			return err
		}
		if !exists(path) {
			return fmt.Errorf("no such directory: %s", path)
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		added, err := store.AddRoot(db, path)
		if err != nil {
			return err
		}
		if added {
			fmt.Fprintf(cmd.ErrOrStderr(), "added %s\n", path)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s is already a root\n", path)
		}
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:     "remove <path>",
	Aliases: []string{"rm"},
	Short:   "Unregister a root directory",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := absPath(args[0])
		if err != nil {
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		removed, err := store.RemoveRoot(db, path)
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("not a root: %s", path)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "removed %s\n", path)
		return nil
	},
}

var rootsCmd = &cobra.Command{
	Use:     "roots",
	Aliases: []string{"list"},
	Short:   "List root directories",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		roots, err := store.GetRoots(db)
		if err != nil {
			return err
		}
		errOut := cmd.ErrOrStderr()
		for _, r := range roots {
			fmt.Fprintln(errOut, r)
		}

		last, err := store.LastIndexed(db)
		if err != nil {
			return err
		}
		if last.IsZero() {
			fmt.Fprintln(errOut, "never indexed")
		} else {
			fmt.Fprintf(errOut, "indexed %s\n", humanize.Time(last))
		}
		return nil
	},
}

// absPath expands a leading ~ and makes path absolute.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(config.ExpandHome(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return abs, nil
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/montrey/f/store"
)

var markCmd = &cobra.Command{
	Use:   "mark <name> [path]",
	Short: "Name a directory so \"f <name>\" jumps straight to it",
	Long: `Bookmark a directory under a name. Without a path the current directory
is used. A jump whose whole query is a mark name goes straight to the
marked directory, skipping ranking.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		var target string
		if len(args) == 2 {
			p, err := absPath(args[1])
			if err != nil {
				return err
			}
			target = p
		} else {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			target = wd
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := store.SetMark(db, name, target); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s -> %s\n", name, target)
		return nil
	},
}

var unmarkCmd = &cobra.Command{
	Use:   "unmark <name>",
	Short: "Remove a mark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		return store.RemoveMark(db, args[0])
	},
}

var marksCmd = &cobra.Command{
	Use:   "marks",
	Short: "List marks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		marks, err := store.ListMarks(db)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.ErrOrStderr(), 0, 0, 2, ' ', 0)
		for _, m := range marks {
			suffix := ""
			if !exists(m.Path) {
				suffix = "  (missing)"
			}
			fmt.Fprintf(w, "%s\t-> %s%s\n", m.Name, m.Path, suffix)
		}
		return w.Flush()
	},
}

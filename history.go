package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/montrey/f/config"
	"github.com/montrey/f/logger"
	"github.com/montrey/f/search"
	"github.com/montrey/f/store"
)

const topLimit = 50

var boostCmd = &cobra.Command{
	Use:   "boost <path>",
	Short: "Record a visit to a directory",
	Long: `Record a visit to a directory. The shell wrapper installed by "f init"
calls this after every jump.`,
	Args: cobra.ExactArgs(1),
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

		_, err = store.Commit(db, func(f *store.Frecency) error {
			f.Boost(path)
			return nil
		})
		return err
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Forget stale history for directories that no longer exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		removed := 0
		if _, err := store.Commit(db, func(f *store.Frecency) error {
			removed = f.Prune()
			return nil
		}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d pruned\n", removed)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <z|zoxide> [path]",
	Short: "Import history from z or zoxide",
	Long: `Import visit history from another jumper.

  z       reads path|rank|time lines from the given file (default ~/.z)
  zoxide  reads the given file of path|score or "score path" lines, or
          asks "zoxide query --list --score" when no file is given

Directories that no longer exist are skipped. Existing entries for the
same path are replaced.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		var path string
		if len(args) == 2 {
			path = config.ExpandHome(args[1])
		}

		src, err := importSource(format, path)
		if err != nil {
			return err
		}
		if src == nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "0 imported")
			return nil
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		count := 0
		if _, err := store.Commit(db, func(f *store.Frecency) error {
			n, err := store.Import(f, format, src)
			count = n
			return err
		}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d imported\n", count)
		return nil
	},
}

// importSource opens the history to import. A nil reader means there is
// nothing to import.
func importSource(format, path string) (io.Reader, error) {
	log := logger.WithComponent("import")

	switch format {
	case "z":
		if path == "" {
			home, _ := os.UserHomeDir()
			path = filepath.Join(home, ".z")
		}
	case "zoxide":
		if path == "" {
			out, err := exec.Command("zoxide", "query", "--list", "--score").Output()
			if err != nil {
				log.Warn("zoxide unavailable", "error", err)
				return nil, nil
			}
			return bytes.NewReader(out), nil
		}
	default:
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownImportFormat, format)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn("nothing to import", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return bytes.NewReader(data), nil
}

var topPlain bool

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Pick from your most used directories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, ok := openReadOnlyDB()
		if !ok {
			return nil
		}
		defer db.Close()

		entries := topEntries(store.LoadFrecency(db), topLimit)
		if len(entries) == 0 {
			return nil
		}

		if topPlain {
			return printTop(cmd.ErrOrStderr(), entries, time.Now())
		}

		items := make([]search.Candidate, len(entries))
		for i, e := range entries {
			items[i] = search.Candidate{Path: e.Path, Score: uint32(e.Frecency)}
		}
		opts := selectorOptions(cfg)
		opts.ShowDetail = true
		path, ok, err := pick(items, opts)
		if err != nil || !ok {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	topCmd.Flags().BoolVar(&topPlain, "plain", false, "print a table instead of opening the picker")
}

// topEntries is the ranked history limited to directories that still exist.
func topEntries(f *store.Frecency, limit int) []store.RankedEntry {
	var out []store.RankedEntry
	for _, e := range f.Ranked() {
		if !exists(e.Path) {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out
}

func printTop(w io.Writer, entries []store.RankedEntry, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%.0f\t%s\t %s\n", i+1, e.Frecency, humanize.RelTime(e.LastUsed, now, "ago", "from now"), e.Path)
	}
	return tw.Flush()
}

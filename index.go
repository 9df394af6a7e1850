package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/montrey/f/config"
	"github.com/montrey/f/search"
	"github.com/montrey/f/store"
)

var indexWatch bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Scan every root for project directories",
	Long: `Walk every registered root and cache the directories that contain a
project marker (.git, go.mod, package.json, ...). With --watch, keep
running and rescan whenever directories appear or disappear.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIndex(cmd, indexWatch)
	},
}

func init() {
	indexCmd.Flags().BoolVarP(&indexWatch, "watch", "w", false, "keep the index fresh until interrupted")
}

func runIndex(cmd *cobra.Command, watch bool) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	errOut := cmd.ErrOrStderr()
	roots, err := store.GetRoots(db)
	if err != nil {
		return err
	}
	if len(roots) == 0 {
		home, _ := os.UserHomeDir()
		fmt.Fprintf(errOut, "no roots yet, add one with: f add %s\n", home)
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := scanOptions(cfg)
	progress := isTerminal(errOut)
	if progress {
		opts.Progress = func(found int) {
			fmt.Fprintf(errOut, "\r\x1b[K%d", found)
		}
	}

	dirs, err := search.Scan(ctx, roots, opts)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to index: %w", err)
	}
	if err := store.ReplaceDirectories(db, dirs); err != nil {
		return err
	}
	if progress {
		fmt.Fprint(errOut, "\r\x1b[K")
	}
	fmt.Fprintf(errOut, "%d directories indexed\n", len(dirs))

	if !watch {
		return nil
	}

	fmt.Fprintln(errOut, "watching for changes, ctrl+c to stop")
	opts.Progress = nil
	w := &search.Watcher{
		Roots:   roots,
		Options: opts,
		OnScan: func(dirs []string) error {
			return store.ReplaceDirectories(db, dirs)
		},
	}
	return w.Run(ctx, dirs)
}

func scanOptions(c *config.Config) search.ScanOptions {
	return search.ScanOptions{
		MaxDepth: c.Index.MaxDepth,
		Markers:  c.Index.Markers,
		Skip:     c.Index.Skip,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

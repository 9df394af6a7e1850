package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/montrey/f/config"
	"github.com/montrey/f/logger"
	"github.com/montrey/f/search"
	"github.com/montrey/f/store"
	"github.com/montrey/f/ui"
)

// selectFunc picks one of a ranked list. ok is false on cancel.
type selectFunc func(items []search.Candidate, opts ui.Options) (path string, ok bool, err error)

// pick is swapped out by tests.
var pick selectFunc = ui.Run

func runJump(cmd *cobra.Command, query string) error {
	db, ok := openReadOnlyDB()
	if !ok {
		return nil
	}
	defer db.Close()

	cwd, _ := os.Getwd()
	target, ok, err := resolveJump(db, cfg, query, cwd, pick)
	if err != nil || !ok {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), target)
	return nil
}

// resolveJump turns a query into a directory. ok is false when nothing
// matched or the user cancelled, which is not an error.
func resolveJump(db *sql.DB, c *config.Config, query, cwd string, sel selectFunc) (string, bool, error) {
	log := logger.WithComponent("jump")

	if path, found, err := store.GetMark(db, query); err != nil {
		log.Warn("marks unreadable", "error", err)
	} else if found && exists(path) {
		return path, true, nil
	}

	cached, err := store.GetDirectories(db)
	if err != nil {
		return "", false, err
	}
	dirs := jumpCandidates(cached, cwd)
	if len(dirs) == 0 {
		return "", false, nil
	}

	ranked := search.Rank(dirs, query, store.LoadFrecency(db))
	if len(ranked) == 0 {
		return "", false, nil
	}
	if len(ranked) > c.Jump.Limit {
		ranked = ranked[:c.Jump.Limit]
	}
	if len(ranked) == 1 {
		return ranked[0].Path, true, nil
	}

	return sel(ranked, selectorOptions(c))
}

// jumpCandidates keeps cached directories that still exist, minus the one
// the shell is already in.
func jumpCandidates(cached []string, cwd string) []string {
	dirs := make([]string, 0, len(cached))
	for _, d := range cached {
		if d == cwd || !exists(d) {
			continue
		}
		dirs = append(dirs, d)
	}
	return dirs
}

// openReadOnlyDB opens the state database for commands that only read it.
// An unopenable or corrupt database counts as empty state, so ok is false
// and the caller has nothing to show.
func openReadOnlyDB() (*sql.DB, bool) {
	db, err := openDB()
	if err != nil {
		logger.WithComponent("store").Warn("state database unreadable, treating as empty", "error", err)
		return nil, false
	}
	return db, true
}

func selectorOptions(c *config.Config) ui.Options {
	return ui.Options{
		PageSize:     c.UI.PageSize,
		ShowDetail:   c.UI.ShowDetail,
		Disambiguate: c.UI.Disambiguate,
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

package search

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/montrey/f/logger"
)

// Watcher keeps the directory cache fresh by rescanning whenever a directory
// appears or disappears under a root or next to an indexed project.
type Watcher struct {
	Roots    []string
	Options  ScanOptions
	Debounce time.Duration

	// OnScan receives every rescan result.
	OnScan func(dirs []string) error
}

// Run watches until ctx is cancelled. initial is the result of the scan the
// caller already did.
func (w *Watcher) Run(ctx context.Context, initial []string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer fw.Close()

	log := logger.WithComponent("watch")
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = 2 * time.Second
	}

	watched := make(map[string]bool)
	refresh := func(dirs []string) {
		want := watchSet(w.Roots, dirs)
		for dir := range watched {
			if !want[dir] {
				_ = fw.Remove(dir)
				delete(watched, dir)
			}
		}
		for dir := range want {
			if watched[dir] {
				continue
			}
			if err := fw.Add(dir); err != nil {
				log.Debug("cannot watch", "dir", dir, "error", err)
				continue
			}
			watched[dir] = true
		}
	}
	refresh(initial)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				log.Debug("change", "path", event.Name, "op", event.Op.String())
				timer.Reset(debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)

		case <-timer.C:
			dirs, err := Scan(ctx, w.Roots, w.Options)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			if w.OnScan != nil {
				if err := w.OnScan(dirs); err != nil {
					return err
				}
			}
			refresh(dirs)
		}
	}
}

// watchSet is every root plus the parent of every indexed directory below a
// root, which is where new sibling projects show up.
func watchSet(roots, dirs []string) map[string]bool {
	rootSet := make(map[string]bool, len(roots))
	for _, r := range roots {
		if abs, err := filepath.Abs(r); err == nil {
			rootSet[abs] = true
		}
	}
	set := make(map[string]bool, len(roots)+len(dirs))
	for r := range rootSet {
		set[r] = true
	}
	for _, d := range dirs {
		if rootSet[d] {
			continue
		}
		set[filepath.Dir(d)] = true
	}
	return set
}

package search

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/monochromegane/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/montrey/f/logger"
)

// DefaultMarkers are the files or directories that make a directory a
// project worth jumping to.
var DefaultMarkers = []string{
	".git",
	"package.json",
	"Cargo.toml",
	"go.mod",
	"pyproject.toml",
	"setup.py",
	"Makefile",
	"CMakeLists.txt",
	"pom.xml",
	"build.gradle",
	"mix.exs",
	"deno.json",
	"bun.lockb",
	"flake.nix",
	"shell.nix",
	"Project.toml",
	"pubspec.yaml",
	"Package.swift",
}

// DefaultSkip lists directory names never descended into.
var DefaultSkip = []string{"node_modules", "vendor"}

// ScanOptions controls Scan.
type ScanOptions struct {
	MaxDepth int
	Markers  []string
	Skip     []string

	// Progress, if set, is called with the running total after each root.
	Progress func(found int)
}

// Scan walks every root and returns the project directories under them,
// root by root in the order given. Roots are walked in parallel. A missing
// root is logged and skipped.
func Scan(ctx context.Context, roots []string, opts ScanOptions) ([]string, error) {
	if len(opts.Markers) == 0 {
		opts.Markers = DefaultMarkers
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 5
	}

	perRoot := make([][]string, len(roots))
	var (
		mu    sync.Mutex
		found int
	)

	g, ctx := errgroup.WithContext(ctx)
	for i, root := range roots {
		g.Go(func() error {
			dirs, err := walkRoot(ctx, root, opts)
			if err != nil {
				return err
			}
			perRoot[i] = dirs

			mu.Lock()
			found += len(dirs)
			if opts.Progress != nil {
				opts.Progress(found)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var all []string
	for _, dirs := range perRoot {
		for _, d := range dirs {
			if !seen[d] {
				seen[d] = true
				all = append(all, d)
			}
		}
	}
	return all, nil
}

// walkRoot returns the project directories under root, root included. It
// respects the root's .gitignore and skips hidden directories.
func walkRoot(ctx context.Context, root string, opts ScanOptions) ([]string, error) {
	log := logger.WithComponent("index")

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		log.Warn("skipping root", "root", root, "error", err)
		return nil, nil
	}

	var ignoreMatcher gitignore.IgnoreMatcher
	gitignorePath := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		ignoreMatcher, err = gitignore.NewGitIgnore(gitignorePath)
		if err != nil {
			log.Debug("unreadable .gitignore", "path", gitignorePath, "error", err)
		}
	}

	skip := make(map[string]bool, len(opts.Skip))
	for _, name := range opts.Skip {
		skip[name] = true
	}

	var dirs []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Permission denied and friends: keep the partial result.
			log.Debug("walk error", "path", path, "error", err)
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.IsDir() {
			return nil
		}

		depth := 0
		if path != root {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return nil
			}
			depth = strings.Count(rel, string(filepath.Separator)) + 1

			name := d.Name()
			if strings.HasPrefix(name, ".") || skip[name] {
				return filepath.SkipDir
			}
			if ignoreMatcher != nil && ignoreMatcher.Match(path, true) {
				return filepath.SkipDir
			}
		}

		if isProject(path, opts.Markers) {
			dirs = append(dirs, path)
		}
		if depth >= opts.MaxDepth {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}

func isProject(dir string, markers []string) bool {
	for _, m := range markers {
		if _, err := os.Lstat(filepath.Join(dir, m)); err == nil {
			return true
		}
	}
	return false
}

package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownImportFormat is returned for an import source other than z or zoxide.
var ErrUnknownImportFormat = errors.New("unknown import format (supported: z, zoxide)")

// Import reads another jump tool's history into f and ages the result.
// Existing entries for the same path are overwritten. Paths that no longer
// exist are skipped.
func Import(f *Frecency, format string, r io.Reader) (int, error) {
	var parse func(line string) (string, Entry, bool)
	switch format {
	case "z":
		parse = f.parseZLine
	case "zoxide":
		parse = f.parseZoxideLine
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownImportFormat, format)
	}

	count := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		path, e, ok := parse(scanner.Text())
		if !ok || !pathExists(path) {
			continue
		}
		f.Set(path, e)
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("failed to read %s history: %w", format, err)
	}

	f.Age()
	return count, nil
}

// parseZLine handles the ~/.z format: path|rank|time.
func (f *Frecency) parseZLine(line string) (string, Entry, bool) {
	parts := strings.Split(strings.TrimSpace(line), "|")
	if len(parts) < 2 || parts[0] == "" {
		return "", Entry{}, false
	}
	e := Entry{Score: parseScore(parts[1]), LastUsed: f.now()}
	if len(parts) >= 3 {
		if ts, err := strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 64); err == nil && ts > 0 {
			e.LastUsed = ts
		}
	}
	return parts[0], e, true
}

// parseZoxideLine accepts either path|score or the "score path" lines printed
// by `zoxide query --list --score`. zoxide keeps no usable timestamp, so the
// entry is treated as used now.
func (f *Frecency) parseZoxideLine(line string) (string, Entry, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", Entry{}, false
	}
	if strings.Contains(trimmed, "|") {
		parts := strings.SplitN(trimmed, "|", 3)
		if parts[0] == "" {
			return "", Entry{}, false
		}
		return parts[0], Entry{Score: parseScore(parts[1]), LastUsed: f.now()}, true
	}

	scoreField, path, found := strings.Cut(trimmed, " ")
	if !found {
		return "", Entry{}, false
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return "", Entry{}, false
	}
	return path, Entry{Score: parseScore(scoreField), LastUsed: f.now()}, true
}

func parseScore(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 1.0
	}
	return v
}

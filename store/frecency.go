package store

import (
	"math"
	"os"
	"sort"
	"time"
)

const (
	// MaxTotalScore is the aging ceiling: once the summed raw score passes it,
	// every entry is scaled down so the total lands at AgeTarget of the ceiling.
	MaxTotalScore = 10000.0
	AgeTarget     = 0.9

	// PruneAfter is how long an entry for a vanished path is kept.
	PruneAfter = 90 * 24 * time.Hour

	hour = int64(time.Hour / time.Second)
	day  = 24 * hour
	week = 7 * day
)

// Entry is the usage statistic kept for one path.
type Entry struct {
	Score    float64
	LastUsed int64 // unix seconds
}

// RankedEntry pairs a path with its current frecency.
type RankedEntry struct {
	Path     string
	Frecency float64
	LastUsed time.Time
}

// Frecency is the in-memory usage store. It is loaded once per command,
// mutated, and written back as a whole with SaveFrecency.
type Frecency struct {
	entries map[string]Entry

	// Now is the clock used for boosts, pruning and recency weighting.
	// Nil means time.Now.
	Now func() time.Time
}

// pathExists is swapped out by tests that need a fake filesystem.
var pathExists = func(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// NewFrecency returns an empty store.
func NewFrecency() *Frecency {
	return &Frecency{entries: make(map[string]Entry)}
}

func (f *Frecency) now() int64 {
	if f.Now != nil {
		return f.Now().Unix()
	}
	return time.Now().Unix()
}

// Len returns the number of tracked paths.
func (f *Frecency) Len() int { return len(f.entries) }

// Get returns the entry for path, if any.
func (f *Frecency) Get(path string) (Entry, bool) {
	e, ok := f.entries[path]
	return e, ok
}

// Set stores an entry verbatim. Negative and NaN scores are clamped to zero,
// infinite ones to MaxTotalScore.
func (f *Frecency) Set(path string, e Entry) {
	if e.Score < 0 || math.IsNaN(e.Score) {
		e.Score = 0
	}
	if math.IsInf(e.Score, 1) {
		e.Score = MaxTotalScore
	}
	f.entries[path] = e
}

// Total returns the sum of all raw scores.
func (f *Frecency) Total() float64 {
	var total float64
	for _, e := range f.entries {
		total += e.Score
	}
	return total
}

// Boost records one use of path and then ages the store.
func (f *Frecency) Boost(path string) {
	ts := f.now()
	e := f.entries[path]
	e.Score += 1.0
	e.LastUsed = ts
	f.entries[path] = e
	f.Age()
}

// Age scales every score down once the total passes MaxTotalScore and drops
// entries that fall below 1.
func (f *Frecency) Age() {
	total := f.Total()
	if total <= MaxTotalScore {
		return
	}
	factor := (MaxTotalScore * AgeTarget) / total
	for path, e := range f.entries {
		e.Score *= factor
		if e.Score < 1.0 {
			delete(f.entries, path)
			continue
		}
		f.entries[path] = e
	}
}

// Prune removes entries whose path is gone from disk and that have not been
// used for PruneAfter. It returns how many entries were removed.
func (f *Frecency) Prune() int {
	ts := f.now()
	limit := int64(PruneAfter / time.Second)
	removed := 0
	for path, e := range f.entries {
		if ts-e.LastUsed <= limit {
			continue
		}
		if pathExists(path) {
			continue
		}
		delete(f.entries, path)
		removed++
	}
	return removed
}

// Frecency weights an entry's raw score by how recently it was used.
func (f *Frecency) Frecency(e Entry) float64 {
	age := f.now() - e.LastUsed
	if age < 0 {
		age = 0
	}
	return e.Score * recencyMultiplier(age)
}

func recencyMultiplier(age int64) float64 {
	switch {
	case age < hour:
		return 4.0
	case age < day:
		return 2.0
	case age < week:
		return 0.5
	default:
		return 0.25
	}
}

// Score returns the frecency of path, or 0 when it has never been boosted.
func (f *Frecency) Score(path string) float64 {
	e, ok := f.entries[path]
	if !ok {
		return 0
	}
	return f.Frecency(e)
}

// Ranked lists every entry by frecency, highest first. Ties are ordered by
// path so the listing is stable.
func (f *Frecency) Ranked() []RankedEntry {
	ranked := make([]RankedEntry, 0, len(f.entries))
	for path, e := range f.entries {
		ranked = append(ranked, RankedEntry{
			Path:     path,
			Frecency: f.Frecency(e),
			LastUsed: time.Unix(e.LastUsed, 0),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Frecency != ranked[j].Frecency {
			return ranked[i].Frecency > ranked[j].Frecency
		}
		return ranked[i].Path < ranked[j].Path
	})
	return ranked
}

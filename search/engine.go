package search

import (
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Tier scores for the text term. An exact basename match outscores any
// frecency the store can reach (aging caps raw scores at 10000, recency
// weighting at 4x), so it always ranks first. The prefix tier is small on
// purpose: heavy use can lift a fuzzy match over a rarely used prefix match.
const (
	ExactMatchScore  uint32 = 100000
	PrefixMatchScore uint32 = 1000
	// FuzzyScoreCap bounds the fuzzy primitive's contribution to [0, FuzzyScoreCap).
	FuzzyScoreCap = 500
)

// Candidate is a ranked directory.
type Candidate struct {
	Path  string
	Score uint32
}

// Scorer supplies the usage term for a path. *store.Frecency satisfies it.
type Scorer interface {
	Score(path string) float64
}

// Rank orders paths against query by text match on the basename plus
// frecency. Paths the query does not match are dropped; equal scores keep
// their input order. An empty query yields nothing.
func Rank(paths []string, query string, scorer Scorer) []Candidate {
	query = strings.TrimSpace(query)
	if query == "" || len(paths) == 0 {
		return nil
	}

	// Spaces are dropped for the fuzzy pass so "foo bar" gap-matches "foo-bar".
	fuzzyQuery := strings.ReplaceAll(query, " ", "")
	lowerQuery := strings.ToLower(query)

	results := make([]Candidate, 0, len(paths))
	for _, p := range paths {
		name := Basename(p)
		fuzzyScore, matched := Match(fuzzyQuery, name)
		text, ok := textScore(strings.ToLower(name), lowerQuery, fuzzyScore, matched)
		if !ok {
			continue
		}
		var usage uint32
		if scorer != nil {
			usage = saturate(scorer.Score(p))
		}
		results = append(results, Candidate{Path: p, Score: saturatingAdd(text, usage)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// textScore applies the exact and prefix overrides on top of the fuzzy score.
func textScore(name, query string, fuzzyScore int, fuzzyMatched bool) (uint32, bool) {
	switch {
	case name == query:
		return ExactMatchScore, true
	case strings.HasPrefix(name, query):
		return PrefixMatchScore + clampFuzzy(fuzzyScore), true
	case fuzzyMatched:
		return clampFuzzy(fuzzyScore), true
	default:
		return 0, false
	}
}

func clampFuzzy(score int) uint32 {
	if score < 0 {
		return 0
	}
	if score >= FuzzyScoreCap {
		return FuzzyScoreCap - 1
	}
	return uint32(score)
}

// saturate truncates a frecency value into uint32 range.
func saturate(v float64) uint32 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

func saturatingAdd(a, b uint32) uint32 {
	if a > math.MaxUint32-b {
		return math.MaxUint32
	}
	return a + b
}

// Match is the fuzzy primitive Rank scores every basename with: it reports
// whether query matches haystack in order and how well. Scores are only
// comparable for one query.
func Match(query, haystack string) (int, bool) {
	matches := fuzzy.Find(query, []string{haystack})
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0].Score, true
}

// Basename is the final path component used for matching and display.
func Basename(path string) string {
	return filepath.Base(path)
}

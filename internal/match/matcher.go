package match

import (
	"github.com/charmbracelet/log"
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/curatecli/curate/internal/models"
)

// ScoreFunc is a symmetric string-similarity scorer in range 0-100.
// The default is the weighted-ratio scorer, which tolerates word reordering
// and partial token overlap.
type ScoreFunc func(a, b string) int

// Index maps normalized "Title by Artist" keys to their owning catalog
// entries. Built once per run; read-only during matching.
//
// Every normalized key maps to exactly one entry. When two entries normalize
// identically, the later one in fetch order wins - an accepted collision
// policy, not an error.
type Index struct {
	keys    []string // normalized keys in first-insertion order
	entries map[string]models.CatalogEntry
}

// NewIndex builds an Index from a catalog snapshot. Entries whose match
// identifier normalizes to an empty string are unmatchable and left out.
func NewIndex(entries []models.CatalogEntry) *Index {
	idx := &Index{entries: make(map[string]models.CatalogEntry, len(entries))}
	for _, entry := range entries {
		key := Normalize(entry.MatchIdentifier())
		if key == "" {
			continue
		}
		if _, seen := idx.entries[key]; !seen {
			idx.keys = append(idx.keys, key)
		}
		idx.entries[key] = entry
	}
	return idx
}

// Len returns the number of distinct normalized keys in the index.
func (i *Index) Len() int {
	return len(i.keys)
}

// Lookup resolves a normalized key to its catalog entry.
func (i *Index) Lookup(key string) (models.CatalogEntry, bool) {
	entry, ok := i.entries[key]
	return entry, ok
}

// Result records the outcome of matching a single suggestion.
// Entry is nil when no catalog entry scored at or above the threshold.
type Result struct {
	Suggestion string
	Entry      *models.CatalogEntry
	Score      int
	Duplicate  bool // matched an entry already accepted earlier in the run
}

// Matcher fuzzy-matches model output lines against an Index.
type Matcher struct {
	index     *Index
	threshold int
	score     ScoreFunc
	logger    *log.Logger
}

// MatcherOpts configures a Matcher. Score defaults to the weighted-ratio
// scorer and Logger to the package default logger.
type MatcherOpts struct {
	Index     *Index
	Threshold int
	Score     ScoreFunc
	Logger    *log.Logger
}

// NewMatcher creates a Matcher over the given index.
func NewMatcher(opts MatcherOpts) *Matcher {
	if opts.Score == nil {
		opts.Score = fuzzy.WRatio
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Matcher{
		index:     opts.Index,
		threshold: opts.Threshold,
		score:     opts.Score,
		logger:    opts.Logger,
	}
}

// Match processes suggestions in input order and returns the per-suggestion
// results plus the ordered list of unique accepted catalog IDs.
//
// A single bad suggestion never fails the run: empty normalizations,
// below-threshold scores, and duplicate hits are logged and skipped. Output
// ordering is first-acceptance order, preserving whatever priority the model
// expressed.
func (m *Matcher) Match(suggestions []string) ([]Result, []string) {
	results := make([]Result, 0, len(suggestions))
	ids := make([]string, 0, len(suggestions))
	accepted := make(map[string]bool, len(suggestions))

	for _, suggestion := range suggestions {
		normalized := Normalize(suggestion)
		if normalized == "" {
			m.logger.Warn("skipping suggestion that normalized to nothing", "suggestion", suggestion)
			results = append(results, Result{Suggestion: suggestion})
			continue
		}

		key, score := m.bestKey(normalized)

		if key == "" {
			// Exact-lookup safety net for a normalized suggestion the scorer
			// did not surface. Redundant whenever the scorer rates identical
			// strings at 100, but kept as a documented fallback.
			if _, ok := m.index.Lookup(normalized); ok {
				key, score = normalized, 100
			}
		}

		if key == "" {
			m.logger.Warn("no confident match for suggestion",
				"suggestion", suggestion, "normalized", normalized)
			results = append(results, Result{Suggestion: suggestion})
			continue
		}

		entry, ok := m.index.Lookup(key)
		if !ok {
			m.logger.Warn("matched key missing from index", "key", key)
			results = append(results, Result{Suggestion: suggestion})
			continue
		}

		if accepted[entry.ID] {
			m.logger.Info("suggestion matched an already-accepted track",
				"suggestion", suggestion, "track", entry.MatchIdentifier())
			results = append(results, Result{Suggestion: suggestion, Entry: &entry, Score: score, Duplicate: true})
			continue
		}

		accepted[entry.ID] = true
		ids = append(ids, entry.ID)
		results = append(results, Result{Suggestion: suggestion, Entry: &entry, Score: score})
		m.logger.Info("matched suggestion",
			"suggestion", suggestion, "track", entry.MatchIdentifier(), "score", score, "id", entry.ID)
	}

	return results, ids
}

// bestKey scans every key in index insertion order and returns the single
// best-scoring one at or above the threshold. Ties keep the first key
// encountered; this tie-break is arbitrary and documented, not a stable
// contract.
func (m *Matcher) bestKey(normalized string) (string, int) {
	bestKey, bestScore := "", -1
	for _, key := range m.index.keys {
		if score := m.score(normalized, key); score > bestScore {
			bestKey, bestScore = key, score
		}
	}
	if bestScore < m.threshold {
		return "", 0
	}
	return bestKey, bestScore
}

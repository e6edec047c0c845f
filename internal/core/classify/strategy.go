package classify

import "github.com/nmoreyra/docsort/internal/core/domain"

// Method names recognized by the engine and the weight configuration.
const (
	MethodKeyword     = "keyword"
	MethodRegex       = "regex"
	MethodStatistical = "statistical"
	MethodLayout      = "layout"
	MethodAgro        = "agro"
	MethodCommercial  = "commercial"
)

// KnownMethods lists every method name a WeightConfig may reference.
var KnownMethods = []string{
	MethodKeyword,
	MethodRegex,
	MethodStatistical,
	MethodLayout,
	MethodAgro,
	MethodCommercial,
}

// MethodResult maps candidate document types to raw scores in [0,1]. Scores
// across types need not sum to 1; a method may flag several non-exclusive
// candidates. An empty result means the method found no signal.
type MethodResult map[domain.DocumentType]float64

// Strategy is the shared contract of every classification method. Score must
// be pure: no side effects, no mutable state across calls, never an error.
// Empty input text yields an empty result, not a failure.
type Strategy interface {
	Name() string
	Score(input domain.ClassificationInput) MethodResult
}

// add accumulates delta for t, capping the score at 1.
func (r MethodResult) add(t domain.DocumentType, delta float64) {
	if delta <= 0 {
		return
	}
	s := r[t] + delta
	if s > 1 {
		s = 1
	}
	r[t] = s
}

// set records a score for t clamped into [0,1], dropping non-positive values.
func (r MethodResult) set(t domain.DocumentType, score float64) {
	if score <= 0 {
		return
	}
	if score > 1 {
		score = 1
	}
	r[t] = score
}

// Top returns the highest-scoring type, breaking ties by the fixed document
// type priority order. ok is false for an empty result.
func (r MethodResult) Top() (best domain.DocumentType, score float64, ok bool) {
	for t, s := range r {
		if !ok || s > score || (s == score && t.PriorityRank() < best.PriorityRank()) {
			best, score, ok = t, s, true
		}
	}
	return best, score, ok
}

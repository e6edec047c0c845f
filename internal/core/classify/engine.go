package classify

import (
	"fmt"
	"log/slog"

	"github.com/nmoreyra/docsort/internal/core/domain"
)

// Engine combines every enabled classification method under configured
// weights and resolves a single decision per document. It holds no mutable
// state across calls, so one Engine may serve concurrent classifications.
type Engine struct {
	cfg        WeightConfig
	strategies []Strategy
	detector   *SupplierDetector
}

// NewEngine validates the configuration against the registered strategies.
// detector may be nil when supplier detection is disabled.
func NewEngine(cfg WeightConfig, strategies []Strategy, detector *SupplierDetector) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(strategies))
	for _, s := range strategies {
		if s == nil {
			return nil, domain.WrapError(domain.ErrConfiguration, "register strategies",
				fmt.Errorf("nil strategy"))
		}
		if seen[s.Name()] {
			return nil, domain.WrapError(domain.ErrConfiguration, "register strategies",
				fmt.Errorf("duplicate method %q", s.Name()))
		}
		seen[s.Name()] = true
	}
	return &Engine{cfg: cfg, strategies: strategies, detector: detector}, nil
}

// Classify runs every registered method over the input and aggregates their
// results into one decision. It never fails: an unclassifiable document is
// reported as unknown, and a faulting method counts as "no signal".
func (e *Engine) Classify(input domain.ClassificationInput) domain.Decision {
	type methodOutcome struct {
		name   string
		result MethodResult
	}

	outcomes := make([]methodOutcome, 0, len(e.strategies))
	enabled := make([]string, 0, len(e.strategies))
	for _, s := range e.strategies {
		enabled = append(enabled, s.Name())
		result := e.sanitize(e.safeScore(s, input))
		if len(result) > 0 {
			outcomes = append(outcomes, methodOutcome{name: s.Name(), result: result})
		}
	}

	if len(outcomes) == 0 {
		return domain.Decision{Type: domain.TypeUnknown, Confidence: 0}
	}

	var hint *domain.SupplierHint
	if e.detector != nil {
		hint = e.detector.Detect(input)
	}

	// Weighted sum per candidate type; methods that produced nothing do not
	// dilute the denominator, keeping confidence comparable when optional
	// methods are disabled or degraded.
	raw := make(map[domain.DocumentType]float64)
	denominator := 0.0
	for _, out := range outcomes {
		weight := e.cfg.weight(out.name)
		denominator += weight
		for t, score := range out.result {
			raw[t] += weight * score
		}
	}
	if denominator <= 0 {
		return domain.Decision{Type: domain.TypeUnknown, Confidence: 0}
	}

	supplierBoost := 0.0
	if hint != nil {
		supplierBoost = e.cfg.SupplierBoostWeight * hint.Strength
		for _, t := range hint.FavoredTypes {
			raw[t] += supplierBoost
		}
	}

	winner := argmax(raw)

	// Agreement bonus: at least two methods independently ranked the winner
	// as their own top candidate. A zero-weight method is disabled for
	// aggregation and its vote does not count.
	agreeing := 0
	for _, out := range outcomes {
		if e.cfg.weight(out.name) <= 0 {
			continue
		}
		if top, _, ok := out.result.Top(); ok && top == winner {
			agreeing++
		}
	}
	consensusApplied := agreeing >= 2
	if consensusApplied {
		raw[winner] += e.cfg.ConsensusFactor
	}

	confidence := raw[winner] / denominator

	breakdown := domain.Breakdown{
		EnabledMethods: enabled,
		SupplierHint:   hint,
		RawConfidence:  confidence,
	}
	for _, out := range outcomes {
		score, ok := out.result[winner]
		if !ok {
			continue
		}
		weight := e.cfg.weight(out.name)
		breakdown.Contributions = append(breakdown.Contributions, domain.MethodContribution{
			Method:       out.name,
			Score:        score,
			Weight:       weight,
			Contribution: weight * score / denominator,
		})
	}
	if hint != nil && favors(hint, winner) {
		breakdown.SupplierContribution = supplierBoost / denominator
	}
	if consensusApplied {
		breakdown.ConsensusContribution = e.cfg.ConsensusFactor / denominator
	}

	if confidence < e.cfg.AcceptThreshold {
		// Low-confidence evidence stays visible in the breakdown.
		return domain.Decision{Type: domain.TypeUnknown, Confidence: 0, Breakdown: breakdown}
	}
	return domain.Decision{Type: winner, Confidence: clamp01(confidence), Breakdown: breakdown}
}

// safeScore recovers a panicking strategy into an empty result so that one
// faulty method can never abort the overall classification.
func (e *Engine) safeScore(s Strategy, input domain.ClassificationInput) (result MethodResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("classifier_strategy_fault", "method", s.Name(), "panic", fmt.Sprint(r))
			result = nil
		}
	}()
	return s.Score(input)
}

// sanitize drops invalid types, clamps scores into [0,1] and discards
// anything below the configured floor.
func (e *Engine) sanitize(result MethodResult) MethodResult {
	if len(result) == 0 {
		return nil
	}
	out := make(MethodResult, len(result))
	for t, score := range result {
		if !t.Valid() || t == domain.TypeUnknown {
			continue
		}
		if score > 1 {
			score = 1
		}
		if score <= 0 || score < e.cfg.ScoreFloor {
			continue
		}
		out[t] = score
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func argmax(scores map[domain.DocumentType]float64) domain.DocumentType {
	best := domain.TypeUnknown
	bestScore := 0.0
	found := false
	for t, score := range scores {
		if !found || score > bestScore || (score == bestScore && t.PriorityRank() < best.PriorityRank()) {
			best, bestScore, found = t, score, true
		}
	}
	return best
}

func favors(hint *domain.SupplierHint, t domain.DocumentType) bool {
	for _, favored := range hint.FavoredTypes {
		if favored == t {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

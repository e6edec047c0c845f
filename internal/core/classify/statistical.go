package classify

import (
	"log/slog"
	"strings"

	"github.com/nmoreyra/docsort/internal/core/domain"
)

// ModelScorer is the pre-trained statistical model backing the statistical
// method. Implementations are read-only after load and safe for concurrent
// use. The engine never trains or updates the model.
type ModelScorer interface {
	Available() bool
	Score(text string) (map[domain.DocumentType]float64, error)
}

type StatisticalClassifier struct {
	model ModelScorer
}

func NewStatisticalClassifier(model ModelScorer) *StatisticalClassifier {
	return &StatisticalClassifier{model: model}
}

func (*StatisticalClassifier) Name() string { return MethodStatistical }

// Score forwards the model's probability distribution. An absent or failing
// model contributes no signal instead of failing the pipeline.
func (c *StatisticalClassifier) Score(input domain.ClassificationInput) MethodResult {
	if strings.TrimSpace(input.Text) == "" {
		return nil
	}
	if c.model == nil || !c.model.Available() {
		return nil
	}
	dist, err := c.model.Score(input.Text)
	if err != nil {
		slog.Debug("statistical_model_degraded", "error", err)
		return nil
	}
	result := make(MethodResult, len(dist))
	for docType, p := range dist {
		result.set(docType, p)
	}
	return result
}

// Package bayes backs the statistical classification method with a
// pre-trained multinomial naive Bayes model loaded from a JSON file. The
// model is trained offline; this package only scores.
package bayes

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"unicode"

	"github.com/nmoreyra/docsort/internal/core/domain"
)

// classParams holds the per-class log space parameters. DefaultLogLikelihood
// covers tokens absent from the class vocabulary (the smoothed floor).
type classParams struct {
	LogPrior             float64            `json:"log_prior"`
	LogLikelihoods       map[string]float64 `json:"log_likelihoods"`
	DefaultLogLikelihood float64            `json:"default_log_likelihood"`
}

type modelFile struct {
	Version int                    `json:"version"`
	Classes map[string]classParams `json:"classes"`
}

type Model struct {
	classes map[domain.DocumentType]classParams
}

// Load reads and validates a model file. A missing file is the caller's
// signal to run without the statistical method.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	var file modelFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, domain.WrapError(domain.ErrModelUnavailable, "parse model file", err)
	}
	if len(file.Classes) == 0 {
		return nil, domain.WrapError(domain.ErrModelUnavailable, "validate model file",
			fmt.Errorf("no classes"))
	}

	classes := make(map[domain.DocumentType]classParams, len(file.Classes))
	for name, params := range file.Classes {
		docType := domain.DocumentType(name)
		if !docType.Valid() || docType == domain.TypeUnknown {
			return nil, domain.WrapError(domain.ErrModelUnavailable, "validate model file",
				fmt.Errorf("unknown class %q", name))
		}
		classes[docType] = params
	}
	return &Model{classes: classes}, nil
}

func (m *Model) Available() bool { return m != nil && len(m.classes) > 0 }

// Score returns the posterior distribution over document types for the text.
func (m *Model) Score(text string) (map[domain.DocumentType]float64, error) {
	if !m.Available() {
		return nil, domain.WrapError(domain.ErrModelUnavailable, "score text",
			fmt.Errorf("model not loaded"))
	}
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil, nil
	}

	logScores := make(map[domain.DocumentType]float64, len(m.classes))
	maxLog := math.Inf(-1)
	for docType, params := range m.classes {
		score := params.LogPrior
		for _, tok := range tokens {
			if ll, ok := params.LogLikelihoods[tok]; ok {
				score += ll
			} else {
				score += params.DefaultLogLikelihood
			}
		}
		logScores[docType] = score
		if score > maxLog {
			maxLog = score
		}
	}

	// Softmax in log space, shifted by the max for numeric stability.
	sum := 0.0
	for _, score := range logScores {
		sum += math.Exp(score - maxLog)
	}
	result := make(map[domain.DocumentType]float64, len(logScores))
	for docType, score := range logScores {
		result[docType] = math.Exp(score-maxLog) / sum
	}
	return result, nil
}

// tokenize lowercases and splits on anything that is not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

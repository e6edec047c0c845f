package classify

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/nmoreyra/docsort/internal/core/domain"
)

// WeightConfig is the process-wide classification configuration. It is built
// and validated once at startup and treated as read-only afterwards.
type WeightConfig struct {
	// Weights maps method name to a non-negative aggregation weight. A zero
	// weight keeps the method running for the breakdown while contributing
	// nothing to the score.
	Weights map[string]float64 `yaml:"weights"`
	// SupplierBoostWeight scales the supplier hint strength before it is
	// added to the favored types.
	SupplierBoostWeight float64 `yaml:"supplier_boost_weight"`
	// ConsensusFactor is the bonus added to the leading type's raw score when
	// at least two enabled methods independently rank it first.
	ConsensusFactor float64 `yaml:"consensus_factor"`
	// AcceptThreshold is the minimum confidence required to accept a
	// non-unknown decision. A confidence exactly at the threshold is accepted.
	AcceptThreshold float64 `yaml:"accept_threshold"`
	// ScoreFloor is the minimum raw method score considered a signal at all.
	ScoreFloor float64 `yaml:"score_floor"`
}

// DefaultWeightConfig mirrors the weights the system shipped with: the
// specialized agro and commercial methods carry the most weight so that
// decisive domain matches reliably win over the generic methods.
func DefaultWeightConfig() WeightConfig {
	return WeightConfig{
		Weights: map[string]float64{
			MethodKeyword:     0.15,
			MethodRegex:       0.15,
			MethodStatistical: 0.10,
			MethodLayout:      0.08,
			MethodAgro:        0.25,
			MethodCommercial:  0.22,
		},
		SupplierBoostWeight: 0.05,
		ConsensusFactor:     0.10,
		AcceptThreshold:     0.15,
		ScoreFloor:          0.01,
	}
}

// LoadWeightConfig overlays a YAML weight file onto the defaults: only the
// fields present in the file replace the shipped values. The merged result
// is validated before use.
func LoadWeightConfig(path string) (WeightConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WeightConfig{}, fmt.Errorf("read weight config: %w", err)
	}
	var file struct {
		Weights             map[string]float64 `yaml:"weights"`
		SupplierBoostWeight *float64           `yaml:"supplier_boost_weight"`
		ConsensusFactor     *float64           `yaml:"consensus_factor"`
		AcceptThreshold     *float64           `yaml:"accept_threshold"`
		ScoreFloor          *float64           `yaml:"score_floor"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return WeightConfig{}, domain.WrapError(domain.ErrConfiguration, "parse weight config", err)
	}

	cfg := DefaultWeightConfig()
	for name, w := range file.Weights {
		cfg.Weights[name] = w
	}
	if file.SupplierBoostWeight != nil {
		cfg.SupplierBoostWeight = *file.SupplierBoostWeight
	}
	if file.ConsensusFactor != nil {
		cfg.ConsensusFactor = *file.ConsensusFactor
	}
	if file.AcceptThreshold != nil {
		cfg.AcceptThreshold = *file.AcceptThreshold
	}
	if file.ScoreFloor != nil {
		cfg.ScoreFloor = *file.ScoreFloor
	}
	if err := cfg.Validate(); err != nil {
		return WeightConfig{}, err
	}
	return cfg, nil
}

// Validate fails fast on malformed configuration so that no document is ever
// classified against weights that were not checked at load time.
func (c WeightConfig) Validate() error {
	known := make(map[string]bool, len(KnownMethods))
	for _, name := range KnownMethods {
		known[name] = true
	}

	names := make([]string, 0, len(c.Weights))
	for name := range c.Weights {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !known[name] {
			return domain.WrapError(domain.ErrConfiguration, "validate weights",
				fmt.Errorf("unknown method %q", name))
		}
		if w := c.Weights[name]; w < 0 {
			return domain.WrapError(domain.ErrConfiguration, "validate weights",
				fmt.Errorf("negative weight %v for method %q", w, name))
		}
	}
	if c.SupplierBoostWeight < 0 {
		return domain.WrapError(domain.ErrConfiguration, "validate weights",
			fmt.Errorf("negative supplier boost weight %v", c.SupplierBoostWeight))
	}
	if c.ConsensusFactor < 0 {
		return domain.WrapError(domain.ErrConfiguration, "validate weights",
			fmt.Errorf("negative consensus factor %v", c.ConsensusFactor))
	}
	if c.AcceptThreshold < 0 || c.AcceptThreshold > 1 {
		return domain.WrapError(domain.ErrConfiguration, "validate weights",
			fmt.Errorf("accept threshold %v outside [0,1]", c.AcceptThreshold))
	}
	if c.ScoreFloor < 0 || c.ScoreFloor > 1 {
		return domain.WrapError(domain.ErrConfiguration, "validate weights",
			fmt.Errorf("score floor %v outside [0,1]", c.ScoreFloor))
	}
	return nil
}

func (c WeightConfig) weight(method string) float64 {
	return c.Weights[method]
}

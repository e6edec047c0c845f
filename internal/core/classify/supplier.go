package classify

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nmoreyra/docsort/internal/core/domain"
)

// SupplierEntry is one known supplier signature: the names it prints on its
// paper, its tax id, and the document types it is known to favor.
type SupplierEntry struct {
	Name    string                `yaml:"name"`
	Aliases []string              `yaml:"aliases"`
	TaxID   string                `yaml:"tax_id"`
	Favors  []domain.DocumentType `yaml:"favors"`
	Boost   float64               `yaml:"boost"`
}

type SupplierRegistry struct {
	entries []SupplierEntry
}

// DefaultSupplierRegistry carries the suppliers the system shipped with.
// Entry order matters: it is the final tie-break between equal matches.
func DefaultSupplierRegistry() *SupplierRegistry {
	return &SupplierRegistry{entries: []SupplierEntry{
		{
			Name:    "Telecom Argentina",
			Aliases: []string{"TELECOM ARGENTINA", "TELECOM", "PERSONAL"},
			TaxID:   "30-50000109-4",
			Favors:  []domain.DocumentType{domain.TypeInvoice},
			Boost:   0.3,
		},
		{
			Name:    "Edesur",
			Aliases: []string{"EDESUR S.A.", "EMPRESA DISTRIBUIDORA SUR"},
			TaxID:   "30-65511620-2",
			Favors:  []domain.DocumentType{domain.TypeInvoice},
			Boost:   0.3,
		},
		{
			Name:    "Metrogas",
			Aliases: []string{"METROGAS S.A.", "METROGAS"},
			TaxID:   "30-61469304-9",
			Favors:  []domain.DocumentType{domain.TypeInvoice},
			Boost:   0.3,
		},
		{
			Name:    "MercadoLibre",
			Aliases: []string{"MERCADOLIBRE S.R.L.", "MERCADO LIBRE", "MELI"},
			TaxID:   "30-70308853-4",
			Favors:  []domain.DocumentType{domain.TypeInvoice, domain.TypePaymentReceipt},
			Boost:   0.2,
		},
		{
			Name:    "Andreani",
			Aliases: []string{"ANDREANI LOGÍSTICA S.A.", "GRUPO ANDREANI", "ANDREANI"},
			TaxID:   "30-50010085-2",
			Favors:  []domain.DocumentType{domain.TypeWaybill, domain.TypeDeliveryNote},
			Boost:   0.4,
		},
	}}
}

// LoadSupplierRegistry reads a YAML registry file. Malformed entries fail
// fast at load time, before any document is classified.
func LoadSupplierRegistry(path string) (*SupplierRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read supplier registry: %w", err)
	}
	var doc struct {
		Suppliers []SupplierEntry `yaml:"suppliers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, domain.WrapError(domain.ErrConfiguration, "parse supplier registry", err)
	}
	for i, entry := range doc.Suppliers {
		if strings.TrimSpace(entry.Name) == "" {
			return nil, domain.WrapError(domain.ErrConfiguration, "validate supplier registry",
				fmt.Errorf("entry %d has no name", i))
		}
		if len(entry.Aliases) == 0 && entry.TaxID == "" {
			return nil, domain.WrapError(domain.ErrConfiguration, "validate supplier registry",
				fmt.Errorf("supplier %q has no aliases and no tax id", entry.Name))
		}
		if entry.Boost < 0 || entry.Boost > 1 {
			return nil, domain.WrapError(domain.ErrConfiguration, "validate supplier registry",
				fmt.Errorf("supplier %q boost %v outside [0,1]", entry.Name, entry.Boost))
		}
		for _, t := range entry.Favors {
			if !t.Valid() || t == domain.TypeUnknown {
				return nil, domain.WrapError(domain.ErrConfiguration, "validate supplier registry",
					fmt.Errorf("supplier %q favors unknown type %q", entry.Name, t))
			}
		}
	}
	return &SupplierRegistry{entries: doc.Suppliers}, nil
}

func (r *SupplierRegistry) Len() int { return len(r.entries) }

// SupplierDetector matches known supplier signatures in document text. It
// never assigns a type itself; it only produces a boost hint for the engine.
type SupplierDetector struct {
	registry *SupplierRegistry
}

func NewSupplierDetector(registry *SupplierRegistry) *SupplierDetector {
	if registry == nil {
		registry = DefaultSupplierRegistry()
	}
	return &SupplierDetector{registry: registry}
}

// Detect returns at most one hint per document: the entry with the longest
// matched substring wins, ties resolved by registry order.
func (d *SupplierDetector) Detect(input domain.ClassificationInput) *domain.SupplierHint {
	text := strings.ToUpper(input.Text)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var best *SupplierEntry
	bestLen := 0
	for i := range d.registry.entries {
		entry := &d.registry.entries[i]
		matched := 0
		for _, alias := range entry.Aliases {
			if len(alias) > matched && strings.Contains(text, strings.ToUpper(alias)) {
				matched = len(alias)
			}
		}
		if entry.TaxID != "" && len(entry.TaxID) > matched && strings.Contains(input.Text, entry.TaxID) {
			matched = len(entry.TaxID)
		}
		if matched > bestLen {
			best, bestLen = entry, matched
		}
	}
	if best == nil {
		return nil
	}
	return &domain.SupplierHint{
		Supplier:     best.Name,
		TaxID:        best.TaxID,
		FavoredTypes: append([]domain.DocumentType(nil), best.Favors...),
		Strength:     best.Boost,
	}
}

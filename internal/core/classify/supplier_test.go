package classify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nmoreyra/docsort/internal/core/domain"
)

func TestSupplierDetectByAlias(t *testing.T) {
	d := NewSupplierDetector(DefaultSupplierRegistry())
	hint := d.Detect(domain.ClassificationInput{
		Text: "Factura emitida por Telecom Argentina por servicios de julio",
	})
	if hint == nil {
		t.Fatalf("expected hint for known supplier")
	}
	if hint.Supplier != "Telecom Argentina" {
		t.Fatalf("expected Telecom Argentina, got %s", hint.Supplier)
	}
	if hint.Strength <= 0 {
		t.Fatalf("expected positive strength, got %f", hint.Strength)
	}
	if len(hint.FavoredTypes) == 0 {
		t.Fatalf("expected favored types")
	}
}

func TestSupplierDetectByTaxID(t *testing.T) {
	d := NewSupplierDetector(DefaultSupplierRegistry())
	hint := d.Detect(domain.ClassificationInput{Text: "CUIT emisor: 30-50010085-2"})
	if hint == nil || hint.Supplier != "Andreani" {
		t.Fatalf("expected Andreani by tax id, got %+v", hint)
	}
}

func TestSupplierDetectLongestMatchWins(t *testing.T) {
	registry := &SupplierRegistry{entries: []SupplierEntry{
		{Name: "Short", Aliases: []string{"AGRO"}, Boost: 0.2,
			Favors: []domain.DocumentType{domain.TypeInvoice}},
		{Name: "Long", Aliases: []string{"AGRO DEL SUR S.A."}, Boost: 0.2,
			Favors: []domain.DocumentType{domain.TypeDeliveryNote}},
	}}
	d := NewSupplierDetector(registry)
	hint := d.Detect(domain.ClassificationInput{Text: "Proveedor: AGRO DEL SUR S.A."})
	if hint == nil || hint.Supplier != "Long" {
		t.Fatalf("expected longest alias match, got %+v", hint)
	}
}

func TestSupplierDetectUnknownSupplier(t *testing.T) {
	d := NewSupplierDetector(DefaultSupplierRegistry())
	if hint := d.Detect(domain.ClassificationInput{Text: "Proveedor desconocido S.R.L."}); hint != nil {
		t.Fatalf("expected no hint, got %+v", hint)
	}
}

func TestLoadSupplierRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suppliers.yaml")
	content := `suppliers:
  - name: Cerealera del Plata
    aliases: ["CEREALERA DEL PLATA"]
    tax_id: "30-11111111-1"
    favors: [grain_settlement, weighing_ticket]
    boost: 0.35
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	registry, err := LoadSupplierRegistry(path)
	if err != nil {
		t.Fatalf("LoadSupplierRegistry() error = %v", err)
	}
	if registry.Len() != 1 {
		t.Fatalf("expected 1 supplier, got %d", registry.Len())
	}

	hint := NewSupplierDetector(registry).Detect(domain.ClassificationInput{
		Text: "LIQUIDACIÓN - CEREALERA DEL PLATA",
	})
	if hint == nil || hint.Supplier != "Cerealera del Plata" {
		t.Fatalf("expected loaded supplier detected, got %+v", hint)
	}
}

func TestLoadSupplierRegistryRejectsBadEntries(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing name", "suppliers:\n  - aliases: [\"X\"]\n    boost: 0.2\n"},
		{"no aliases or tax id", "suppliers:\n  - name: X\n    boost: 0.2\n"},
		{"boost out of range", "suppliers:\n  - name: X\n    aliases: [\"X\"]\n    boost: 1.5\n"},
		{"invalid favored type", "suppliers:\n  - name: X\n    aliases: [\"X\"]\n    favors: [mystery]\n    boost: 0.2\n"},
	}
	for _, tc := range cases {
		path := filepath.Join(t.TempDir(), "suppliers.yaml")
		if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
			t.Fatalf("%s: write fixture: %v", tc.name, err)
		}
		_, err := LoadSupplierRegistry(path)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !errors.Is(err, domain.ErrConfiguration) {
			t.Fatalf("%s: expected configuration error, got %v", tc.name, err)
		}
	}
}

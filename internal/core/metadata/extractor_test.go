package metadata

import (
	"testing"
)

func TestExtractFullInvoice(t *testing.T) {
	text := `FACTURA A N°: 0003-00012345
RAZÓN SOCIAL: AGRO DEL SUR S.A.
CUIT: 30-12345678-9
Fecha: 15/01/2026
TOTAL: $ 125.430,50`

	meta := Extract(text)
	if meta.TaxID != "30-12345678-9" {
		t.Fatalf("TaxID = %q", meta.TaxID)
	}
	if meta.DocumentDate != "15/01/2026" {
		t.Fatalf("DocumentDate = %q", meta.DocumentDate)
	}
	if meta.Amount != "$ 125.430,50" {
		t.Fatalf("Amount = %q", meta.Amount)
	}
	if meta.Supplier != "AGRO DEL SUR S.A." {
		t.Fatalf("Supplier = %q", meta.Supplier)
	}
	if meta.DocumentNumber != "0003-00012345" {
		t.Fatalf("DocumentNumber = %q", meta.DocumentNumber)
	}
}

func TestExtractSpelledOutDate(t *testing.T) {
	meta := Extract("Buenos Aires, 3 de marzo de 2026")
	if meta.DocumentDate != "3 de marzo de 2026" {
		t.Fatalf("DocumentDate = %q", meta.DocumentDate)
	}
}

func TestExtractIsoDate(t *testing.T) {
	meta := Extract("Fecha de emisión: 2026-01-15")
	if meta.DocumentDate != "2026-01-15" {
		t.Fatalf("DocumentDate = %q", meta.DocumentDate)
	}
}

func TestExtractSupplierFromProveedorLabel(t *testing.T) {
	meta := Extract("PROVEEDOR: METROGAS S.A.\nCUIT: 30-61469304-9")
	if meta.Supplier != "METROGAS S.A." {
		t.Fatalf("Supplier = %q", meta.Supplier)
	}
}

func TestExtractMissingFieldsStayEmpty(t *testing.T) {
	meta := Extract("texto sin campos estructurados")
	if meta.TaxID != "" || meta.Supplier != "" || meta.DocumentDate != "" ||
		meta.Amount != "" || meta.DocumentNumber != "" {
		t.Fatalf("expected empty metadata, got %+v", meta)
	}
}

func TestExtractEmptyText(t *testing.T) {
	meta := Extract("   ")
	if meta != (Extract("")) {
		t.Fatalf("blank text must behave like empty text")
	}
}

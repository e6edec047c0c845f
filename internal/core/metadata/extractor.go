// Package metadata pulls the structured field values (tax id, supplier,
// date, amount, document number) out of extracted document text. It runs
// alongside classification and is purely lexical.
package metadata

import (
	"regexp"
	"strings"

	"github.com/nmoreyra/docsort/internal/core/domain"
)

var (
	// CUIT: the Argentine tax id, two digits, eight digits, check digit.
	cuitRe = regexp.MustCompile(`\d{2}-\d{8}-\d`)

	dateRes = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}[/\-]\d{1,2}[/\-]\d{4}`),
		regexp.MustCompile(`\d{4}[/\-]\d{1,2}[/\-]\d{1,2}`),
		regexp.MustCompile(`(?i)\d{1,2}\s+de\s+\p{L}+\s+de\s+\d{4}`),
	}

	amountRe = regexp.MustCompile(`\$\s*[\d.,]+`)

	// Company names stay on one line; the class deliberately excludes
	// newlines so the next field label is never captured.
	supplierRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)RAZ[ÓO]N\s+SOCIAL\s*:?\s*([A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑ &.]{4,50})`),
		regexp.MustCompile(`(?i)PROVEEDOR\s*:?\s*([A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑ &.]{4,50})`),
		regexp.MustCompile(`(?i)EMPRESA\s*:?\s*([A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑ &.]{4,50})`),
	}

	docNumberRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:FACTURA|REMITO|RECIBO|ORDEN)\s*(?:[A-Z]\s+)?(?:DE\s+\p{L}+\s*)?N[°º]?\s*:?\s*(\d{4,5}-\d{6,8})`),
		regexp.MustCompile(`(?i)N[°º]\s*:?\s*(\d{4,5}-\d{6,8})`),
		regexp.MustCompile(`(?i)COMPROBANTE\s+NRO\.?\s*:?\s*(\d+)`),
	}
)

// Extract returns whatever field values are recognizable in the text. Missing
// fields stay empty; extraction never fails.
func Extract(text string) domain.Metadata {
	if strings.TrimSpace(text) == "" {
		return domain.Metadata{}
	}

	meta := domain.Metadata{
		TaxID:  cuitRe.FindString(text),
		Amount: amountRe.FindString(text),
	}

	for _, re := range dateRes {
		if m := re.FindString(text); m != "" {
			meta.DocumentDate = m
			break
		}
	}
	for _, re := range supplierRes {
		if m := re.FindStringSubmatch(text); len(m) == 2 {
			meta.Supplier = strings.TrimSpace(m[1])
			break
		}
	}
	for _, re := range docNumberRes {
		if m := re.FindStringSubmatch(text); len(m) == 2 {
			meta.DocumentNumber = m[1]
			break
		}
	}
	return meta
}

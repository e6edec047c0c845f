package classify

import (
	"math"
	"strings"

	"github.com/nmoreyra/docsort/internal/core/domain"
)

// layoutProfile describes the structural shape a document type usually has:
// which words sit in the page-top header, whether an itemized table is
// expected and which column labels it carries, and the typical page count.
type layoutProfile struct {
	headerWords []string
	tableWords  []string
	wantsTable  bool
	minPages    int
	maxPages    int
}

var layoutProfiles = map[domain.DocumentType]layoutProfile{
	domain.TypeInvoice: {
		headerWords: []string{"factura", "invoice"},
		tableWords:  []string{"código", "codigo", "descripción", "descripcion", "cantidad", "precio"},
		wantsTable:  true,
		minPages:    1, maxPages: 3,
	},
	domain.TypeDeliveryNote: {
		headerWords: []string{"remito"},
		tableWords:  []string{"código", "codigo", "artículo", "articulo", "cantidad"},
		wantsTable:  true,
		minPages:    1, maxPages: 2,
	},
	domain.TypePaymentReceipt: {
		headerWords: []string{"recibo"},
		tableWords:  []string{"concepto", "importe"},
		minPages:    1, maxPages: 1,
	},
	domain.TypeAccountStatement: {
		headerWords: []string{"estado de cuenta", "extracto", "resumen"},
		tableWords:  []string{"fecha", "movimiento", "saldo", "débito", "debito", "crédito", "credito"},
		wantsTable:  true,
		minPages:    1, maxPages: 12,
	},
	domain.TypeWeighingTicket: {
		headerWords: []string{"pesaje", "báscula", "bascula", "balanza"},
		tableWords:  []string{"bruto", "tara", "neto"},
		minPages:    1, maxPages: 1,
	},
	domain.TypeGrainSettlement: {
		headerWords: []string{"liquidación", "liquidacion"},
		tableWords:  []string{"grano", "humedad", "kg", "precio"},
		wantsTable:  true,
		minPages:    1, maxPages: 4,
	},
	domain.TypeWaybill: {
		headerWords: []string{"carta de porte"},
		tableWords:  []string{"origen", "destino", "transportista"},
		minPages:    1, maxPages: 2,
	},
	domain.TypeBankTransfer: {
		headerWords: []string{"transferencia"},
		tableWords:  []string{"cbu", "importe"},
		minPages:    1, maxPages: 1,
	},
}

// Fixed heuristic thresholds for structural scoring.
const (
	layoutHeaderScore    = 0.4
	layoutTableScore     = 0.3
	layoutTableWordScore = 0.2
	layoutPageScore      = 0.1

	minAlignedRows    = 3
	minRowTokens      = 3
	rowBucketPoints   = 4.0
	headerBandPoints  = 100.0
	headerFontFactor  = 1.2
	minTableWordShare = 0.5
)

type LayoutClassifier struct{}

func NewLayoutClassifier() *LayoutClassifier { return &LayoutClassifier{} }

func (*LayoutClassifier) Name() string { return MethodLayout }

// Score maps structural features of the layout tokens to type likelihoods.
// Absence of layout information yields no signal.
func (*LayoutClassifier) Score(input domain.ClassificationInput) MethodResult {
	layout := input.Layout
	if layout == nil || len(layout.Tokens) == 0 {
		return nil
	}

	header := headerText(layout.Tokens)
	fullText := joinedTokenText(layout.Tokens)
	hasTable := hasAlignedTable(layout.Tokens)

	result := make(MethodResult)
	for docType, profile := range layoutProfiles {
		score := 0.0
		for _, w := range profile.headerWords {
			if strings.Contains(header, w) {
				score += layoutHeaderScore
				break
			}
		}
		if profile.wantsTable && hasTable {
			score += layoutTableScore
		}
		if len(profile.tableWords) > 0 {
			matched := 0
			for _, w := range profile.tableWords {
				if strings.Contains(fullText, w) {
					matched++
				}
			}
			if share := float64(matched) / float64(len(profile.tableWords)); share >= minTableWordShare {
				score += layoutTableWordScore * share
			}
		}
		if layout.PageCount >= profile.minPages && layout.PageCount <= profile.maxPages {
			score += layoutPageScore
		}
		result.set(docType, score)
	}
	return result
}

// headerText joins the page-1 tokens that sit in the top band or use an
// oversized font, lowercased. PDF coordinates grow upward.
func headerText(tokens []domain.LayoutToken) string {
	maxY := math.Inf(-1)
	fontSum, fontCount := 0.0, 0
	for _, tok := range tokens {
		if tok.Page != 1 {
			continue
		}
		if tok.Y > maxY {
			maxY = tok.Y
		}
		if tok.FontSize > 0 {
			fontSum += tok.FontSize
			fontCount++
		}
	}
	avgFont := 0.0
	if fontCount > 0 {
		avgFont = fontSum / float64(fontCount)
	}

	var sb strings.Builder
	for _, tok := range tokens {
		if tok.Page != 1 {
			continue
		}
		inBand := tok.Y >= maxY-headerBandPoints
		bigFont := avgFont > 0 && tok.FontSize >= headerFontFactor*avgFont
		if inBand || bigFont {
			sb.WriteString(strings.ToLower(tok.Text))
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func joinedTokenText(tokens []domain.LayoutToken) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(strings.ToLower(tok.Text))
		sb.WriteByte(' ')
	}
	return sb.String()
}

// hasAlignedTable detects an itemized table as several rows of three or more
// tokens sharing a baseline.
func hasAlignedTable(tokens []domain.LayoutToken) bool {
	type rowKey struct {
		page   int
		bucket int
	}
	rows := make(map[rowKey]int)
	for _, tok := range tokens {
		key := rowKey{page: tok.Page, bucket: int(tok.Y / rowBucketPoints)}
		rows[key]++
	}
	aligned := 0
	for _, count := range rows {
		if count >= minRowTokens {
			aligned++
		}
	}
	return aligned >= minAlignedRows
}

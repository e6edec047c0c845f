package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/nmoreyra/docsort/internal/core/domain"
)

// keywordTerm couples a lexical term with its specificity: multiword or
// domain-unique terms weigh more than short generic ones.
type keywordTerm struct {
	term        string
	specificity float64
}

// Vocabulary carried from the production corpus (Argentine commercial and
// agricultural paper, Spanish with occasional English trade terms).
var keywordSets = map[domain.DocumentType][]keywordTerm{
	domain.TypeInvoice: {
		{"factura", 1.0},
		{"invoice", 1.0},
		{"punto de venta", 0.8},
		{"bill", 0.4},
	},
	domain.TypeDeliveryNote: {
		{"remito", 1.0},
		{"delivery note", 1.0},
		{"orden de entrega", 0.8},
		{"guia de entrega", 0.6},
	},
	domain.TypeCreditNote: {
		{"nota de credito", 1.0},
		{"nota de crédito", 1.0},
		{"credit note", 1.0},
	},
	domain.TypeDebitNote: {
		{"nota de debito", 1.0},
		{"nota de débito", 1.0},
		{"debit note", 1.0},
	},
	domain.TypeWaybill: {
		{"carta de porte", 1.0},
		{"waybill", 1.0},
		{"transportista", 0.6},
		{"flete", 0.5},
	},
	domain.TypeGrainSettlement: {
		{"liquidacion primaria", 1.0},
		{"liquidación primaria", 1.0},
		{"liquidacion de granos", 1.0},
		{"grain settlement", 1.0},
		{"liquidacion", 0.5},
		{"cereales", 0.4},
		{"granos", 0.4},
	},
	domain.TypeTransferCertificate: {
		{"certificado de transferencia", 1.0},
		{"transferencia de granos", 1.0},
		{"transfer certificate", 1.0},
	},
	domain.TypeWarehouseWarrant: {
		{"certificado de deposito", 1.0},
		{"certificado de depósito", 1.0},
		{"warrant", 0.8},
		{"almacenaje", 0.5},
	},
	domain.TypeWeighingTicket: {
		{"ticket de pesaje", 1.0},
		{"pesaje", 0.8},
		{"bascula", 0.7},
		{"báscula", 0.7},
		{"balanza", 0.6},
		{"peso neto", 0.6},
	},
	domain.TypeGrainContract: {
		{"contrato de compraventa", 1.0},
		{"compraventa de granos", 1.0},
		{"contrato", 0.4},
		{"convenio", 0.4},
	},
	domain.TypeBankTransfer: {
		{"transferencia bancaria", 1.0},
		{"wire transfer", 1.0},
		{"transferencia", 0.5},
		{"remesa", 0.5},
		{"giro", 0.4},
	},
	domain.TypePaymentOrder: {
		{"orden de pago", 1.0},
		{"payment order", 1.0},
		{"autorizacion de pago", 0.8},
		{"autorización de pago", 0.8},
	},
	domain.TypeCheck: {
		{"cheque", 1.0},
		{"paguese al portador", 0.8},
		{"páguese", 0.8},
		{"cuenta corriente", 0.4},
	},
	domain.TypePaymentReceipt: {
		{"recibo de pago", 1.0},
		{"comprobante de pago", 1.0},
		{"recibo", 0.6},
		{"recibí de", 0.6},
		{"receipt", 0.5},
	},
	domain.TypeAccountStatement: {
		{"estado de cuenta", 1.0},
		{"extracto bancario", 1.0},
		{"resumen de cuenta", 1.0},
		{"account statement", 1.0},
		{"saldo anterior", 0.6},
	},
}

// filenameHints are short tokens matched against the filename only. The
// filename is a weak supplementary signal, never authoritative.
var filenameHints = map[domain.DocumentType][]string{
	domain.TypeInvoice:         {"factura", "fact", "invoice"},
	domain.TypeDeliveryNote:    {"remito", "rem"},
	domain.TypeCreditNote:      {"nota_credito", "nc_"},
	domain.TypeDebitNote:       {"nota_debito", "nd_"},
	domain.TypeWaybill:         {"porte", "waybill"},
	domain.TypeGrainSettlement: {"liquidacion"},
	domain.TypeWeighingTicket:  {"pesaje"},
	domain.TypeCheck:           {"cheque"},
	domain.TypePaymentReceipt:  {"recibo"},
}

const (
	// headWindow bounds the leading region where a match earns the early
	// placement bonus; titles and letterheads live there.
	headWindow        = 600
	headBonus         = 0.3
	filenameHintBonus = 0.1
)

type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier { return &KeywordClassifier{} }

func (*KeywordClassifier) Name() string { return MethodKeyword }

// Score rates each type by the specificity-weighted share of its keyword set
// present in the text, with a bonus for matches in the document head.
func (*KeywordClassifier) Score(input domain.ClassificationInput) MethodResult {
	text := strings.ToLower(input.Text)
	filename := strings.ToLower(input.Filename)
	if strings.TrimSpace(text) == "" && filename == "" {
		return nil
	}

	head := text
	if len(head) > headWindow {
		// Back off to a rune boundary so an accented term straddling the
		// window edge is dropped whole instead of half-matched.
		cut := headWindow
		for cut > 0 && !utf8.RuneStart(head[cut]) {
			cut--
		}
		head = head[:cut]
	}

	result := make(MethodResult)
	for docType, terms := range keywordSets {
		var matched, total float64
		for _, kw := range terms {
			total += kw.specificity
			if text != "" && strings.Contains(text, kw.term) {
				matched += kw.specificity
				if strings.Contains(head, kw.term) {
					matched += headBonus * kw.specificity
				}
			}
		}
		score := 0.0
		if total > 0 {
			score = matched / total
		}
		for _, hint := range filenameHints[docType] {
			if filename != "" && strings.Contains(filename, hint) {
				score += filenameHintBonus
				break
			}
		}
		result.set(docType, score)
	}
	return result
}

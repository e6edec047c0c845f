package classify

import (
	"regexp"
	"strings"

	"github.com/nmoreyra/docsort/internal/core/domain"
)

// regexRules separates high-specificity structural patterns (a match decides
// the type on its own) from weaker corroborating ones that only accumulate.
type regexRules struct {
	strong []*regexp.Regexp
	weak   []*regexp.Regexp
}

func rx(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, regexp.MustCompile("(?im)"+expr))
	}
	return out
}

// Patterns follow the AFIP-regulated formats of Argentine commercial paper
// (CAE, CUIT, punto de venta) plus the field labels each document carries.
var typeRules = map[domain.DocumentType]regexRules{
	domain.TypeInvoice: {
		strong: rx(`FACTURA\s+[A-Z]?\s*N[°º]?\s*\d+`, `CAE\s*N[°º]?\s*:?\s*\d{14}`),
		weak: rx(`ORIGINAL\s+DUPLICADO`, `IVA\s+(21|10[.,]5|27)\s*%`,
			`PUNTO\s+DE\s+VENTA\s*:?\s*\d+`, `VENCIMIENTO\s+DEL\s+CAE`,
			`C[ÓO]DIGO\s+DESCRIPCI[ÓO]N\s+CANTIDAD`),
	},
	domain.TypeDeliveryNote: {
		strong: rx(`REMITO\s*N[°º]?\s*\d+`),
		weak: rx(`ORDEN\s+DE\s+ENTREGA`, `BULTOS\s+PESO`,
			`DOCUMENTO\s+NO\s+V[ÁA]LIDO\s+COMO\s+FACTURA`, `MERCADER[ÍI]A\s+ENTREGADA`),
	},
	domain.TypeCreditNote: {
		strong: rx(`NOTA\s+DE\s+CR[ÉE]DITO\s*N[°º]?\s*\d+`),
		weak:   rx(`DEVOLUCI[ÓO]N`, `IMPORTE\s+A\s+FAVOR`, `CR[ÉE]DITO\s+FISCAL`),
	},
	domain.TypeDebitNote: {
		strong: rx(`NOTA\s+DE\s+D[ÉE]BITO\s*N[°º]?\s*\d+`),
		weak:   rx(`INTERESES\s+MORATORIOS`, `CARGO\s+ADICIONAL`, `D[ÉE]BITO\s+FISCAL`),
	},
	domain.TypeWaybill: {
		strong: rx(`CARTA\s+DE\s+PORTE\s*N[°º]?\s*\d+`),
		weak: rx(`TRANSPORTISTA`, `CONDUCTOR.*DNI`, `PATENTE.*ACOPLADO`,
			`MERCADER[ÍI]A\s+A\s+TRANSPORTAR`),
	},
	domain.TypeGrainSettlement: {
		strong: rx(`LIQUIDACI[ÓO]N\s+(PRIMARIA|DE\s+GRANOS)`),
		weak: rx(`(SOJA|TRIGO|MA[ÍI]Z|GIRASOL|SORGO)`, `PRECIO\s+POR\s+(KG|TONELADA|TN|QQ)`,
			`HUMEDAD.*%`, `PESO\s+NETO`),
	},
	domain.TypeTransferCertificate: {
		strong: rx(`CERTIFICADO\s+DE\s+TRANSFERENCIA`),
		weak:   rx(`\bC\.?O\.?T\.?\b`, `TRANSFERENCIA\s+DE\s+GRANOS`),
	},
	domain.TypeWarehouseWarrant: {
		strong: rx(`CERTIFICADO\s+DE\s+DEP[ÓO]SITO`),
		weak:   rx(`\bWARRANT\b`, `ALMACENAJE`, `DEP[ÓO]SITO\s+DE\s+(GRANOS|CEREALES)`),
	},
	domain.TypeWeighingTicket: {
		strong: rx(`TICKET\s+DE\s+PES(O|AJE)`),
		weak:   rx(`PESO\s+(BRUTO|NETO|TARA)`, `B[ÁA]SCULA`, `\d+\s*(KG|TN|TONELADAS)`),
	},
	domain.TypeGrainContract: {
		strong: rx(`CONTRATO\s+DE\s+COMPRAVENTA`),
		weak:   rx(`CONDICIONES\s+DE\s+ENTREGA`, `CALIDAD\s+DE\s+GRANO`, `PRECIO\s+POR\s+TONELADA`),
	},
	domain.TypeBankTransfer: {
		strong: rx(`TRANSFERENCIA\s+(BANCARIA|ELECTR[ÓO]NICA)`),
		weak: rx(`\bSWIFT\b`, `\bCBU\b`, `ALIAS\s+(CBU|BANCARIO)`,
			`BANCO\s+(ORIGEN|DESTINO)`),
	},
	domain.TypePaymentOrder: {
		strong: rx(`ORDEN\s+DE\s+PAGO\s*N[°º]?\s*\d*`),
		weak:   rx(`BENEFICIARIO`, `CONCEPTO\s+DEL\s+PAGO`, `AUTORIZACI[ÓO]N\s+DE\s+PAGO`),
	},
	domain.TypeCheck: {
		strong: rx(`CHEQUE\s+(N[ÚU]MERO|NRO|NO|#)\s*\.?\s*\d+`),
		weak:   rx(`P[ÁA]GUESE\s+(A|AL)\b`, `IMPORTE\s+EN\s+LETRAS`, `BANCO\s+(EMISOR|GIRADO)`),
	},
	domain.TypePaymentReceipt: {
		strong: rx(`RECIBO\s+(DE\s+PAGO\s+)?N[°º]?\s*\d+`),
		weak:   rx(`RECIB[ÍI]\s+DE`, `LA\s+SUMA\s+DE`, `EN\s+CONCEPTO\s+DE`, `FORMA\s+DE\s+PAGO`),
	},
	domain.TypeAccountStatement: {
		strong: rx(`ESTADO\s+DE\s+CUENTA`, `EXTRACTO\s+BANCARIO`),
		weak: rx(`SALDO\s+(ANTERIOR|ACTUAL|FINAL)`, `MOVIMIENTOS\s+DEL\s+PER[ÍI]ODO`,
			`N[ÚU]MERO\s+DE\s+CUENTA`),
	},
}

// genericRules corroborate any type that already matched something: date
// formats, tax ids and header words common to well-formed documents.
var genericRules = rx(
	`\d{1,2}[/\-]\d{1,2}[/\-]\d{4}`,
	`\d{2}-\d{8}-\d`,
	`TOTAL\s*:?\s*\$?\s*[\d.,]+`,
)

const (
	weakPatternScore    = 0.2
	genericPatternScore = 0.05
)

type RegexClassifier struct{}

func NewRegexClassifier() *RegexClassifier { return &RegexClassifier{} }

func (*RegexClassifier) Name() string { return MethodRegex }

// Score assigns 1.0 on any high-specificity structural match; otherwise weak
// pattern hits accumulate, corroborated by generic document cues, capped at 1.
func (*RegexClassifier) Score(input domain.ClassificationInput) MethodResult {
	if strings.TrimSpace(input.Text) == "" {
		return nil
	}

	genericHits := 0
	for _, re := range genericRules {
		if re.MatchString(input.Text) {
			genericHits++
		}
	}

	result := make(MethodResult)
	for docType, rules := range typeRules {
		matched := false
		for _, re := range rules.strong {
			if re.MatchString(input.Text) {
				result.set(docType, 1)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		score := 0.0
		for _, re := range rules.weak {
			if re.MatchString(input.Text) {
				score += weakPatternScore
			}
		}
		if score > 0 {
			score += float64(genericHits) * genericPatternScore
			result.set(docType, score)
		}
	}
	return result
}

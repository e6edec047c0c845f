package classify

import "github.com/nmoreyra/docsort/internal/core/domain"

// Rules scoped to banking and payment paper: transfers, payment orders,
// checks, payment receipts and account statements.
var commercialRules = map[domain.DocumentType]domainRule{
	domain.TypeBankTransfer: {
		keywords: []string{"transferencia bancaria", "wire transfer", "giro", "remesa"},
		patterns: rx(
			`transferencia\s+(bancaria|electr[óo]nica)`,
			`swift\s+(code|mt)`,
			`n[úu]mero\s+de\s+(transferencia|operaci[óo]n)`,
			`banco\s+(origen|destino)`,
			`cbu\s+(origen|destino)`,
			`alias\s+(cbu|bancario)`,
		),
		required: rx(
			`transferencia|transfer`,
			`banco|bank|entidad`,
			`importe|monto|\$\s*[\d.,]+`,
		),
	},
	domain.TypePaymentOrder: {
		keywords: []string{"orden de pago", "payment order", "autorización de pago", "autorizacion de pago"},
		patterns: rx(
			`orden\s+de\s+pago`,
			`payment\s+order`,
			`autorizaci[óo]n\s+(de\s+)?pago`,
			`n[úu]mero\s+(de\s+)?(orden|op)`,
			`fecha\s+(de\s+)?vencimiento`,
		),
		required: rx(
			`orden|autorizaci[óo]n`,
			`pago|payment`,
			`beneficiario`,
		),
	},
	domain.TypeCheck: {
		keywords: []string{"cheque", "orden de pago al portador"},
		patterns: rx(
			`cheque\s+(n[úu]mero|nro|no|#)`,
			`p[áa]guese\s+(a|al)\b`,
			`banco\s+(emisor|girado)`,
			`importe\s+en\s+(letras|palabras)`,
			`cuenta\s+corriente`,
		),
		required: rx(
			`cheque`,
			`banco|bank`,
			`importe|monto|\$\s*[\d.,]+`,
		),
	},
	domain.TypePaymentReceipt: {
		keywords: []string{"recibo de pago", "comprobante de pago", "recibo"},
		patterns: rx(
			`recibo\s+(de\s+)?pago`,
			`comprobante\s+(de\s+)?pago`,
			`recib[íi]\s+(de|del)`,
			`cancelaci[óo]n\s+(de|del)`,
			`(forma|m[ée]todo)\s+(de\s+)?pago`,
		),
		required: rx(
			`recibo|comprobante`,
			`pago|abono`,
		),
	},
	domain.TypeAccountStatement: {
		keywords: []string{"estado de cuenta", "extracto", "resumen de cuenta", "statement"},
		patterns: rx(
			`estado\s+(de\s+)?cuenta`,
			`extracto\s+(bancario|de\s+cuenta)`,
			`resumen\s+(de\s+)?cuenta`,
			`saldo\s+(anterior|actual|final)`,
			`movimientos\s+(del\s+)?per[íi]odo`,
		),
		required: rx(
			`cuenta|account`,
			`saldo|balance`,
		),
	},
}

var commercialTerms = []termGroup{
	{terms: []string{"banco", "bank", "entidad", "sucursal"}, bonus: 0.04},
	{terms: []string{"pago", "payment", "abono", "cancelación", "cancelacion"}, bonus: 0.03},
	{terms: []string{"pesos", "usd", "ars", "eur", "dólares", "dolares"}, bonus: 0.03},
	{terms: []string{"cbu", "alias", "iban", "swift"}, bonus: 0.05},
}

type CommercialClassifier struct{}

func NewCommercialClassifier() *CommercialClassifier { return &CommercialClassifier{} }

func (*CommercialClassifier) Name() string { return MethodCommercial }

func (*CommercialClassifier) Score(input domain.ClassificationInput) MethodResult {
	return scoreDomainRules(input.Text, commercialRules, commercialTerms)
}

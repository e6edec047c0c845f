package classify

import "github.com/nmoreyra/docsort/internal/core/domain"

// Rules scoped to Argentine grain-trade paper: settlements, waybills,
// transfer and warehouse certificates, weighing tickets and grain contracts.
var agroRules = map[domain.DocumentType]domainRule{
	domain.TypeGrainSettlement: {
		keywords: []string{"liquidación", "liquidacion", "granos", "cereales"},
		patterns: rx(
			`liquidaci[óo]n\s+(de\s+)?(granos|cereales)`,
			`liquidaci[óo]n\s+primaria`,
			`descuento.*(humedad|merma)`,
		),
		required: rx(
			`precio|\$\s*[\d.,]+|importe`,
			`peso|\d+\s*(kg|tn|toneladas)`,
			`soja|trigo|ma[íi]z|girasol|sorgo|cereales|granos`,
		),
	},
	domain.TypeWaybill: {
		keywords: []string{"carta de porte", "flete", "transporte"},
		patterns: rx(
			`carta\s+de\s+porte`,
			`gu[íi]a\s+(de\s+)?transporte`,
			`chapa\s+(del\s+)?cami[óo]n`,
		),
		required: rx(
			`transporte|flete|cami[óo]n|transportista`,
			`destino|entregar|direcci[óo]n`,
		),
	},
	domain.TypeTransferCertificate: {
		keywords: []string{"certificado de transferencia", "transferencia de granos"},
		patterns: rx(
			`certificado\s+de\s+transferencia`,
			`\bc\.?o\.?t\.?\b`,
			`transfer[ae]ncia\s+(de\s+)?granos`,
		),
		required: rx(
			`certificado|cert\.|certificaci[óo]n`,
			`transferencia|cesi[óo]n`,
		),
	},
	domain.TypeWarehouseWarrant: {
		keywords: []string{"certificado de depósito", "certificado de deposito", "warrant"},
		patterns: rx(
			`certificado\s+de\s+dep[óo]sito`,
			`\bc\.?t\.?g\.?\b`,
			`\bwarrant\b`,
			`almacenaje`,
		),
		required: rx(
			`certificado|cert\.`,
			`dep[óo]sito|almac[ée]n|acopio`,
		),
	},
	domain.TypeWeighingTicket: {
		keywords: []string{"pesaje", "báscula", "bascula", "balanza"},
		patterns: rx(
			`peso\s+(bruto|neto|tara)`,
			`ticket\s+(de\s+)?pes(o|aje)`,
			`\d+\s*(kg|tn|toneladas?)`,
		),
		required: rx(
			`peso|balanza|b[áa]scula`,
		),
	},
	domain.TypeGrainContract: {
		keywords: []string{"contrato", "compraventa", "granos", "cereales"},
		patterns: rx(
			`contrato\s+(de\s+)?(compraventa|compra|venta)`,
			`condiciones\s+(de\s+)?entrega`,
			`precio\s+(por\s+)?(tonelada|kg|quintal)`,
			`calidad\s+(de\s+)?grano`,
		),
		required: rx(
			`contrato|acuerdo|convenio`,
			`precio|\$\s*[\d.,]+`,
			`soja|trigo|ma[íi]z|girasol|sorgo|cereales|granos`,
		),
	},
}

var agroTerms = []termGroup{
	{terms: []string{"soja", "trigo", "maíz", "maiz", "girasol", "sorgo", "avena", "cebada"}, bonus: 0.05},
	{terms: []string{" kg", " tn", "toneladas", "quintales", "hectolitro"}, bonus: 0.03},
	{terms: []string{"humedad", "proteína", "proteina", "impurezas", "gluten"}, bonus: 0.04},
	{terms: []string{"cosecha", "acopio", "almacenaje", "secado"}, bonus: 0.03},
	{terms: []string{"productor", "acopiador", "exportador", "cooperativa", "cerealera"}, bonus: 0.04},
}

type AgroClassifier struct{}

func NewAgroClassifier() *AgroClassifier { return &AgroClassifier{} }

func (*AgroClassifier) Name() string { return MethodAgro }

func (*AgroClassifier) Score(input domain.ClassificationInput) MethodResult {
	return scoreDomainRules(input.Text, agroRules, agroTerms)
}

package classify

import (
	"testing"

	"github.com/nmoreyra/docsort/internal/core/domain"
)

const grainSettlementText = `LIQUIDACIÓN PRIMARIA DE GRANOS
Productor: Estancia La Esperanza S.A.
Grano: SOJA - Cosecha 2025/26
Peso neto: 28.540 kg
Humedad: 13,5 %
Precio por tonelada: $ 285.000
Importe bruto: $ 8.133.900`

const bankTransferText = `TRANSFERENCIA BANCARIA
Banco origen: Banco Nación
CBU destino: 0110599520000001234567
Importe: $ 1.250.000,00 pesos
Número de operación: 99887766`

func TestAgroScoresGrainSettlementHigh(t *testing.T) {
	c := NewAgroClassifier()
	result := c.Score(domain.ClassificationInput{Text: grainSettlementText})

	top, score, ok := result.Top()
	if !ok {
		t.Fatalf("expected agro signal, got nothing")
	}
	if top != domain.TypeGrainSettlement {
		t.Fatalf("expected grain settlement, got %s (%v)", top, result)
	}
	if score < 0.7 {
		t.Fatalf("complete settlement should score high, got %f", score)
	}
}

func TestAgroMissingRequiredElementsScalesDown(t *testing.T) {
	c := NewAgroClassifier()
	// Settlement language without price, weight or grain names.
	partial := c.Score(domain.ClassificationInput{Text: "LIQUIDACIÓN mensual de servicios"})
	full := c.Score(domain.ClassificationInput{Text: grainSettlementText})

	if partial[domain.TypeGrainSettlement] >= full[domain.TypeGrainSettlement] {
		t.Fatalf("missing required elements must lower score: %f vs %f",
			partial[domain.TypeGrainSettlement], full[domain.TypeGrainSettlement])
	}
}

func TestAgroSectorBonusLiftsBestOnly(t *testing.T) {
	c := NewAgroClassifier()
	plain := c.Score(domain.ClassificationInput{Text: "Peso bruto: 30.000\nBáscula 2"})
	seasoned := c.Score(domain.ClassificationInput{Text: "Peso bruto: 30.000\nBáscula 2\nsoja cosecha acopio"})

	if seasoned[domain.TypeWeighingTicket] <= plain[domain.TypeWeighingTicket] {
		t.Fatalf("expected sector terms to lift the best candidate: %f vs %f",
			seasoned[domain.TypeWeighingTicket], plain[domain.TypeWeighingTicket])
	}
}

func TestAgroNoSignalOffDomain(t *testing.T) {
	c := NewAgroClassifier()
	result := c.Score(domain.ClassificationInput{Text: "ESTADO DE CUENTA\nSaldo anterior: $ 1.000"})
	if _, _, ok := result.Top(); ok {
		for docType, score := range result {
			if score > 0.3 {
				t.Fatalf("off-domain text scored %s at %f", docType, score)
			}
		}
	}
}

func TestCommercialScoresBankTransferHigh(t *testing.T) {
	c := NewCommercialClassifier()
	result := c.Score(domain.ClassificationInput{Text: bankTransferText})

	top, score, ok := result.Top()
	if !ok {
		t.Fatalf("expected commercial signal, got nothing")
	}
	if top != domain.TypeBankTransfer {
		t.Fatalf("expected bank transfer, got %s (%v)", top, result)
	}
	if score < 0.7 {
		t.Fatalf("complete transfer should score high, got %f", score)
	}
}

func TestCommercialDistinguishesReceiptFromOrder(t *testing.T) {
	c := NewCommercialClassifier()
	result := c.Score(domain.ClassificationInput{
		Text: "RECIBO DE PAGO N° 442\nRecibí de Agro del Sur S.A. la suma de $ 500.000\nForma de pago: transferencia",
	})

	top, _, ok := result.Top()
	if !ok || top != domain.TypePaymentReceipt {
		t.Fatalf("expected payment receipt, got %s (%v)", top, result)
	}
}

func TestSpecializedEmptyTextNoSignal(t *testing.T) {
	if result := NewAgroClassifier().Score(domain.ClassificationInput{}); len(result) != 0 {
		t.Fatalf("expected no agro signal on empty text, got %v", result)
	}
	if result := NewCommercialClassifier().Score(domain.ClassificationInput{}); len(result) != 0 {
		t.Fatalf("expected no commercial signal on empty text, got %v", result)
	}
}

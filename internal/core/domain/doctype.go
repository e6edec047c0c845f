package domain

// DocumentType is the closed taxonomy of business document types the
// classifier can produce. Unknown is the universal fallback.
type DocumentType string

const (
	TypeInvoice      DocumentType = "invoice"
	TypeDeliveryNote DocumentType = "delivery_note"
	TypeCreditNote   DocumentType = "credit_note"
	TypeDebitNote    DocumentType = "debit_note"

	TypeGrainSettlement     DocumentType = "grain_settlement"
	TypeWaybill             DocumentType = "waybill"
	TypeTransferCertificate DocumentType = "transfer_certificate"
	TypeWarehouseWarrant    DocumentType = "warehouse_warrant"
	TypeWeighingTicket      DocumentType = "weighing_ticket"
	TypeGrainContract       DocumentType = "grain_contract"

	TypePaymentOrder     DocumentType = "payment_order"
	TypeBankTransfer     DocumentType = "bank_transfer"
	TypeCheck            DocumentType = "check"
	TypePaymentReceipt   DocumentType = "payment_receipt"
	TypeAccountStatement DocumentType = "account_statement"

	TypeUnknown DocumentType = "unknown"
)

// typePriority is the fixed tie-break order: specialized domain types first,
// then generic commercial paper, unknown last. Lower index wins a tie.
var typePriority = []DocumentType{
	TypeGrainSettlement,
	TypeWaybill,
	TypeTransferCertificate,
	TypeWarehouseWarrant,
	TypeWeighingTicket,
	TypeGrainContract,
	TypePaymentOrder,
	TypeBankTransfer,
	TypeCheck,
	TypePaymentReceipt,
	TypeAccountStatement,
	TypeInvoice,
	TypeDeliveryNote,
	TypeCreditNote,
	TypeDebitNote,
	TypeUnknown,
}

var priorityRank = func() map[DocumentType]int {
	ranks := make(map[DocumentType]int, len(typePriority))
	for i, t := range typePriority {
		ranks[t] = i
	}
	return ranks
}()

// AllTypes returns every known document type in tie-break priority order.
func AllTypes() []DocumentType {
	out := make([]DocumentType, len(typePriority))
	copy(out, typePriority)
	return out
}

// PriorityRank returns the tie-break rank of t; unrecognized types rank after
// every known type.
func (t DocumentType) PriorityRank() int {
	if rank, ok := priorityRank[t]; ok {
		return rank
	}
	return len(typePriority)
}

func (t DocumentType) Valid() bool {
	_, ok := priorityRank[t]
	return ok
}

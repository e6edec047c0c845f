package domain

// LayoutToken is one positioned text fragment supplied by the extraction
// stage. Coordinates are in PDF points, origin bottom-left.
type LayoutToken struct {
	Text     string  `json:"text"`
	Page     int     `json:"page"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	FontSize float64 `json:"font_size"`
}

// LayoutInfo carries the optional structural signal for a document.
type LayoutInfo struct {
	PageCount int           `json:"page_count"`
	Tokens    []LayoutToken `json:"tokens,omitempty"`
}

// ClassificationInput is the immutable per-document value consumed by the
// consensus engine. Text may be empty (unreadable scan); Layout and Filename
// are optional. Filename is only ever a weak supplementary hint.
type ClassificationInput struct {
	Text     string
	Layout   *LayoutInfo
	Filename string
}

// MethodContribution records how much one method added to the winning type's
// confidence. Contribution is already normalized, so the breakdown sums
// (within floating rounding) to the reported confidence before clamping.
type MethodContribution struct {
	Method       string  `json:"method"`
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// SupplierHint is a non-authoritative boost toward specific document types
// based on recognizing a known business name in the text.
type SupplierHint struct {
	Supplier     string         `json:"supplier"`
	TaxID        string         `json:"tax_id,omitempty"`
	FavoredTypes []DocumentType `json:"favored_types"`
	Strength     float64        `json:"strength"`
}

// Breakdown is the per-method accounting behind a decision.
type Breakdown struct {
	Contributions         []MethodContribution `json:"contributions"`
	SupplierHint          *SupplierHint        `json:"supplier_hint,omitempty"`
	SupplierContribution  float64              `json:"supplier_contribution,omitempty"`
	ConsensusContribution float64              `json:"consensus_contribution,omitempty"`
	EnabledMethods        []string             `json:"enabled_methods"`
	// RawConfidence keeps the computed confidence visible when a
	// below-threshold decision was overridden to unknown.
	RawConfidence float64 `json:"raw_confidence"`
}

// Decision is the final classification output: one type, a calibrated
// confidence in [0,1] and the breakdown that produced it.
type Decision struct {
	Type       DocumentType `json:"type"`
	Confidence float64      `json:"confidence"`
	Breakdown  Breakdown    `json:"breakdown"`
}

// Metadata holds the field values extracted alongside classification.
type Metadata struct {
	TaxID          string `json:"tax_id,omitempty"`
	Supplier       string `json:"supplier,omitempty"`
	DocumentDate   string `json:"document_date,omitempty"`
	Amount         string `json:"amount,omitempty"`
	DocumentNumber string `json:"document_number,omitempty"`
}

// ExtractedContent is what the text-extraction collaborator hands the
// processing pipeline for one document.
type ExtractedContent struct {
	Text   string
	Layout *LayoutInfo
}

package models

// ExtractionSource tells where the transactions of an ExtractionResult came from.
type ExtractionSource string

const (
	// SourceExtracted means the transactions were recovered from the document.
	SourceExtracted ExtractionSource = "extracted"
	// SourceFallbackSample means nothing was recovered and the fixed sample
	// ledger was substituted.
	SourceFallbackSample ExtractionSource = "fallback_sample"
	// SourceEmpty means nothing was recovered and sample substitution is disabled.
	SourceEmpty ExtractionSource = "empty"
)

// ExtractionResult is the output of the statement pipeline.
type ExtractionResult struct {
	Source       ExtractionSource
	Bank         BankType
	Transactions []Transaction
	// Reason is set when Source is not SourceExtracted.
	Reason string
}

// IsFallback reports whether the transactions are placeholder sample data.
func (r ExtractionResult) IsFallback() bool {
	return r.Source == SourceFallbackSample
}

// IsEmpty reports whether the result holds no transactions.
func (r ExtractionResult) IsEmpty() bool {
	return len(r.Transactions) == 0
}

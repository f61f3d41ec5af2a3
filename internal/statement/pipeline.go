// Package statement turns extracted statement text into an ordered ledger.
//
// The pipeline detects the issuer, runs the line extractor over every line in
// order and reports where its transactions came from. When nothing is
// recovered it substitutes the sample ledger (or nothing, when sample
// substitution is disabled) and says so in ExtractionResult.Source.
package statement

import (
	"context"
	"fmt"
	"strings"

	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"
)

// ReasonNoTransactions is the fallback reason when no line qualified.
const ReasonNoTransactions = "no transactions recognised in document"

// Pipeline runs bank detection and line extraction over a whole document.
type Pipeline struct {
	categorizer         Categorizer
	logger              logging.Logger
	allowSampleFallback bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSampleFallback controls whether an empty extraction is replaced by the
// sample ledger. Enabled by default.
func WithSampleFallback(enabled bool) Option {
	return func(p *Pipeline) {
		p.allowSampleFallback = enabled
	}
}

// NewPipeline creates a pipeline that tags transactions with categorizer.
func NewPipeline(categorizer Categorizer, logger logging.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	p := &Pipeline{
		categorizer:         categorizer,
		logger:              logger,
		allowSampleFallback: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process extracts the transactions of a document.
func (p *Pipeline) Process(ctx context.Context, text string) models.ExtractionResult {
	bank := DetectBank(text)
	p.logger.Info("Detected statement issuer", logging.Field{Key: logging.FieldBank, Value: bank.String()})

	extractor := NewLineExtractor(ProfileFor(bank), p.categorizer, p.logger)

	var transactions []models.Transaction
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		tx, ok := extractor.Extract(ctx, line)
		if !ok {
			continue
		}
		p.logger.Debug("Extracted transaction",
			logging.Field{Key: logging.FieldLineNumber, Value: i + 1},
			logging.Field{Key: logging.FieldDescription, Value: tx.Description})
		transactions = append(transactions, tx)
	}

	if len(transactions) == 0 {
		return p.fallback(bank, ReasonNoTransactions)
	}

	models.NewCategorizationStats(transactions).LogSummary(p.logger, bank)
	return models.ExtractionResult{
		Source:       models.SourceExtracted,
		Bank:         bank,
		Transactions: transactions,
	}
}

// ProcessPages joins page texts in order and processes them. A non-nil
// readErr from the text source short-circuits to the fallback result.
func (p *Pipeline) ProcessPages(ctx context.Context, pages []string, readErr error) models.ExtractionResult {
	if readErr != nil {
		p.logger.WithError(readErr).Warn("Statement text could not be read")
		return p.fallback(models.BankGeneric, fmt.Sprintf("document could not be read: %v", readErr))
	}
	return p.Process(ctx, strings.Join(pages, "\n"))
}

func (p *Pipeline) fallback(bank models.BankType, reason string) models.ExtractionResult {
	if !p.allowSampleFallback {
		p.logger.Warn("No transactions extracted",
			logging.Field{Key: logging.FieldBank, Value: bank.String()},
			logging.Field{Key: logging.FieldReason, Value: reason})
		return models.ExtractionResult{
			Source:       models.SourceEmpty,
			Bank:         bank,
			Transactions: []models.Transaction{},
			Reason:       reason,
		}
	}

	p.logger.Warn("Using sample transactions",
		logging.Field{Key: logging.FieldBank, Value: bank.String()},
		logging.Field{Key: logging.FieldReason, Value: reason},
		logging.Field{Key: logging.FieldSource, Value: string(models.SourceFallbackSample)})
	return models.ExtractionResult{
		Source:       models.SourceFallbackSample,
		Bank:         bank,
		Transactions: SampleTransactions(),
		Reason:       reason,
	}
}

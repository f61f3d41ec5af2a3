package statement

import (
	"context"
	"fmt"
	"strings"

	"billkaro/statement-ledger/internal/dateutils"
	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"
	"billkaro/statement-ledger/internal/textutils"

	"github.com/shopspring/decimal"
)

const (
	// MaxDescriptionLength caps the description in characters.
	MaxDescriptionLength = 100
	// PlaceholderDescription is used when nothing follows the date token.
	PlaceholderDescription = "Transaction"
)

// Categorizer tags a description with a category name.
type Categorizer interface {
	Categorize(ctx context.Context, description string) string
}

// LineExtractor recovers at most one transaction from a single line.
type LineExtractor struct {
	profile     Profile
	categorizer Categorizer
	logger      logging.Logger
}

// NewLineExtractor creates an extractor for profile. A nil categorizer tags
// every transaction Other.
func NewLineExtractor(profile Profile, categorizer Categorizer, logger logging.Logger) *LineExtractor {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if profile.Allocate == nil {
		profile.Allocate = PositionalAllocation
	}
	if len(profile.DateShapes) == 0 {
		profile.DateShapes = textutils.DefaultDateShapes
	}
	return &LineExtractor{
		profile:     profile,
		categorizer: categorizer,
		logger:      logger,
	}
}

// Extract returns the transaction on line. ok is false when the line holds no
// date token, no positive amount after it, or a description of three
// characters or fewer. Panics while parsing are treated the same way.
func (e *LineExtractor) Extract(ctx context.Context, line string) (tx models.Transaction, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Debug("Skipping line after parse panic",
				logging.Field{Key: logging.FieldLine, Value: line},
				logging.Field{Key: logging.FieldError, Value: fmt.Sprint(r)})
			tx, ok = models.Transaction{}, false
		}
	}()

	token, found := textutils.FindDateToken(line, e.profile.DateShapes)
	if !found {
		return models.Transaction{}, false
	}

	rest := line[token.End:]
	matches := textutils.FindAmounts(rest)
	if len(matches) == 0 {
		return models.Transaction{}, false
	}

	description := descriptionBetween(rest, matches[0].Start)

	amounts := make([]decimal.Decimal, len(matches))
	for i, m := range matches {
		amounts[i] = m.Value
	}
	alloc := e.profile.Allocate(amounts, line)

	category := models.CategoryOther
	if e.categorizer != nil {
		category = e.categorizer.Categorize(ctx, description)
	}

	tx, err := models.NewTransactionBuilder().
		WithDate(dateutils.NormalizeDate(token.Raw)).
		WithDescription(description).
		WithDebit(alloc.Debit).
		WithCredit(alloc.Credit).
		WithBalance(alloc.Balance).
		WithCategory(category).
		Build()
	if err != nil {
		e.logger.Debug("Skipping candidate line",
			logging.Field{Key: logging.FieldLine, Value: line},
			logging.Field{Key: logging.FieldReason, Value: err.Error()})
		return models.Transaction{}, false
	}
	return tx, true
}

// descriptionBetween returns the trimmed text of rest up to the first amount,
// falling back to the first word of rest and then to the placeholder.
func descriptionBetween(rest string, firstAmountStart int) string {
	description := textutils.Truncate(strings.TrimSpace(rest[:firstAmountStart]), MaxDescriptionLength)
	description = strings.TrimSpace(description)
	if description != "" {
		return description
	}
	if word := textutils.FirstWord(rest); word != "" {
		return textutils.Truncate(word, MaxDescriptionLength)
	}
	return PlaceholderDescription
}

package common

import (
	"context"

	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"
)

// Categorizer tags a description with a category name.
type Categorizer interface {
	Categorize(ctx context.Context, description string) string
}

// RecategorizeTransactions returns a copy of transactions with every
// category recomputed from its description, and logs the resulting stats.
func RecategorizeTransactions(ctx context.Context, transactions []models.Transaction, categorizer Categorizer, logger logging.Logger) []models.Transaction {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	out := make([]models.Transaction, len(transactions))
	changed := 0
	for i, tx := range transactions {
		out[i] = tx
		if categorizer == nil {
			out[i].Category = models.CategoryOther
			continue
		}
		category := categorizer.Categorize(ctx, tx.Description)
		if category != tx.Category {
			changed++
			logger.Debug("Category changed",
				logging.Field{Key: logging.FieldDescription, Value: tx.Description},
				logging.Field{Key: "previous_category", Value: tx.Category},
				logging.Field{Key: logging.FieldCategory, Value: category})
		}
		out[i].Category = category
	}

	models.NewCategorizationStats(out).LogSummary(logger, models.BankGeneric)
	logger.Info("Recategorized transactions",
		logging.Field{Key: logging.FieldCount, Value: len(out)},
		logging.Field{Key: "changed", Value: changed})
	return out
}

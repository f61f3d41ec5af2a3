package models

import (
	"billkaro/statement-ledger/internal/logging"
)

// CategorizationStats counts how the transactions of one run were tagged.
type CategorizationStats struct {
	Total         int
	Categorized   int
	Uncategorized int
	ByCategory    map[string]int
}

// NewCategorizationStats computes stats over a transaction sequence.
func NewCategorizationStats(transactions []Transaction) CategorizationStats {
	stats := CategorizationStats{ByCategory: make(map[string]int)}
	for _, tx := range transactions {
		stats.Total++
		stats.ByCategory[tx.Category]++
		if tx.Category == CategoryOther || tx.Category == "" {
			stats.Uncategorized++
		} else {
			stats.Categorized++
		}
	}
	return stats
}

// SuccessRate returns the categorized share as a percentage.
func (cs CategorizationStats) SuccessRate() float64 {
	if cs.Total == 0 {
		return 0.0
	}
	return float64(cs.Categorized) / float64(cs.Total) * 100.0
}

// LogSummary logs the stats at info level.
func (cs CategorizationStats) LogSummary(logger logging.Logger, bank BankType) {
	if logger == nil {
		return
	}
	logger.Info("Categorization summary",
		logging.Field{Key: logging.FieldBank, Value: bank.String()},
		logging.Field{Key: "total_transactions", Value: cs.Total},
		logging.Field{Key: "categorized", Value: cs.Categorized},
		logging.Field{Key: "uncategorized", Value: cs.Uncategorized},
		logging.Field{Key: "success_rate", Value: cs.SuccessRate()},
	)
}

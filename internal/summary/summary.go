// Package summary reduces a transaction sequence into totals, a category
// breakdown and a monthly breakdown.
package summary

import (
	"billkaro/statement-ledger/internal/dateutils"
	"billkaro/statement-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// NoTopCategory is shown when a ledger has no debit spend.
const NoTopCategory = "N/A"

// Summarize computes the Summary of transactions. Opening and closing
// balances follow sequence order, not date order.
func Summarize(transactions []models.Transaction) models.Summary {
	s := models.Summary{
		TotalDebits:      decimal.Zero,
		TotalCredits:     decimal.Zero,
		NetAmount:        decimal.Zero,
		CategoryExpenses: make(map[string]decimal.Decimal),
		Monthly:          make(map[string]models.MonthlyTotals),
		OpeningBalance:   decimal.Zero,
		ClosingBalance:   decimal.Zero,
	}
	if len(transactions) == 0 {
		return s
	}

	s.TotalTransactions = len(transactions)
	for _, tx := range transactions {
		s.TotalDebits = s.TotalDebits.Add(tx.Debit)
		s.TotalCredits = s.TotalCredits.Add(tx.Credit)

		// Categories with no debit never enter the breakdown.
		if !tx.Debit.IsZero() {
			category := tx.Category
			if category == "" {
				category = models.CategoryOther
			}
			s.CategoryExpenses[category] = s.CategoryExpenses[category].Add(tx.Debit)
		}

		key := dateutils.MonthKey(tx.Date)
		month := s.Monthly[key]
		month.Debit = month.Debit.Add(tx.Debit)
		month.Credit = month.Credit.Add(tx.Credit)
		s.Monthly[key] = month
	}

	s.NetAmount = s.TotalCredits.Sub(s.TotalDebits)
	s.OpeningBalance = transactions[0].Balance
	s.ClosingBalance = transactions[len(transactions)-1].Balance
	return s
}

// Highlights are the figures carried by outbound notifications.
type Highlights struct {
	TotalTransactions int
	TotalDebits       decimal.Decimal
	TotalCredits      decimal.Decimal
	BalanceChange     decimal.Decimal
	TopCategory       string
}

// HighlightsOf extracts the notification figures from s.
func HighlightsOf(s models.Summary) Highlights {
	top, ok := s.TopCategory()
	if !ok {
		top = NoTopCategory
	}
	return Highlights{
		TotalTransactions: s.TotalTransactions,
		TotalDebits:       s.TotalDebits,
		TotalCredits:      s.TotalCredits,
		BalanceChange:     s.BalanceChange(),
		TopCategory:       top,
	}
}

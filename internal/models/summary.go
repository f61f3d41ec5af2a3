package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MonthlyTotals holds the debit and credit sums of one YYYY-MM bucket.
type MonthlyTotals struct {
	Debit  decimal.Decimal `json:"debit" yaml:"debit"`
	Credit decimal.Decimal `json:"credit" yaml:"credit"`
}

// CategoryAmount pairs a category with its summed debit.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// Summary is derived from a transaction sequence and never patched in place.
type Summary struct {
	TotalTransactions int                        `json:"total_transactions" yaml:"total_transactions"`
	TotalDebits       decimal.Decimal            `json:"total_debits" yaml:"total_debits"`
	TotalCredits      decimal.Decimal            `json:"total_credits" yaml:"total_credits"`
	NetAmount         decimal.Decimal            `json:"net_amount" yaml:"net_amount"`
	CategoryExpenses  map[string]decimal.Decimal `json:"category_expenses" yaml:"category_expenses"`
	Monthly           map[string]MonthlyTotals   `json:"monthly_summary" yaml:"monthly_summary"`
	OpeningBalance    decimal.Decimal            `json:"opening_balance" yaml:"opening_balance"`
	ClosingBalance    decimal.Decimal            `json:"closing_balance" yaml:"closing_balance"`
}

// BalanceChange is the net amount (credits minus debits).
func (s Summary) BalanceChange() decimal.Decimal {
	return s.NetAmount
}

// CategoriesBySpend returns the category breakdown ordered by amount
// descending, then by name.
func (s Summary) CategoriesBySpend() []CategoryAmount {
	out := make([]CategoryAmount, 0, len(s.CategoryExpenses))
	for name, amount := range s.CategoryExpenses {
		out = append(out, CategoryAmount{Category: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// TopCategory returns the category with the largest summed debit. The
// boolean is false when there is no spend at all.
func (s Summary) TopCategory() (string, bool) {
	ranked := s.CategoriesBySpend()
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].Category, true
}

// Months returns the monthly bucket keys in ascending order.
func (s Summary) Months() []string {
	keys := make([]string, 0, len(s.Monthly))
	for k := range s.Monthly {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

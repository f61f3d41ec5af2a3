// Package models provides the data structures shared by the extraction,
// categorization, summary and export layers.
package models

import (
	"github.com/shopspring/decimal"
)

// Transaction is one ledger row recovered from a statement line.
//
// Date is ISO YYYY-MM-DD when the raw token could be parsed, otherwise the raw
// token itself. Debit and Credit are non-negative; Balance is unconstrained.
type Transaction struct {
	Date        string          `json:"date" yaml:"date"`
	Description string          `json:"description" yaml:"description"`
	Debit       decimal.Decimal `json:"debit" yaml:"debit"`
	Credit      decimal.Decimal `json:"credit" yaml:"credit"`
	Balance     decimal.Decimal `json:"balance" yaml:"balance"`
	Category    string          `json:"category" yaml:"category"`
}

// Column names of the tabular export, in order.
var ColumnNames = []string{"Date", "Description", "Debit", "Credit", "Balance", "Category"}

// IsDebit reports whether the transaction carries an outflow.
func (t Transaction) IsDebit() bool {
	return t.Debit.IsPositive()
}

// IsCredit reports whether the transaction carries an inflow.
func (t Transaction) IsCredit() bool {
	return t.Credit.IsPositive()
}

// NetAmount returns credit minus debit.
func (t Transaction) NetAmount() decimal.Decimal {
	return t.Credit.Sub(t.Debit)
}

// Equal compares two transactions field by field, using decimal equality for amounts.
func (t Transaction) Equal(other Transaction) bool {
	return t.Date == other.Date &&
		t.Description == other.Description &&
		t.Debit.Equal(other.Debit) &&
		t.Credit.Equal(other.Credit) &&
		t.Balance.Equal(other.Balance) &&
		t.Category == other.Category
}

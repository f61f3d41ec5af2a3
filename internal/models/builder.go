package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// MinDescriptionLength is the exclusive lower bound on accepted description length.
const MinDescriptionLength = 3

// ErrDescriptionTooShort is returned by Build when the description is empty
// or not longer than MinDescriptionLength.
var ErrDescriptionTooShort = errors.New("description too short")

// TransactionBuilder provides a fluent API for constructing transactions.
type TransactionBuilder struct {
	tx  Transaction
	err error
}

// NewTransactionBuilder creates a builder with zero amounts and the Other category.
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{
		tx: Transaction{
			Debit:    decimal.Zero,
			Credit:   decimal.Zero,
			Balance:  decimal.Zero,
			Category: CategoryOther,
		},
	}
}

// WithDate sets the (already normalized) date.
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	b.tx.Date = strings.TrimSpace(date)
	return b
}

// WithDescription sets the description, trimmed.
func (b *TransactionBuilder) WithDescription(description string) *TransactionBuilder {
	b.tx.Description = strings.TrimSpace(description)
	return b
}

// WithDebit sets the outflow amount.
func (b *TransactionBuilder) WithDebit(amount decimal.Decimal) *TransactionBuilder {
	if amount.IsNegative() {
		b.err = fmt.Errorf("debit must not be negative: %s", amount)
		return b
	}
	b.tx.Debit = amount
	return b
}

// WithCredit sets the inflow amount.
func (b *TransactionBuilder) WithCredit(amount decimal.Decimal) *TransactionBuilder {
	if amount.IsNegative() {
		b.err = fmt.Errorf("credit must not be negative: %s", amount)
		return b
	}
	b.tx.Credit = amount
	return b
}

// WithBalance sets the running balance.
func (b *TransactionBuilder) WithBalance(amount decimal.Decimal) *TransactionBuilder {
	b.tx.Balance = amount
	return b
}

// WithFloatAmounts sets debit, credit and balance from float literals.
func (b *TransactionBuilder) WithFloatAmounts(debit, credit, balance float64) *TransactionBuilder {
	return b.WithDebit(decimal.NewFromFloat(debit)).
		WithCredit(decimal.NewFromFloat(credit)).
		WithBalance(decimal.NewFromFloat(balance))
}

// WithCategory sets the category tag. Empty values keep Other.
func (b *TransactionBuilder) WithCategory(category string) *TransactionBuilder {
	if strings.TrimSpace(category) != "" {
		b.tx.Category = category
	}
	return b
}

// Build validates the transaction and returns it.
func (b *TransactionBuilder) Build() (Transaction, error) {
	if b.err != nil {
		return Transaction{}, fmt.Errorf("builder error: %w", b.err)
	}
	if b.tx.Date == "" {
		return Transaction{}, errors.New("date is required")
	}
	if utf8.RuneCountInString(b.tx.Description) <= MinDescriptionLength {
		return Transaction{}, fmt.Errorf("%w: %q", ErrDescriptionTooShort, b.tx.Description)
	}
	return b.tx, nil
}

// MustBuild is Build for literal data known to be valid; it panics otherwise.
func (b *TransactionBuilder) MustBuild() Transaction {
	tx, err := b.Build()
	if err != nil {
		panic(err)
	}
	return tx
}

package statement

import (
	"billkaro/statement-ledger/internal/textutils"

	"github.com/shopspring/decimal"
)

// Allocation is the debit/credit/balance reading of a line's amounts.
type Allocation struct {
	Debit   decimal.Decimal
	Credit  decimal.Decimal
	Balance decimal.Decimal
}

// AllocationStrategy assigns the positive amounts of a line, in order of
// appearance, to debit, credit and balance. amounts is never empty.
type AllocationStrategy func(amounts []decimal.Decimal, line string) Allocation

// debitKeywords mark a two-amount line as an outflow.
var debitKeywords = []string{"debit", "withdrawal", "purchase", "payment"}

// PositionalAllocation reads amounts by count:
//
//	1 amount:  balance only
//	2 amounts: first is debit if the line names a debit keyword, else credit; last is balance
//	3+:        debit, credit, balance are the last three, in that order
func PositionalAllocation(amounts []decimal.Decimal, line string) Allocation {
	alloc := Allocation{Debit: decimal.Zero, Credit: decimal.Zero, Balance: decimal.Zero}
	n := len(amounts)
	switch {
	case n == 0:
	case n == 1:
		alloc.Balance = amounts[0]
	case n == 2:
		if textutils.ContainsAnyFold(line, debitKeywords) {
			alloc.Debit = amounts[0]
		} else {
			alloc.Credit = amounts[0]
		}
		alloc.Balance = amounts[1]
	default:
		alloc.Debit = amounts[n-3]
		alloc.Credit = amounts[n-2]
		alloc.Balance = amounts[n-1]
	}
	return alloc
}

package statement

import (
	"billkaro/statement-ledger/internal/models"
)

// SampleTransactions returns the fixed one-week ledger substituted when a
// document yields nothing. Each call returns a fresh slice.
func SampleTransactions() []models.Transaction {
	rows := []struct {
		date, description      string
		debit, credit, balance float64
		category               string
	}{
		{"2025-01-01", "Opening Balance", 0, 0, 25000, models.CategoryBanking},
		{"2025-01-02", "ATM Withdrawal - Cash", 5000, 0, 20000, models.CategoryBanking},
		{"2025-01-03", "Swiggy Food Order", 450, 0, 19550, models.CategoryFoodDining},
		{"2025-01-04", "Salary Credit - Company XYZ", 0, 75000, 94550, models.CategoryOther},
		{"2025-01-05", "Amazon Purchase - Electronics", 12500, 0, 82050, models.CategoryShopping},
		{"2025-01-06", "Electricity Bill Payment", 2800, 0, 79250, models.CategoryUtilities},
		{"2025-01-07", "Uber Ride Payment", 350, 0, 78900, models.CategoryTransportation},
		{"2025-01-08", "BigBasket Groceries", 3200, 0, 75700, models.CategoryGroceries},
	}

	out := make([]models.Transaction, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.NewTransactionBuilder().
			WithDate(r.date).
			WithDescription(r.description).
			WithFloatAmounts(r.debit, r.credit, r.balance).
			WithCategory(r.category).
			MustBuild())
	}
	return out
}

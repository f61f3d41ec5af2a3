package categorizer

import "billkaro/statement-ledger/internal/models"

// defaultCategories is the built-in keyword table. Order is significant:
// the first category with a matching keyword wins, so "amazon fresh" must
// stay ahead of Shopping's "amazon".
var defaultCategories = []models.CategoryConfig{
	{Name: models.CategoryGroceries, Keywords: []string{"grocery", "supermarket", "bigbasket", "grofers", "amazon fresh", "flipkart grocery"}},
	{Name: models.CategoryUtilities, Keywords: []string{"electricity", "water", "gas", "internet", "broadband", "wifi", "mobile", "airtel", "jio", "vodafone"}},
	{Name: models.CategoryFoodDining, Keywords: []string{"swiggy", "zomato", "restaurant", "food", "pizza", "burger", "cafe", "coffee"}},
	{Name: models.CategoryTransportation, Keywords: []string{"uber", "ola", "metro", "bus", "petrol", "diesel", "fuel", "taxi"}},
	{Name: models.CategoryEntertainment, Keywords: []string{"movie", "cinema", "netflix", "amazon prime", "hotstar", "spotify", "gaming"}},
	{Name: models.CategoryShopping, Keywords: []string{"amazon", "flipkart", "myntra", "ajio", "shopping", "mall", "purchase"}},
	{Name: models.CategoryHealthcare, Keywords: []string{"hospital", "medical", "pharmacy", "doctor", "medicine", "clinic"}},
	{Name: models.CategoryBanking, Keywords: []string{"atm", "withdrawal", "transfer", "deposit", "interest", "charges", "fee"}},
	{Name: models.CategoryEducation, Keywords: []string{"school", "college", "university", "course", "training", "education"}},
	{Name: models.CategoryOther, Keywords: nil},
}

// DefaultCategories returns a copy of the built-in keyword table.
func DefaultCategories() []models.CategoryConfig {
	return cloneCategories(defaultCategories)
}

// CategoryNames returns the names of a table in order.
func CategoryNames(categories []models.CategoryConfig) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}

func cloneCategories(in []models.CategoryConfig) []models.CategoryConfig {
	out := make([]models.CategoryConfig, len(in))
	for i, c := range in {
		out[i] = models.CategoryConfig{
			Name:     c.Name,
			Keywords: append([]string(nil), c.Keywords...),
		}
	}
	return out
}

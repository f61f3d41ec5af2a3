package models

// Category tags. The order of DefaultCategoryOrder is the evaluation order of
// the keyword table.
const (
	CategoryGroceries      = "Groceries"
	CategoryUtilities      = "Utilities"
	CategoryFoodDining     = "Food & Dining"
	CategoryTransportation = "Transportation"
	CategoryEntertainment  = "Entertainment"
	CategoryShopping       = "Shopping"
	CategoryHealthcare     = "Healthcare"
	CategoryBanking        = "Banking"
	CategoryEducation      = "Education"
	CategoryOther          = "Other"
)

// Category is the result of a categorization attempt.
type Category struct {
	Name        string
	Description string
}

// CategoryConfig is one (category, keywords) row of the keyword table.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig is the layout of categories.yaml.
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

package categorizer

import (
	"context"

	"billkaro/statement-ledger/internal/models"
)

// CategorizationStrategy is one way of mapping a description to a category.
type CategorizationStrategy interface {
	// Categorize returns the category and true when the strategy recognised
	// the description. A false result with a nil error means "no opinion".
	Categorize(ctx context.Context, description string) (models.Category, bool, error)

	// Name identifies the strategy in logs.
	Name() string
}

package categorizer

import "billkaro/statement-ledger/internal/models"

// CategoryStoreInterface is the source of an override keyword table.
type CategoryStoreInterface interface {
	LoadCategories() ([]models.CategoryConfig, error)
}

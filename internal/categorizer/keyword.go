package categorizer

import (
	"context"
	"strings"

	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"
)

// KeywordStrategy matches descriptions against an ordered keyword table by
// case-insensitive substring. Categories are evaluated in table order and
// the first hit wins.
type KeywordStrategy struct {
	categories []models.CategoryConfig
	logger     logging.Logger
}

// NewKeywordStrategy builds a strategy over the given table. Keywords are
// lower-cased once here.
func NewKeywordStrategy(categories []models.CategoryConfig, logger logging.Logger) *KeywordStrategy {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	table := cloneCategories(categories)
	for i := range table {
		for j, k := range table[i].Keywords {
			table[i].Keywords[j] = strings.ToLower(k)
		}
	}
	return &KeywordStrategy{
		categories: table,
		logger:     logger,
	}
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize finds the first category with a keyword contained in description.
func (s *KeywordStrategy) Categorize(ctx context.Context, description string) (models.Category, bool, error) {
	if strings.TrimSpace(description) == "" {
		return models.Category{}, false, nil
	}
	lower := strings.ToLower(description)

	for _, category := range s.categories {
		for _, keyword := range category.Keywords {
			if keyword == "" || !strings.Contains(lower, keyword) {
				continue
			}
			s.logger.Debug("Description matched keyword",
				logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
				logging.Field{Key: logging.FieldDescription, Value: description},
				logging.Field{Key: logging.FieldKeyword, Value: keyword},
				logging.Field{Key: logging.FieldCategory, Value: category.Name})
			return models.Category{
				Name:        category.Name,
				Description: "matched keyword " + keyword,
			}, true, nil
		}
	}
	return models.Category{}, false, nil
}

// Categories returns a copy of the table in evaluation order.
func (s *KeywordStrategy) Categories() []models.CategoryConfig {
	return cloneCategories(s.categories)
}

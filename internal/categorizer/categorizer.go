// Package categorizer assigns one of a fixed set of spending categories to a
// transaction description.
//
// The primary strategy is an ordered keyword table evaluated first-match-wins.
// An optional AI strategy is consulted only when no keyword matches.
// Descriptions nothing recognises are tagged Other.
package categorizer

import (
	"context"
	"fmt"

	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"
)

// Categorizer runs its strategies in order and returns the first hit.
type Categorizer struct {
	keyword    *KeywordStrategy
	strategies []CategorizationStrategy
	logger     logging.Logger
}

// NewCategorizer creates a categorizer over categories. An empty table means
// the built-in one. aiClient may be nil.
func NewCategorizer(categories []models.CategoryConfig, aiClient AIClient, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if len(categories) == 0 {
		categories = defaultCategories
	}

	keyword := NewKeywordStrategy(categories, logger)
	strategies := []CategorizationStrategy{keyword}
	if aiClient != nil {
		strategies = append(strategies, NewAIStrategy(aiClient, CategoryNames(categories), logger))
	}

	return &Categorizer{
		keyword:    keyword,
		strategies: strategies,
		logger:     logger,
	}
}

// NewCategorizerFromStore loads the table from store, falling back to the
// built-in table when the store has none.
func NewCategorizerFromStore(store CategoryStoreInterface, aiClient AIClient, logger logging.Logger) (*Categorizer, error) {
	var categories []models.CategoryConfig
	if store != nil {
		loaded, err := store.LoadCategories()
		if err != nil {
			return nil, fmt.Errorf("failed to load categories: %w", err)
		}
		categories = loaded
	}
	return NewCategorizer(categories, aiClient, logger), nil
}

// Categorize returns the category name for description, or Other.
func (c *Categorizer) Categorize(ctx context.Context, description string) string {
	category, results := c.CategorizeWithResults(ctx, description)
	for _, err := range results.GetErrors() {
		c.logger.WithError(err).Warn("Categorization strategy failed",
			logging.Field{Key: logging.FieldDescription, Value: description})
	}
	return category
}

// CategorizeWithResults is Categorize plus the record of every attempt.
func (c *Categorizer) CategorizeWithResults(ctx context.Context, description string) (string, StrategyResults) {
	var results StrategyResults
	for _, strategy := range c.strategies {
		if ctx.Err() != nil {
			break
		}
		category, found, err := strategy.Categorize(ctx, description)
		results.Results = append(results.Results, StrategyResult{
			Strategy: strategy.Name(),
			Category: category,
			Found:    found,
			Error:    err,
		})
		if found && err == nil {
			break
		}
	}

	if best, ok := results.GetBestResult(); ok {
		return best.Name, results
	}
	return models.CategoryOther, results
}

// Categories returns the keyword table in evaluation order.
func (c *Categorizer) Categories() []models.CategoryConfig {
	return c.keyword.Categories()
}

// StrategyNames lists the active strategies in order.
func (c *Categorizer) StrategyNames() []string {
	names := make([]string, 0, len(c.strategies))
	for _, s := range c.strategies {
		names = append(names, s.Name())
	}
	return names
}

var builtin = NewCategorizer(nil, nil, nil)

// Categorize tags description with the built-in keyword table.
func Categorize(description string) string {
	return builtin.Categorize(context.Background(), description)
}

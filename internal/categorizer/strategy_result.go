package categorizer

import (
	"fmt"
	"strings"

	"billkaro/statement-ledger/internal/models"
)

// StrategyResult records one strategy attempt.
type StrategyResult struct {
	Strategy string
	Category models.Category
	Found    bool
	Error    error
}

// StrategyResults aggregates the attempts made for one description.
type StrategyResults struct {
	Results []StrategyResult
}

// GetBestResult returns the first successful result.
func (sr StrategyResults) GetBestResult() (models.Category, bool) {
	for _, r := range sr.Results {
		if r.Found && r.Error == nil {
			return r.Category, true
		}
	}
	return models.Category{}, false
}

// GetErrors returns the errors of failed attempts, prefixed by strategy.
func (sr StrategyResults) GetErrors() []error {
	var errs []error
	for _, result := range sr.Results {
		if result.Error != nil {
			errs = append(errs, fmt.Errorf("%s strategy: %w", result.Strategy, result.Error))
		}
	}
	return errs
}

// Summary renders the attempts as "Keyword:no_match, AI:success".
func (sr StrategyResults) Summary() string {
	parts := make([]string, 0, len(sr.Results))
	for _, result := range sr.Results {
		status := "failed"
		if result.Found {
			status = "success"
		} else if result.Error == nil {
			status = "no_match"
		}
		parts = append(parts, fmt.Sprintf("%s:%s", result.Strategy, status))
	}
	return strings.Join(parts, ", ")
}

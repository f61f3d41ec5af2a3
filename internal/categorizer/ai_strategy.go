package categorizer

import (
	"context"
	"strings"

	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"
	"billkaro/statement-ledger/internal/parsererror"
)

// AIStrategy asks an AIClient for a category and accepts the answer only
// when it names a category of the table other than Other.
type AIStrategy struct {
	aiClient AIClient
	allowed  []string
	logger   logging.Logger
}

// NewAIStrategy creates an AIStrategy constrained to the given category names.
func NewAIStrategy(aiClient AIClient, allowed []string, logger logging.Logger) *AIStrategy {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &AIStrategy{
		aiClient: aiClient,
		allowed:  append([]string(nil), allowed...),
		logger:   logger,
	}
}

// Name returns the name of this strategy for logging and debugging.
func (s *AIStrategy) Name() string {
	return "AI"
}

// Categorize delegates to the AI client.
func (s *AIStrategy) Categorize(ctx context.Context, description string) (models.Category, bool, error) {
	if s.aiClient == nil || strings.TrimSpace(description) == "" {
		return models.Category{}, false, nil
	}

	answer, err := s.aiClient.Categorize(ctx, description, s.allowed)
	if err != nil {
		return models.Category{}, false, &parsererror.CategorizationError{
			Description: description,
			Strategy:    s.Name(),
			Err:         err,
		}
	}

	name, ok := s.match(answer)
	if !ok || name == models.CategoryOther {
		s.logger.Debug("AI answer rejected",
			logging.Field{Key: logging.FieldDescription, Value: description},
			logging.Field{Key: "ai_category", Value: answer})
		return models.Category{}, false, nil
	}

	return models.Category{Name: name, Description: "suggested by AI"}, true, nil
}

func (s *AIStrategy) match(answer string) (string, bool) {
	answer = strings.TrimSpace(answer)
	for _, name := range s.allowed {
		if strings.EqualFold(name, answer) {
			return name, true
		}
	}
	return "", false
}

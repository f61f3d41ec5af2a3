package categorizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"billkaro/statement-ledger/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements AIClient with the Google Gemini API.
type GeminiClient struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	logger  logging.Logger
}

// NewGeminiClient connects to Gemini with apiKey and the named model.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger logging.Logger) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)

	return &GeminiClient{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Categorize asks the model to pick exactly one of allowed for description.
func (c *GeminiClient) Categorize(ctx context.Context, description string, allowed []string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(buildPrompt(description, allowed)))
	if err != nil {
		return "", fmt.Errorf("gemini api error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response from gemini api")
	}

	text := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	category := parseCategoryResponse(text, allowed)

	c.logger.Debug("Gemini classified description",
		logging.Field{Key: logging.FieldDescription, Value: description},
		logging.Field{Key: logging.FieldCategory, Value: category})
	return category, nil
}

// Close releases the underlying client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func buildPrompt(description string, allowed []string) string {
	return fmt.Sprintf(`Categorize this Indian bank statement entry:
Description: %s

Answer with exactly one of these categories and nothing else:
%s

Respond in this format:
Category: [Selected Category Name]`, description, strings.Join(allowed, ", "))
}

// parseCategoryResponse extracts the "Category:" line, or failing that the
// first allowed name mentioned anywhere in the response.
func parseCategoryResponse(response string, allowed []string) string {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(line), "category:") {
			return strings.TrimSpace(line[len("category:"):])
		}
	}
	lower := strings.ToLower(response)
	for _, name := range allowed {
		if strings.Contains(lower, strings.ToLower(name)) {
			return name
		}
	}
	return strings.TrimSpace(response)
}

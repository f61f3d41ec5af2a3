package categorizer

import (
	"context"
)

// AIClient classifies a description into one of the allowed category names.
type AIClient interface {
	// Categorize returns the chosen category name. Implementations may
	// return a name outside allowed; callers must validate it.
	Categorize(ctx context.Context, description string, allowed []string) (string, error)
}

// MockAIClient is a scripted AIClient for tests.
type MockAIClient struct {
	Responses map[string]string
	Err       error
	Calls     []string
}

// Categorize returns the scripted response for description.
func (m *MockAIClient) Categorize(ctx context.Context, description string, allowed []string) (string, error) {
	m.Calls = append(m.Calls, description)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Responses[description], nil
}

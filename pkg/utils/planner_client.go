package utils

import (
	"context"
	"fmt"
	"strings"
)

// PlannerSource is one citation the provider attached to a completion.
type PlannerSource struct {
	Title string
	URI   string
}

// PlannerResult is the raw outcome of one completion call: the text the model
// produced plus whatever citation metadata the provider attached to it.
type PlannerResult struct {
	Text    string
	Sources []PlannerSource
}

type PlannerClientInterface interface {
	GeneratePlan(ctx context.Context, prompt string) (*PlannerResult, error)
	Close() error
}

// NewPlannerClient creates either a Gemini or an OpenAI planner client based
// on config. Only Gemini supports search grounding; the OpenAI path exists as
// a fallback provider and returns no sources.
func NewPlannerClient(provider, apiKey, model string) (PlannerClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIPlannerClient(apiKey, model), nil
	case "gemini":
		return NewGeminiPlannerClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported planner provider: %s. Use 'openai' or 'gemini'", provider)
	}
}

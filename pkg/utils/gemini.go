package utils

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiPlannerClient implements PlannerClientInterface using Google's Gemini
// models with the Google Search grounding tool enabled, so permit costs and
// hotel prices in the generated plan can reflect current data.
type GeminiPlannerClient struct {
	client *genai.Client
	model  string
}

func NewGeminiPlannerClient(apiKey, model string) (PlannerClientInterface, error) {
	if model == "" {
		model = "gemini-2.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiPlannerClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiPlannerClient) GeneratePlan(ctx context.Context, prompt string) (*PlannerResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}

	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.4)
	m.SetTopP(0.8)
	m.SetTopK(20)
	m.SetMaxOutputTokens(8192)

	// ResponseMIMEType is deliberately NOT set to application/json: the
	// search tool and forced JSON output conflict on Flash models, so the
	// JSON-only instruction lives in the prompt and extraction happens on
	// the caller's side.
	m.Tools = []*genai.Tool{
		{},
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated by Gemini")
	}

	cand := resp.Candidates[0]

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text response from Gemini")
	}

	return &PlannerResult{
		Text:    text,
		Sources: citationSources(cand),
	}, nil
}

// citationSources maps the candidate's citation metadata into grounding
// sources, preserving order. The API reports bare URIs, so the title falls
// back to the host of the cited page.
func citationSources(cand *genai.Candidate) []PlannerSource {
	if cand.CitationMetadata == nil {
		return nil
	}

	var sources []PlannerSource
	for _, cs := range cand.CitationMetadata.CitationSources {
		if cs == nil || cs.URI == nil || *cs.URI == "" {
			continue
		}
		sources = append(sources, PlannerSource{
			Title: sourceTitle(*cs.URI),
			URI:   *cs.URI,
		})
	}
	return sources
}

func sourceTitle(uri string) string {
	if u, err := url.Parse(uri); err == nil && u.Host != "" {
		return u.Host
	}
	return uri
}

func (c *GeminiPlannerClient) Close() error {
	return c.client.Close()
}

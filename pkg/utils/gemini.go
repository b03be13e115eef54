package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// PlanClientInterface generates structured itinerary JSON from a ranked
// place list. It is a pure consumer of retrieval output; it never touches
// the store.
type PlanClientInterface interface {
	GeneratePlanJSON(ctx context.Context, userPrompt string, placeBlocks []string, dayCount int) (string, error)
	Close() error
}

type GeminiPlanClient struct {
	client *genai.Client
	model  string
}

func NewGeminiPlanClient(apiKey, model string) (PlanClientInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiPlanClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiPlanClient) GeneratePlanJSON(
	ctx context.Context,
	userPrompt string,
	placeBlocks []string,
	dayCount int,
) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", fmt.Errorf("user prompt cannot be empty")
	}
	if len(placeBlocks) == 0 {
		return "", fmt.Errorf("place list cannot be empty")
	}
	if dayCount < 1 || dayCount > 30 {
		return "", fmt.Errorf("day count must be between 1 and 30")
	}

	m := c.client.GenerativeModel(c.model)
	// JSON-only output; no markdown fences to strip afterwards.
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)
	m.SetTopP(0.5)
	m.SetTopK(20)
	m.SetMaxOutputTokens(5000)

	schema := `
{
  "title": "string",
  "total_days": 2,
  "days": [
    {
      "day": 1,
      "title": "string",
      "items": [
        {"time":"09:00","duration":90,"place_name_en":"<name_en from the list>","notes":"string"}
      ]
    }
  ]
}`

	var placeBuf strings.Builder
	for _, block := range placeBlocks {
		placeBuf.WriteString(block)
		placeBuf.WriteString("\n\n")
	}

	prompt := fmt.Sprintf(`
You are scheduling a %d-day visit to Daejeon. Return **JSON only** that exactly matches the schema below.
Use only place_name_en values from the place list. Ensure realistic times (09:00-21:00), 2-5 items per day, no overlapping times.

Schema (example, match keys exactly):
%s

Available places (use name_en values from here only):
%s

User request:
%s

Hard constraints:
- Exactly %d entries in "days", day = 1..%d with no gaps.
- Times formatted HH:MM, durations in minutes.
- Choose diverse categories when possible.

Return JSON only. No comments, no markdown.
`, dayCount, schema, placeBuf.String(), userPrompt, dayCount, dayCount)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no content generated")
	}

	content := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("gemini: response is not valid JSON")
	}
	return content, nil
}

func (c *GeminiPlanClient) Close() error {
	return c.client.Close()
}

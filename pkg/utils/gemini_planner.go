package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// PlannerClientInterface is the structured-generation capability: it takes a
// natural-language instruction and returns itinerary JSON matching the plan
// schema, or fails. One call per run, no retries.
type PlannerClientInterface interface {
	GeneratePlanJSON(ctx context.Context, instruction string) (string, error)
}

// GeminiPlannerClient generates itineraries with Google's Gemini models,
// constrained to the itinerary response schema.
type GeminiPlannerClient struct {
	client *genai.Client
	model  string
}

func NewGeminiPlannerClient(apiKey, model string) (PlannerClientInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash"
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

func (c *GeminiPlannerClient) GeneratePlanJSON(ctx context.Context, instruction string) (string, error) {
	if strings.TrimSpace(instruction) == "" {
		return "", fmt.Errorf("instruction cannot be empty")
	}

	m := c.client.GenerativeModel(c.model)
	// Force schema-conformant JSON so no brace-matching hacks are needed
	// downstream.
	m.ResponseMIMEType = "application/json"
	m.ResponseSchema = itineraryResponseSchema()
	m.SetTemperature(0.1)
	m.SetTopP(0.5)
	m.SetTopK(20)
	m.SetMaxOutputTokens(8192)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := m.GenerateContent(ctxWithTimeout, genai.Text(instruction))
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated by Gemini")
	}

	content := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	content = CleanJSONResponse(content)
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("gemini returned invalid JSON")
	}
	return content, nil
}

func (c *GeminiPlannerClient) Close() error {
	return c.client.Close()
}

// itineraryResponseSchema mirrors the plan contract: days -> activities ->
// optional location, plus a top-level total cost.
func itineraryResponseSchema() *genai.Schema {
	activitySchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":             {Type: genai.TypeString},
			"name":           {Type: genai.TypeString},
			"description":    {Type: genai.TypeString},
			"estimated_cost": {Type: genai.TypeNumber},
			"duration":       {Type: genai.TypeString, Description: "e.g. \"2 hours\""},
			"category": {
				Type: genai.TypeString,
				Enum: []string{"food", "adventure", "culture", "relaxation", "sightseeing"},
			},
			"location": {
				Type:        genai.TypeObject,
				Description: "Coordinates for the activity. MUST be accurate real-world coordinates.",
				Properties: map[string]*genai.Schema{
					"lat": {Type: genai.TypeNumber},
					"lng": {Type: genai.TypeNumber},
				},
				Required: []string{"lat", "lng"},
			},
		},
		Required: []string{"id", "name", "description", "estimated_cost", "duration", "category"},
	}

	daySchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"day":         {Type: genai.TypeInteger},
			"theme":       {Type: genai.TypeString},
			"daily_total": {Type: genai.TypeNumber},
			"activities":  {Type: genai.TypeArray, Items: activitySchema},
		},
		Required: []string{"day", "theme", "daily_total", "activities"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"days":       {Type: genai.TypeArray, Items: daySchema},
			"total_cost": {Type: genai.TypeNumber},
		},
		Required: []string{"days", "total_cost"},
	}
}

// CleanJSONResponse strips markdown fences and surrounding prose some models
// wrap around JSON payloads.
func CleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	if start > 0 {
		response = response[start:]
	}
	if end := strings.LastIndex(response, "}"); end != -1 && end < len(response)-1 {
		response = response[:end+1]
	}

	return strings.TrimSpace(response)
}

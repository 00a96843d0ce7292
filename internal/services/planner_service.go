package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"wanderai/internal/models/plan_models"
	"wanderai/pkg/utils"
)

// PlannerServiceInterface wraps the external structured-generation call:
// one call per invocation, no retries, no caching. Any failure (network,
// refusal, malformed output) comes back wrapped in utils.ErrGenerationFailed
// and is terminal for the submission.
type PlannerServiceInterface interface {
	Generate(ctx context.Context, params plan_models.TripParameters) (*plan_models.Itinerary, error)
}

type PlannerService struct {
	client utils.PlannerClientInterface
}

func NewPlannerService(client utils.PlannerClientInterface) PlannerServiceInterface {
	return &PlannerService{client: client}
}

// generatedPlan is the wire shape the model fills in. Destination is
// deliberately absent: it is always copied from the user's input.
type generatedPlan struct {
	Days      []plan_models.DayPlan `json:"days"`
	TotalCost float64               `json:"total_cost"`
}

func (p *PlannerService) Generate(ctx context.Context, params plan_models.TripParameters) (*plan_models.Itinerary, error) {
	log.Printf("Generating AI trip for %s with budget $%.0f", params.Destination, params.Budget)

	instruction := buildPlanInstruction(params)

	raw, err := p.client.GeneratePlanJSON(ctx, instruction)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrGenerationFailed, err)
	}

	var payload generatedPlan
	if err := json.Unmarshal([]byte(utils.CleanJSONResponse(raw)), &payload); err != nil {
		return nil, fmt.Errorf("%w: malformed plan JSON: %w", utils.ErrGenerationFailed, err)
	}

	itinerary := &plan_models.Itinerary{
		ID:          newPlanID(),
		Destination: params.Destination,
		TotalCost:   payload.TotalCost,
		Days:        payload.Days,
	}

	if err := plan_models.ValidateItinerary(itinerary); err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrGenerationFailed, err)
	}

	return itinerary, nil
}

func buildPlanInstruction(params plan_models.TripParameters) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Plan a detailed trip to %s.\n\n", params.Destination)
	b.WriteString("Constraints:\n")
	fmt.Fprintf(&b, "- Duration: %d days\n", params.Days)
	fmt.Fprintf(&b, "- Travelers: %d persons\n", params.Travelers)
	fmt.Fprintf(&b, "- Total budget: $%.0f\n", params.Budget)
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(params.Interests, ", "))

	b.WriteString("\nHard constraints:\n")
	fmt.Fprintf(&b, "- Exactly %d days in \"days\", day numbered 1..%d with no gaps.\n", params.Days, params.Days)
	fmt.Fprintf(&b, "- Every activity category is one of: %s.\n", strings.Join(plan_models.CategoryNames(), ", "))
	b.WriteString("- Coordinates, when given, are numeric and accurate real-world values.\n")
	b.WriteString("- If budget is tight, suggest cheaper activities.\n")
	b.WriteString("- Return JSON only, matching the schema exactly. No markdown, no comments.\n")

	return b.String()
}

// newPlanID returns a timestamp-derived token. Collisions are negligible at
// human-interaction rates.
func newPlanID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

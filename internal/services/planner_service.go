package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"tripchip/internal/models/request_models"
	"tripchip/internal/models/response_models"
	"tripchip/pkg/utils"
)

const (
	generateTimeout = 60 * time.Second
	refineTimeout   = 45 * time.Second
)

type PlannerServiceInterface interface {
	GenerateItinerary(ctx context.Context, prefs request_models.TripPreferences) (*response_models.TravelItinerary, error)
	RefineDay(ctx context.Context, itinerary response_models.TravelItinerary, dayNumber int, instruction string) (*response_models.ItineraryDay, error)
}

type PlannerService struct {
	client utils.PlannerClientInterface
}

func NewPlannerService(client utils.PlannerClientInterface) PlannerServiceInterface {
	return &PlannerService{client: client}
}

// GenerateItinerary renders the planning prompt, runs one grounded completion
// under a deadline, extracts the JSON payload and validates it. Either a
// fully-formed itinerary comes back or an error does; no partial result ever
// crosses this boundary.
func (p *PlannerService) GenerateItinerary(ctx context.Context, prefs request_models.TripPreferences) (*response_models.TravelItinerary, error) {
	if err := prefs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}

	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	result, err := p.client.GeneratePlan(ctx, buildItineraryPrompt(prefs))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrGenerationFailed, err)
	}

	log.Printf("Plan generation for %q took %s", prefs.Destination, time.Since(startTime))

	raw := utils.ExtractJSONObject(result.Text)
	if raw == "" {
		return nil, fmt.Errorf("%w: response contains no JSON object", utils.ErrGenerationFailed)
	}

	var itinerary response_models.TravelItinerary
	if err := json.Unmarshal([]byte(raw), &itinerary); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrGenerationFailed, err)
	}

	if err := itinerary.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrSchemaViolation, err)
	}

	for _, src := range result.Sources {
		itinerary.GroundingSources = append(itinerary.GroundingSources, response_models.GroundingSource{
			Title: src.Title,
			URI:   src.URI,
		})
	}

	return &itinerary, nil
}

// RefineDay regenerates exactly one day in response to a change of
// circumstance ("it's raining", "missed my flight"). The rest of the
// itinerary is read-only context; only the reworked day is returned, and its
// day number must survive the round trip.
func (p *PlannerService) RefineDay(ctx context.Context, itinerary response_models.TravelItinerary, dayNumber int, instruction string) (*response_models.ItineraryDay, error) {
	if strings.TrimSpace(instruction) == "" {
		return nil, fmt.Errorf("%w: instruction is required", utils.ErrInvalidInput)
	}

	var current *response_models.ItineraryDay
	for i := range itinerary.Itinerary {
		if itinerary.Itinerary[i].Day == dayNumber {
			current = &itinerary.Itinerary[i]
			break
		}
	}
	if current == nil {
		return nil, fmt.Errorf("%w: itinerary has no day %d", utils.ErrInvalidInput, dayNumber)
	}

	prompt, err := buildRefinePrompt(itinerary, current, instruction)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrGenerationFailed, err)
	}

	ctx, cancel := context.WithTimeout(ctx, refineTimeout)
	defer cancel()

	result, err := p.client.GeneratePlan(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrGenerationFailed, err)
	}

	raw := utils.ExtractJSONObject(result.Text)
	if raw == "" {
		return nil, fmt.Errorf("%w: response contains no JSON object", utils.ErrGenerationFailed)
	}

	var day response_models.ItineraryDay
	if err := json.Unmarshal([]byte(raw), &day); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrGenerationFailed, err)
	}

	if err := day.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrSchemaViolation, err)
	}
	if day.Day != dayNumber {
		return nil, fmt.Errorf("%w: refined day number %d does not match requested day %d", utils.ErrSchemaViolation, day.Day, dayNumber)
	}

	return &day, nil
}

func buildItineraryPrompt(prefs request_models.TripPreferences) string {
	return fmt.Sprintf(`Act as a world-class travel planning expert. Create a highly detailed travel itinerary for a trip starting from %s and going to %s.

User Preferences:
- Origin: %s
- Destination: %s
- Duration: %s
- Budget Level: %s
- Group Size: %s
- Interests: %s
- Travel Style: %s
- Additional Details: %s

CRITICAL INSTRUCTIONS:
1. ALL currency mentions must be in Nepali Rupees (NPR). Use "Rs." prefix.
2. Include essential logistical info: Required permits (especially for restricted areas like Upper Mustang), entry requirements, and the best seasons.
3. Provide a logical daily flow (Day 1, Day 2, etc.) with specific activities.
4. Provide exactly 3 structured accommodation recommendations that fit the specified budget level (%s).
5. Be specific about transport options (flights, private jeeps, trekking routes) from %s to %s and within the destination.
6. For each day, provide an "estimatedCostNPR" (e.g., "Rs. 5,000"). This should be relevant to the "%s" budget level:
   - Budget: Rs. 2,500 - Rs. 4,500 per person/day
   - Moderate: Rs. 6,000 - Rs. 12,000 per person/day
   - Luxury: Rs. 20,000+ per person/day
7. Provide a "totalEstimatedCostNPR" (e.g., "Rs. 45,000"). This MUST be the calculated sum of all daily costs, total accommodation costs for the duration, and all permits/logistics. DO NOT leave this empty.
8. PRACTICALITY CHECK: Evaluate if the requested duration (%s) is realistic for the journey from %s to %s.
   - If the duration is too short (e.g., trying to do Everest Base Camp in 3 days), you MUST provide a "practicalityNote" explaining why and suggesting the ideal duration.
   - You may increase the number of days in the "itinerary" array if it's physically impossible to complete the trip in the requested time.

You MUST respond ONLY with a valid JSON object following this structure:
{
  "overview": "string",
  "highlights": ["string"],
  "totalEstimatedCostNPR": "string",
  "practicalityNote": "string (optional, only if duration is impractical)",
  "permitsAndLogistics": ["string"],
  "itinerary": [
    {
      "day": number,
      "title": "string",
      "estimatedCostNPR": "string",
      "activities": [
        {
          "time": "string",
          "description": "string",
          "location": "string",
          "type": "sightseeing" | "dining" | "activity" | "travel"
        }
      ]
    }
  ],
  "accommodations": [
    {
      "name": "string",
      "priceNPR": "string",
      "category": "string",
      "description": "string"
    }
  ]
}

Use Google Search grounding for real-time accuracy on current permit costs in Nepal and hotel prices.`,
		prefs.Origin, prefs.Destination,
		prefs.Origin, prefs.Destination, prefs.Duration, prefs.Budget, prefs.GroupSize,
		strings.Join(prefs.Interests, ", "), prefs.TravelStyle, prefs.OtherDetails,
		prefs.Budget,
		prefs.Origin, prefs.Destination,
		prefs.Budget,
		prefs.Duration, prefs.Origin, prefs.Destination,
	)
}

func buildRefinePrompt(itinerary response_models.TravelItinerary, current *response_models.ItineraryDay, instruction string) (string, error) {
	dayJSON, err := json.Marshal(current)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Act as a travel planning expert. One day of an existing itinerary needs to be reworked because circumstances changed.

Trip overview: %s

Current plan for day %d:
%s

What changed: %s

Rework ONLY this day so it still fits the overall trip. Keep all currency in Nepali Rupees with the "Rs." prefix and keep the same "day" number (%d).

You MUST respond ONLY with a valid JSON object for the single day, following this structure:
{
  "day": %d,
  "title": "string",
  "estimatedCostNPR": "string",
  "activities": [
    {
      "time": "string",
      "description": "string",
      "location": "string",
      "type": "sightseeing" | "dining" | "activity" | "travel"
    }
  ]
}`,
		itinerary.Overview, current.Day, string(dayJSON), instruction, current.Day, current.Day), nil
}

package response_models

import (
	"fmt"
	"strings"
)

// Wire format mirrors what the planner prompt demands from the model, so
// these structs double as the parse target for raw AI output.

type Activity struct {
	Time        string `json:"time"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Type        string `json:"type"`
}

type ItineraryDay struct {
	Day              int        `json:"day"`
	Title            string     `json:"title"`
	EstimatedCostNPR string     `json:"estimatedCostNPR"`
	Activities       []Activity `json:"activities"`
}

type Accommodation struct {
	Name        string `json:"name"`
	PriceNPR    string `json:"priceNPR"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type TravelItinerary struct {
	Overview              string            `json:"overview"`
	Highlights            []string          `json:"highlights"`
	TotalEstimatedCostNPR string            `json:"totalEstimatedCostNPR"`
	PracticalityNote      string            `json:"practicalityNote,omitempty"`
	PermitsAndLogistics   []string          `json:"permitsAndLogistics"`
	Itinerary             []ItineraryDay    `json:"itinerary"`
	Accommodations        []Accommodation   `json:"accommodations"`
	GroundingSources      []GroundingSource `json:"groundingSources,omitempty"`
}

var activityTypes = map[string]bool{
	"sightseeing": true,
	"dining":      true,
	"activity":    true,
	"travel":      true,
}

// Validate is the schema gate between raw model output and the rest of the
// system. Day numbers must be 1..n with no gaps, accommodations must number
// exactly three, and every activity needs a description and a known type.
func (t *TravelItinerary) Validate() error {
	if strings.TrimSpace(t.Overview) == "" {
		return fmt.Errorf("overview is empty")
	}
	if strings.TrimSpace(t.TotalEstimatedCostNPR) == "" {
		return fmt.Errorf("totalEstimatedCostNPR is empty")
	}
	if len(t.Itinerary) == 0 {
		return fmt.Errorf("itinerary contains no days")
	}
	for i, day := range t.Itinerary {
		if day.Day != i+1 {
			return fmt.Errorf("day at position %d has number %d, want %d", i, day.Day, i+1)
		}
		if err := day.Validate(); err != nil {
			return fmt.Errorf("day %d: %w", day.Day, err)
		}
	}
	if len(t.Accommodations) != 3 {
		return fmt.Errorf("expected exactly 3 accommodations, got %d", len(t.Accommodations))
	}
	for i, acc := range t.Accommodations {
		if strings.TrimSpace(acc.Name) == "" {
			return fmt.Errorf("accommodation %d has no name", i+1)
		}
	}
	return nil
}

func (d *ItineraryDay) Validate() error {
	if d.Day < 1 {
		return fmt.Errorf("day number %d is not positive", d.Day)
	}
	if len(d.Activities) == 0 {
		return fmt.Errorf("no activities")
	}
	for i, a := range d.Activities {
		if strings.TrimSpace(a.Description) == "" {
			return fmt.Errorf("activity %d has no description", i+1)
		}
		if !activityTypes[a.Type] {
			return fmt.Errorf("activity %d has unknown type %q", i+1, a.Type)
		}
	}
	return nil
}

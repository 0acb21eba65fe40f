package request_models

import (
	"fmt"
	"strings"
)

var budgetTiers = map[string]bool{
	"budget":   true,
	"moderate": true,
	"luxury":   true,
}

type TripPreferences struct {
	Origin           string   `json:"origin"`
	Destination      string   `json:"destination"`
	Duration         string   `json:"duration"`
	Budget           string   `json:"budget"`
	GroupSize        string   `json:"groupSize"`
	Interests        []string `json:"interests"`
	TravelStyle      string   `json:"travelStyle"`
	OtherDetails     string   `json:"otherDetails"`
	EmergencyContact string   `json:"emergencyContact"`
}

// Validate enforces the submission-time invariants: destination and emergency
// contact present, budget one of the three tiers.
func (p *TripPreferences) Validate() error {
	if strings.TrimSpace(p.Destination) == "" {
		return fmt.Errorf("destination is required")
	}
	if strings.TrimSpace(p.EmergencyContact) == "" {
		return fmt.Errorf("emergency contact is required")
	}
	if !budgetTiers[p.Budget] {
		return fmt.Errorf("budget must be one of budget, moderate, luxury")
	}
	return nil
}

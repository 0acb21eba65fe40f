package request_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validPreferences() TripPreferences {
	return TripPreferences{
		Origin:           "Kathmandu",
		Destination:      "Pokhara",
		Duration:         "4 days",
		Budget:           "moderate",
		GroupSize:        "2 people",
		Interests:        []string{"trekking", "food"},
		TravelStyle:      "relaxed",
		OtherDetails:     "prefer window seats",
		EmergencyContact: "+977-9800000000",
	}
}

func TestPreferencesValidate(t *testing.T) {
	prefs := validPreferences()
	assert.NoError(t, prefs.Validate())

	missingDestination := validPreferences()
	missingDestination.Destination = "  "
	assert.Error(t, missingDestination.Validate())

	missingContact := validPreferences()
	missingContact.EmergencyContact = ""
	assert.Error(t, missingContact.Validate())

	badBudget := validPreferences()
	badBudget.Budget = "extravagant"
	assert.Error(t, badBudget.Validate())
}

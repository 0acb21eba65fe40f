package response_models

import (
	"tripchip/internal/models/request_models"
)

// SavedTrip is a persisted snapshot of one generated plan. The id is a random
// UUID for local-file trips and the store-assigned row id for remote ones;
// CreatedAt is ISO-8601.
type SavedTrip struct {
	ID          string                         `json:"id"`
	CreatedAt   string                         `json:"createdAt"`
	Preferences request_models.TripPreferences `json:"preferences"`
	Itinerary   TravelItinerary                `json:"itinerary"`
}

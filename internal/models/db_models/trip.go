package db_models

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Trip stores one saved plan. The preference and itinerary snapshots are
// immutable jsonb documents; a few fields are promoted to real columns so the
// list view can render without unmarshalling the blobs.
type Trip struct {
	BaseModel
	AccountID   uuid.UUID `gorm:"type:uuid;index"`
	Destination string
	Duration    string
	Budget      string
	Interests   pq.StringArray  `gorm:"type:text[]"`
	Preferences json.RawMessage `gorm:"type:jsonb"`
	Itinerary   json.RawMessage `gorm:"type:jsonb"`
}

package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"tripchip/internal/models/db_models"
	"tripchip/internal/models/request_models"
	"tripchip/internal/models/response_models"
	"tripchip/pkg/utils"
)

// TripStore persists saved trips. Two implementations exist: a Postgres-backed
// one for authenticated users and a file-backed one for guest sessions. The
// ownerID is the authenticated account id; the local store ignores it.
type TripStore interface {
	Save(ctx context.Context, ownerID string, prefs request_models.TripPreferences, itinerary response_models.TravelItinerary) (*response_models.SavedTrip, error)
	List(ctx context.Context, ownerID string) ([]response_models.SavedTrip, error)
	Delete(ctx context.Context, ownerID string, id string) error
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripStore {
	return &tripRepository{db: db}
}

func (r *tripRepository) Save(ctx context.Context, ownerID string, prefs request_models.TripPreferences, itinerary response_models.TravelItinerary) (*response_models.SavedTrip, error) {
	accountID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id: %w", err)
	}

	prefsJSON, err := json.Marshal(prefs)
	if err != nil {
		return nil, err
	}
	itineraryJSON, err := json.Marshal(itinerary)
	if err != nil {
		return nil, err
	}

	trip := db_models.Trip{
		AccountID:   accountID,
		Destination: prefs.Destination,
		Duration:    prefs.Duration,
		Budget:      prefs.Budget,
		Interests:   pq.StringArray(prefs.Interests),
		Preferences: prefsJSON,
		Itinerary:   itineraryJSON,
	}
	if err := r.db.WithContext(ctx).Create(&trip).Error; err != nil {
		return nil, err
	}

	return toSavedTrip(&trip)
}

func (r *tripRepository) List(ctx context.Context, ownerID string) ([]response_models.SavedTrip, error) {
	var trips []db_models.Trip
	err := r.db.WithContext(ctx).
		Where("account_id = ?", ownerID).
		Order("created_at DESC").
		Find(&trips).Error
	if err != nil {
		return nil, err
	}

	saved := make([]response_models.SavedTrip, 0, len(trips))
	for i := range trips {
		st, err := toSavedTrip(&trips[i])
		if err != nil {
			return nil, err
		}
		saved = append(saved, *st)
	}
	return saved, nil
}

// Delete distinguishes an unknown id from someone else's trip: the former is
// not found, the latter an authorization failure.
func (r *tripRepository) Delete(ctx context.Context, ownerID string, id string) error {
	tripID, err := uuid.Parse(id)
	if err != nil {
		return utils.ErrTripNotFound
	}

	var trip db_models.Trip
	if err := r.db.WithContext(ctx).Where("id = ?", tripID).First(&trip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrTripNotFound
		}
		return err
	}

	if trip.AccountID.String() != ownerID {
		return utils.ErrNotTripOwner
	}

	return r.db.WithContext(ctx).Delete(&trip).Error
}

func toSavedTrip(trip *db_models.Trip) (*response_models.SavedTrip, error) {
	var prefs request_models.TripPreferences
	if err := json.Unmarshal(trip.Preferences, &prefs); err != nil {
		return nil, fmt.Errorf("corrupt preferences snapshot for trip %s: %w", trip.ID, err)
	}
	var itinerary response_models.TravelItinerary
	if err := json.Unmarshal(trip.Itinerary, &itinerary); err != nil {
		return nil, fmt.Errorf("corrupt itinerary snapshot for trip %s: %w", trip.ID, err)
	}

	return &response_models.SavedTrip{
		ID:          trip.ID.String(),
		CreatedAt:   time.Unix(trip.CreatedAt, 0).UTC().Format(time.RFC3339),
		Preferences: prefs,
		Itinerary:   itinerary,
	}, nil
}

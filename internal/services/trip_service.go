package services

import (
	"context"
	"errors"
	"fmt"

	"tripchip/internal/models/request_models"
	"tripchip/internal/models/response_models"
	"tripchip/internal/repositories"
	"tripchip/pkg/utils"
)

type TripServiceInterface interface {
	SaveTrip(ctx context.Context, ownerID string, prefs request_models.TripPreferences, itinerary response_models.TravelItinerary) (*response_models.SavedTrip, error)
	ListTrips(ctx context.Context, ownerID string) ([]response_models.SavedTrip, error)
	DeleteTrip(ctx context.Context, ownerID string, id string) error
}

// TripService routes each call to one of two interchangeable backends:
// authenticated identities hit the remote store, anonymous sessions the local
// one. The two libraries are never merged; logging in simply changes which
// store answers.
type TripService struct {
	remote repositories.TripStore
	local  repositories.TripStore
}

func NewTripService(remote repositories.TripStore, local repositories.TripStore) TripServiceInterface {
	return &TripService{
		remote: remote,
		local:  local,
	}
}

func (t *TripService) storeFor(ownerID string) repositories.TripStore {
	if ownerID == "" {
		return t.local
	}
	return t.remote
}

func (t *TripService) SaveTrip(ctx context.Context, ownerID string, prefs request_models.TripPreferences, itinerary response_models.TravelItinerary) (*response_models.SavedTrip, error) {
	if err := prefs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}
	if err := itinerary.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}

	saved, err := t.storeFor(ownerID).Save(ctx, ownerID, prefs, itinerary)
	if err != nil {
		return nil, storeError(err)
	}
	return saved, nil
}

func (t *TripService) ListTrips(ctx context.Context, ownerID string) ([]response_models.SavedTrip, error) {
	trips, err := t.storeFor(ownerID).List(ctx, ownerID)
	if err != nil {
		return nil, storeError(err)
	}
	return trips, nil
}

func (t *TripService) DeleteTrip(ctx context.Context, ownerID string, id string) error {
	if id == "" {
		return fmt.Errorf("%w: trip id is required", utils.ErrInvalidInput)
	}
	if err := t.storeFor(ownerID).Delete(ctx, ownerID, id); err != nil {
		return storeError(err)
	}
	return nil
}

// storeError keeps the store's own sentinels and folds everything else into a
// database error.
func storeError(err error) error {
	if errors.Is(err, utils.ErrTripNotFound) || errors.Is(err, utils.ErrNotTripOwner) {
		return err
	}
	return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
}

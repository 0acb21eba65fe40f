package repositories

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"tripchip/internal/models/request_models"
	"tripchip/internal/models/response_models"
	"tripchip/pkg/utils"
)

// LocalStorageKey names the single document holding every guest-mode trip,
// newest first.
const LocalStorageKey = "tripchip_saved_plans"

// localTripStore keeps guest trips in one JSON array on disk. Writes are
// synchronous and the store is effectively single-writer; the mutex only
// guards against overlapping HTTP requests.
type localTripStore struct {
	mu   sync.Mutex
	path string
}

func NewLocalTripStore(dir string) (TripStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &localTripStore{path: filepath.Join(dir, LocalStorageKey+".json")}, nil
}

func (s *localTripStore) Save(ctx context.Context, _ string, prefs request_models.TripPreferences, itinerary response_models.TravelItinerary) (*response_models.SavedTrip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trips := s.load()
	saved := response_models.SavedTrip{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Preferences: prefs,
		Itinerary:   itinerary,
	}
	trips = append([]response_models.SavedTrip{saved}, trips...)

	if err := s.persist(trips); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *localTripStore) List(ctx context.Context, _ string) ([]response_models.SavedTrip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

func (s *localTripStore) Delete(ctx context.Context, _ string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trips := s.load()
	kept := trips[:0]
	for _, t := range trips {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(trips) {
		return utils.ErrTripNotFound
	}
	return s.persist(kept)
}

// load never fails: a missing file is an empty library and a corrupt one is
// logged and treated the same, so startup survives bad state on disk.
func (s *localTripStore) load() []response_models.SavedTrip {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read saved trips from %s: %v", s.path, err)
		}
		return []response_models.SavedTrip{}
	}

	var trips []response_models.SavedTrip
	if err := json.Unmarshal(data, &trips); err != nil {
		log.Printf("Failed to load saved trips: %v", err)
		return []response_models.SavedTrip{}
	}
	return trips
}

func (s *localTripStore) persist(trips []response_models.SavedTrip) error {
	data, err := json.Marshal(trips)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

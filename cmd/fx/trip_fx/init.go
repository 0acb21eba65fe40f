package trip_fx

import (
	"fmt"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripchip/internal/api/controllers"
	"tripchip/internal/repositories"
	"tripchip/internal/services"
)

var Module = fx.Provide(
	provideTripService, provideTripsController)

// provideTripService wires both trip backends: the Postgres store for
// authenticated users and the file store for guest sessions.
func provideTripService(db *gorm.DB) (services.TripServiceInterface, error) {
	remote := repositories.NewTripRepository(db)

	dataDir := os.Getenv("TRIPCHIP_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	local, err := repositories.NewLocalTripStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open local trip store: %w", err)
	}

	return services.NewTripService(remote, local), nil
}

func provideTripsController(tripService services.TripServiceInterface) *controllers.TripsController {
	return controllers.NewTripsController(tripService)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripchip/internal/models/request_models"
	"tripchip/internal/models/response_models"
	"tripchip/internal/services"
	"tripchip/pkg/utils"
)

type SaveTripRequest struct {
	Preferences request_models.TripPreferences  `json:"preferences" binding:"required"`
	Itinerary   response_models.TravelItinerary `json:"itinerary" binding:"required"`
}

type TripsController struct {
	tripService services.TripServiceInterface
}

func NewTripsController(tripService services.TripServiceInterface) *TripsController {
	return &TripsController{
		tripService: tripService,
	}
}

// SaveTrip godoc
// @Summary Save a trip
// @Description Persist a generated itinerary together with its preferences. Authenticated callers write to their own library, guests to device-local storage.
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body SaveTripRequest true "Preferences and itinerary"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/trips [post]
func (t *TripsController) SaveTrip(c *gin.Context) {
	var req SaveTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Preferences and itinerary are required")
		return
	}

	trip, err := t.tripService.SaveTrip(c.Request.Context(), c.GetString("user_id"), req.Preferences, req.Itinerary)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip saved to your library")
}

// ListTrips godoc
// @Summary List saved trips
// @Description Fetch the caller's saved trips, most recent first
// @Tags Trips
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/trips [get]
func (t *TripsController) ListTrips(c *gin.Context) {
	trips, err := t.tripService.ListTrips(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trips, "Trips fetched successfully")
}

// DeleteTrip godoc
// @Summary Delete a saved trip
// @Description Remove a trip by id. Fails with 404 for an unknown id and 401 when the trip belongs to someone else.
// @Tags Trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/trips/{id} [delete]
func (t *TripsController) DeleteTrip(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	if err := t.tripService.DeleteTrip(c.Request.Context(), c.GetString("user_id"), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"message": "Trip removed"}, "Trip removed from library")
}

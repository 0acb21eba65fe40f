package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripchip/internal/models/request_models"
	"tripchip/internal/models/response_models"
	"tripchip/internal/services"
	"tripchip/pkg/utils"
)

type RefineDayRequest struct {
	Itinerary   response_models.TravelItinerary `json:"itinerary" binding:"required"`
	Day         int                             `json:"day" binding:"required"`
	Instruction string                          `json:"instruction" binding:"required"`
}

type PlannerController struct {
	plannerService services.PlannerServiceInterface
}

func NewPlannerController(plannerService services.PlannerServiceInterface) *PlannerController {
	return &PlannerController{
		plannerService: plannerService,
	}
}

// GeneratePlan godoc
// @Summary Generate a travel itinerary
// @Description Build a day-by-day itinerary from trip preferences using a grounded AI completion
// @Tags Planner
// @Accept json
// @Produce json
// @Param request body request_models.TripPreferences true "Trip preferences"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /api/plan [post]
func (p *PlannerController) GeneratePlan(c *gin.Context) {
	var prefs request_models.TripPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	itinerary, err := p.plannerService.GenerateItinerary(c.Request.Context(), prefs)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary generated successfully")
}

// RefineDay godoc
// @Summary Refine one itinerary day
// @Description Regenerate a single day of an itinerary from a change-of-circumstance description
// @Tags Planner
// @Accept json
// @Produce json
// @Param request body RefineDayRequest true "Itinerary, day number and instruction"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /api/plan/refine [post]
func (p *PlannerController) RefineDay(c *gin.Context) {
	var req RefineDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Itinerary, day and instruction are required")
		return
	}

	day, err := p.plannerService.RefineDay(c.Request.Context(), req.Itinerary, req.Day, req.Instruction)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, day, "Day refined successfully")
}

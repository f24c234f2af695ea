package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"signals-hub.backend/internal/domain/entities"
	domainerrors "signals-hub.backend/internal/domain/errors"
	"signals-hub.backend/internal/interfaces/http/middleware"
	"signals-hub.backend/internal/interfaces/http/response"
	"signals-hub.backend/internal/usecases"
	"signals-hub.backend/pkg/utils"
)

// PlacementHandler handles consumer placement and rating endpoints
type PlacementHandler struct {
	ratingUsecase *usecases.RatingUsecase
}

// NewPlacementHandler creates a new placement handler
func NewPlacementHandler(ratingUsecase *usecases.RatingUsecase) *PlacementHandler {
	return &PlacementHandler{ratingUsecase: ratingUsecase}
}

// Place records that the consumer acted on a signal
// POST /api/v1/placements
func (h *PlacementHandler) Place(c *gin.Context) {
	var input struct {
		SignalID string `json:"signalId" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	signalID, err := uuid.Parse(input.SignalID)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid signal id"))
		return
	}

	placement, err := h.ratingUsecase.PlaceSignal(c.Request.Context(), middleware.GetPrincipal(c), signalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"placement": placement})
}

// Rate sets the rating on one of the consumer's placements
// PUT /api/v1/placements/:id/rating
func (h *PlacementHandler) Rate(c *gin.Context) {
	placementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid placement id"))
		return
	}

	var input entities.RateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.ratingUsecase.RatePlacement(c.Request.Context(), middleware.GetPrincipal(c), placementID, input.Rating); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Rating saved"})
}

// List lists the consumer's placements
// GET /api/v1/placements
func (h *PlacementHandler) List(c *gin.Context) {
	pagination := paginationFromQuery(c)

	placements, total, err := h.ratingUsecase.ListPlacements(c.Request.Context(), middleware.GetPrincipal(c), pagination)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"placements": placements,
		"meta":       utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

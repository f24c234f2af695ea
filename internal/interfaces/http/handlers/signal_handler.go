package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"signals-hub.backend/internal/domain/entities"
	domainerrors "signals-hub.backend/internal/domain/errors"
	"signals-hub.backend/internal/interfaces/http/middleware"
	"signals-hub.backend/internal/interfaces/http/response"
	"signals-hub.backend/internal/usecases"
	"signals-hub.backend/pkg/utils"
)

// SignalHandler handles provider signal endpoints and signal browsing
type SignalHandler struct {
	signalUsecase *usecases.SignalUsecase
}

// NewSignalHandler creates a new signal handler
func NewSignalHandler(signalUsecase *usecases.SignalUsecase) *SignalHandler {
	return &SignalHandler{signalUsecase: signalUsecase}
}

// PublishSpot publishes a spot signal
// POST /api/v1/signals/spot
func (h *SignalHandler) PublishSpot(c *gin.Context) {
	var input entities.CreateSpotSignalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	signal, err := h.signalUsecase.PublishSpot(c.Request.Context(), middleware.GetPrincipal(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"signal": signal})
}

// PublishFutures publishes a futures signal
// POST /api/v1/signals/futures
func (h *SignalHandler) PublishFutures(c *gin.Context) {
	var input entities.CreateFuturesSignalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	signal, err := h.signalUsecase.PublishFutures(c.Request.Context(), middleware.GetPrincipal(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"signal": signal})
}

// ListMine lists the provider's own signals
// GET /api/v1/signals/mine
func (h *SignalHandler) ListMine(c *gin.Context) {
	pagination := paginationFromQuery(c)

	signals, total, err := h.signalUsecase.ListMine(c.Request.Context(), middleware.GetPrincipal(c), pagination)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"signals": signals,
		"meta":    utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

// ListActive lists active signals of one market kind
// GET /api/v1/signals?market=spot|futures
func (h *SignalHandler) ListActive(c *gin.Context) {
	market := c.DefaultQuery("market", "spot")
	if market != "spot" && market != "futures" {
		response.Error(c, domainerrors.BadRequest("market must be spot or futures"))
		return
	}
	pagination := paginationFromQuery(c)

	signals, total, err := h.signalUsecase.ListActive(c.Request.Context(), middleware.GetPrincipal(c), market == "spot", pagination)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"signals": signals,
		"meta":    utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

// Deactivate retires one of the provider's signals
// DELETE /api/v1/signals/:id
func (h *SignalHandler) Deactivate(c *gin.Context) {
	signalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid signal id"))
		return
	}

	if err := h.signalUsecase.Deactivate(c.Request.Context(), middleware.GetPrincipal(c), signalID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Signal deactivated"})
}

// UpdateWallet sets the provider's payout wallet
// PUT /api/v1/providers/wallet
func (h *SignalHandler) UpdateWallet(c *gin.Context) {
	var input entities.UpdateWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.signalUsecase.UpdateWallet(c.Request.Context(), middleware.GetPrincipal(c), input.Wallet)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// GetProviderProfile returns a provider with its reputation score
// GET /api/v1/providers/:id
func (h *SignalHandler) GetProviderProfile(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid provider id"))
		return
	}

	profile, err := h.signalUsecase.GetProviderProfile(c.Request.Context(), middleware.GetPrincipal(c), providerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

func paginationFromQuery(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return utils.GetPaginationParams(page, limit)
}

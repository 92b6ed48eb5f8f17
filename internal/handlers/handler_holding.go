package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/openvault/digibank/internal/core/ports/services"
	"github.com/openvault/digibank/internal/dto"
	"github.com/openvault/digibank/internal/middleware"
)

// holdingHandler handles HTTP requests related to holdings.
type holdingHandler struct {
	holdingService portssvc.HoldingSvcFacade
}

// newHoldingHandler creates a new holdingHandler.
func newHoldingHandler(hs portssvc.HoldingSvcFacade) *holdingHandler {
	return &holdingHandler{holdingService: hs}
}

// registerHoldingRoutes registers routes related to holdings.
func registerHoldingRoutes(rg *gin.RouterGroup, holdingService portssvc.HoldingSvcFacade) {
	h := newHoldingHandler(holdingService)

	holdings := rg.Group("/holdings")
	{
		holdings.POST("", h.openHolding)
		holdings.GET("", h.listHoldings)
		holdings.GET("/:id", h.getHolding)
		holdings.DELETE("/:id", h.closeHolding)
	}
}

// openHolding godoc
// @Summary Open a new holding
// @Description Creates a new zero-balance holding for the logged-in user
// @Tags holdings
// @Accept  json
// @Produce  json
// @Param   holding body dto.OpenHoldingRequest true "Holding details"
// @Success 201 {object} dto.HoldingResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to open holding"
// @Security BearerAuth
// @Router /holdings [post]
func (h *holdingHandler) openHolding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OpenHolding", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	holding, err := h.holdingService.OpenHolding(c.Request.Context(), ownerID, req, requestMeta(c))
	if err != nil {
		respondError(c, err, "Failed to open holding")
		return
	}

	logger.Info("Holding opened", slog.String("holding_id", holding.HoldingID))
	c.JSON(http.StatusCreated, dto.ToHoldingResponse(holding))
}

// listHoldings godoc
// @Summary List the caller's holdings
// @Description Retrieves all holdings owned by the logged-in user, newest first
// @Tags holdings
// @Produce  json
// @Success 200 {array} dto.HoldingResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /holdings [get]
func (h *holdingHandler) listHoldings(c *gin.Context) {
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	holdings, err := h.holdingService.ListHoldingsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err, "Failed to list holdings")
		return
	}
	c.JSON(http.StatusOK, dto.ToHoldingResponses(holdings))
}

// getHolding godoc
// @Summary Get a holding by ID
// @Description Retrieves one of the caller's holdings
// @Tags holdings
// @Produce  json
// @Param   id path string true "Holding ID"
// @Success 200 {object} dto.HoldingResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Holding not owned by caller"
// @Failure 404 {object} ErrorResponse "Holding not found"
// @Security BearerAuth
// @Router /holdings/{id} [get]
func (h *holdingHandler) getHolding(c *gin.Context) {
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	holding, err := h.holdingService.GetHoldingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve holding")
		return
	}
	if holding.OwnerID != ownerID {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Holding does not belong to the caller"})
		return
	}
	c.JSON(http.StatusOK, dto.ToHoldingResponse(holding))
}

// closeHolding godoc
// @Summary Close a holding
// @Description Refunds the remaining balance to the caller's primary holding and deletes the holding
// @Tags holdings
// @Produce  json
// @Param   id path string true "Holding ID"
// @Success 204 "Holding closed"
// @Failure 400 {object} ErrorResponse "Primary holding cannot be closed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Holding not owned by caller"
// @Failure 404 {object} ErrorResponse "Holding not found"
// @Security BearerAuth
// @Router /holdings/{id} [delete]
func (h *holdingHandler) closeHolding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	holdingID := c.Param("id")
	if err := h.holdingService.CloseHolding(c.Request.Context(), ownerID, holdingID, requestMeta(c)); err != nil {
		respondError(c, err, "Failed to close holding")
		return
	}

	logger.Info("Holding closed", slog.String("holding_id", holdingID))
	c.Status(http.StatusNoContent)
}

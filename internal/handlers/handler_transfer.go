package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/openvault/digibank/internal/core/ports/services"
	"github.com/openvault/digibank/internal/dto"
	"github.com/openvault/digibank/internal/middleware"
)

// transferHandler handles HTTP requests related to transfers.
type transferHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newTransferHandler creates a new transferHandler.
func newTransferHandler(ls portssvc.LedgerSvcFacade) *transferHandler {
	return &transferHandler{ledgerService: ls}
}

// registerTransferRoutes registers routes related to transfers.
func registerTransferRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newTransferHandler(ledgerService)

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.createTransfer)
		transfers.GET("/:id", h.getTransfer)
	}
	rg.GET("/holdings/:id/transfers", h.listTransfersByHolding)
}

// createTransfer godoc
// @Summary Transfer between holdings
// @Description Moves an amount from one of the caller's holdings to a destination holding atomically
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateTransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Source holding not owned by caller"
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Failure 500 {object} ErrorResponse "Failed to execute transfer"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	result, err := h.ledgerService.Transfer(c.Request.Context(), actorID, req, requestMeta(c))
	if err != nil {
		respondError(c, err, "Failed to execute transfer")
		return
	}

	resp := dto.ToTransferResponse(&result.Transfer)
	resp.SourceBalance = &result.SourceBalance
	resp.DestBalance = &result.DestBalance
	c.JSON(http.StatusCreated, resp)
}

// getTransfer godoc
// @Summary Get a transfer by ID
// @Description Retrieves a transfer the caller created or whose legs the caller owns
// @Tags transfers
// @Produce  json
// @Param   id path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Transfer not found"
// @Security BearerAuth
// @Router /transfers/{id} [get]
func (h *transferHandler) getTransfer(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	transfer, err := h.ledgerService.GetTransferByID(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve transfer")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// listTransfersByHolding godoc
// @Summary List transfers for a holding
// @Description Retrieves transfers touching one of the caller's holdings, newest first
// @Tags transfers
// @Produce  json
// @Param   id path string true "Holding ID"
// @Param   limit query int false "Maximum entries to return" default(50)
// @Success 200 {array} dto.TransferResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Holding not owned by caller"
// @Failure 404 {object} ErrorResponse "Holding not found"
// @Security BearerAuth
// @Router /holdings/{id}/transfers [get]
func (h *transferHandler) listTransfersByHolding(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	transfers, err := h.ledgerService.ListTransfersByHolding(c.Request.Context(), actorID, c.Param("id"), limit)
	if err != nil {
		respondError(c, err, "Failed to list transfers")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferResponses(transfers))
}

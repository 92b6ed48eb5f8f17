package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/openvault/digibank/internal/core/ports/services"
	"github.com/openvault/digibank/internal/dto"
	"github.com/openvault/digibank/internal/middleware"
)

// investmentHandler handles HTTP requests related to investments.
type investmentHandler struct {
	investmentService portssvc.InvestmentSvcFacade
}

// newInvestmentHandler creates a new investmentHandler.
func newInvestmentHandler(is portssvc.InvestmentSvcFacade) *investmentHandler {
	return &investmentHandler{investmentService: is}
}

// registerInvestmentRoutes registers routes related to investments.
func registerInvestmentRoutes(rg *gin.RouterGroup, investmentService portssvc.InvestmentSvcFacade) {
	h := newInvestmentHandler(investmentService)

	investments := rg.Group("/investments")
	{
		investments.POST("", h.fundInvestment)
		investments.GET("", h.listInvestments)
	}
}

// fundInvestment godoc
// @Summary Fund a new investment
// @Description Debits one of the caller's holdings and opens an active position atomically
// @Tags investments
// @Accept  json
// @Produce  json
// @Param   investment body dto.FundInvestmentRequest true "Investment details"
// @Success 201 {object} dto.InvestmentResponse
// @Failure 400 {object} ErrorResponse "Invalid input format, validation error or unknown investment type"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Source holding not owned by caller"
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Security BearerAuth
// @Router /investments [post]
func (h *investmentHandler) fundInvestment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.FundInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for FundInvestment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	investment, err := h.investmentService.FundInvestment(c.Request.Context(), ownerID, req, requestMeta(c))
	if err != nil {
		respondError(c, err, "Failed to fund investment")
		return
	}

	logger.Info("Investment funded", slog.String("investment_id", investment.InvestmentID))
	c.JSON(http.StatusCreated, dto.ToInvestmentResponse(investment))
}

// listInvestments godoc
// @Summary List the caller's investments
// @Description Retrieves all investments owned by the logged-in user, newest first
// @Tags investments
// @Produce  json
// @Success 200 {array} dto.InvestmentResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /investments [get]
func (h *investmentHandler) listInvestments(c *gin.Context) {
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	investments, err := h.investmentService.ListInvestmentsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err, "Failed to list investments")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvestmentResponses(investments))
}

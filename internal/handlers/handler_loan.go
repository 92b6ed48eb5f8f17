package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openvault/digibank/internal/core/domain"
	portssvc "github.com/openvault/digibank/internal/core/ports/services"
	"github.com/openvault/digibank/internal/dto"
	"github.com/openvault/digibank/internal/middleware"
)

// loanHandler handles HTTP requests related to loans.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

// newLoanHandler creates a new loanHandler.
func newLoanHandler(ls portssvc.LoanSvcFacade) *loanHandler {
	return &loanHandler{loanService: ls}
}

// registerLoanRoutes registers routes related to loans. The decision route
// is restricted to admins.
func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade) {
	h := newLoanHandler(loanService)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.applyLoan)
		loans.GET("", h.listLoans)
		loans.GET("/:id", h.getLoan)
		loans.POST("/:id/decision", middleware.RequireRole(middleware.RoleAdmin), h.decideLoan)
	}
}

// applyLoan godoc
// @Summary Apply for a loan
// @Description Files a pending loan application for the logged-in user
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan body dto.ApplyLoanRequest true "Loan application"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to file loan application"
// @Security BearerAuth
// @Router /loans [post]
func (h *loanHandler) applyLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ApplyLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApplyLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	borrowerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Borrower user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loan, err := h.loanService.ApplyLoan(c.Request.Context(), borrowerID, req, requestMeta(c))
	if err != nil {
		respondError(c, err, "Failed to file loan application")
		return
	}

	logger.Info("Loan application filed", slog.String("loan_id", loan.LoanID))
	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

// decideLoan godoc
// @Summary Decide a pending loan
// @Description Approves or rejects a pending loan; approval disburses the principal to the target holding
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   id path string true "Loan ID"
// @Param   decision body dto.DecideLoanRequest true "Decision details"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 404 {object} ErrorResponse "Loan not found"
// @Failure 409 {object} ErrorResponse "Loan already decided"
// @Security BearerAuth
// @Router /loans/{id}/decision [post]
func (h *loanHandler) decideLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DecideLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DecideLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Admin user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loan, err := h.loanService.DecideLoan(c.Request.Context(), adminID, c.Param("id"), req, requestMeta(c))
	if err != nil {
		respondError(c, err, "Failed to decide loan")
		return
	}

	logger.Info("Loan decided", slog.String("loan_id", loan.LoanID), slog.String("status", string(loan.Status)))
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// getLoan godoc
// @Summary Get a loan by ID
// @Description Retrieves a loan visible to the caller
// @Tags loans
// @Produce  json
// @Param   id path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Loan not found"
// @Security BearerAuth
// @Router /loans/{id} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loan, err := h.loanService.GetLoanByID(c.Request.Context(), requesterID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve loan")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// listLoans godoc
// @Summary List the caller's loans
// @Description Retrieves the logged-in user's loans, newest first, optionally filtered by status
// @Tags loans
// @Produce  json
// @Param   status query string false "Loan status filter" Enums(PENDING, APPROVED, REJECTED)
// @Success 200 {array} dto.LoanResponse
// @Failure 400 {object} ErrorResponse "Unknown status filter"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	borrowerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var status *domain.LoanStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.LoanStatus(raw)
		switch s {
		case domain.LoanPending, domain.LoanApproved, domain.LoanRejected:
			status = &s
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown loan status filter"})
			return
		}
	}

	loans, err := h.loanService.ListLoansByBorrower(c.Request.Context(), borrowerID, status)
	if err != nil {
		respondError(c, err, "Failed to list loans")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponses(loans))
}

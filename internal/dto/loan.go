package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/openvault/digibank/internal/core/domain"
)

// ApplyLoanRequest defines the data needed to apply for a loan.
type ApplyLoanRequest struct {
	Principal    decimal.Decimal  `json:"principal" binding:"required"`
	DueDate      time.Time        `json:"dueDate" binding:"required"`
	InterestRate *decimal.Decimal `json:"interestRate"` // Optional, defaults to 5 percent
}

// DecideLoanRequest defines an admin decision on a pending loan.
type DecideLoanRequest struct {
	Action          domain.LoanAction `json:"action" binding:"required,oneof=APPROVE REJECT"`
	TargetHoldingID *string           `json:"targetHoldingID"` // Required for APPROVE
	Reason          string            `json:"reason"`
}

// LoanResponse defines the data returned for a loan.
type LoanResponse struct {
	LoanID          string            `json:"loanID"`
	BorrowerID      string            `json:"borrowerID"`
	Principal       decimal.Decimal   `json:"principal"`
	InterestRate    decimal.Decimal   `json:"interestRate"`
	RepaymentAmount decimal.Decimal   `json:"repaymentAmount"`
	DueDate         time.Time         `json:"dueDate"`
	Status          domain.LoanStatus `json:"status"`
	TargetHoldingID *string           `json:"targetHoldingID,omitempty"`
	DecidedBy       *string           `json:"decidedBy,omitempty"`
	DecidedAt       *time.Time        `json:"decidedAt,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// ToLoanResponse converts a domain.Loan to LoanResponse DTO
func ToLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:          l.LoanID,
		BorrowerID:      l.BorrowerID,
		Principal:       l.Principal,
		InterestRate:    l.InterestRate,
		RepaymentAmount: l.RepaymentAmount(),
		DueDate:         l.DueDate,
		Status:          l.Status,
		TargetHoldingID: l.TargetHoldingID,
		DecidedBy:       l.DecidedBy,
		DecidedAt:       l.DecidedAt,
		CreatedAt:       l.CreatedAt,
	}
}

// ToLoanResponses converts a slice of domain.Loan to DTOs
func ToLoanResponses(ls []domain.Loan) []LoanResponse {
	res := make([]LoanResponse, len(ls))
	for i := range ls {
		res[i] = ToLoanResponse(&ls[i])
	}
	return res
}

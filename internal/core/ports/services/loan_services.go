package services

import (
	"context"

	"github.com/openvault/digibank/internal/core/domain"
	"github.com/openvault/digibank/internal/dto"
)

// LoanSvcFacade governs the loan lifecycle: PENDING -> {APPROVED, REJECTED},
// with the one-time disbursement credit tied to approval.
type LoanSvcFacade interface {
	// ApplyLoan files a loan application for the borrower.
	ApplyLoan(ctx context.Context, borrowerID string, req dto.ApplyLoanRequest, meta dto.RequestMeta) (*domain.Loan, error)

	// DecideLoan applies an admin decision. Approval credits the principal
	// to the target holding atomically with the status flip; a decision on
	// a non-pending loan fails with apperrors.ErrAlreadyDecided.
	DecideLoan(ctx context.Context, adminID string, loanID string, req dto.DecideLoanRequest, meta dto.RequestMeta) (*domain.Loan, error)

	// GetLoanByID retrieves a loan visible to the requester.
	GetLoanByID(ctx context.Context, requesterID string, loanID string) (*domain.Loan, error)

	// ListLoansByBorrower retrieves the borrower's loans, newest first.
	ListLoansByBorrower(ctx context.Context, borrowerID string, status *domain.LoanStatus) ([]domain.Loan, error)
}

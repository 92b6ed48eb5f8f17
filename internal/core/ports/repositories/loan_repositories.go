package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/openvault/digibank/internal/core/domain"
)

// LoanReader defines read operations for loan data
type LoanReader interface {
	// FindLoanByID retrieves a specific loan by its unique identifier.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// ListLoansByBorrower retrieves loans for a borrower, newest first,
	// optionally filtered by status.
	ListLoansByBorrower(ctx context.Context, borrowerID string, status *domain.LoanStatus) ([]domain.Loan, error)
}

// LoanWriter defines write operations for loan data
type LoanWriter interface {
	// SaveLoan persists a new loan application.
	SaveLoan(ctx context.Context, loan domain.Loan) error

	// FindLoanByIDForUpdate retrieves a loan inside tx with its row locked,
	// serializing concurrent decisions on the same loan.
	FindLoanByIDForUpdate(ctx context.Context, tx pgx.Tx, loanID string) (*domain.Loan, error)

	// MarkLoanDecidedInTx flips a loan out of PENDING inside tx. The guard
	// on the previous status makes the transition one-shot: a second
	// decision finds no PENDING row and fails with apperrors.ErrAlreadyDecided.
	MarkLoanDecidedInTx(ctx context.Context, tx pgx.Tx, loan domain.Loan) error
}

// LoanRepositoryFacade combines all loan-related repository interfaces.
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}

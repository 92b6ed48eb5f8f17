package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openvault/digibank/internal/apperrors"
	"github.com/openvault/digibank/internal/core/domain"
	portsrepo "github.com/openvault/digibank/internal/core/ports/repositories"
	"github.com/openvault/digibank/internal/models"
	"github.com/openvault/digibank/internal/utils/mapping"
)

const loanColumns = `loan_id, borrower_id, principal, interest_rate, due_date, status, target_holding_id, decided_by, decided_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxLoanRepository struct {
	BaseRepository
}

// newPgxLoanRepository creates a new repository for loan data.
func newPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLoanRepository implements portsrepo.LoanRepositoryFacade
var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

func scanLoan(row pgx.Row) (*models.Loan, error) {
	var m models.Loan
	err := row.Scan(
		&m.LoanID,
		&m.BorrowerID,
		&m.Principal,
		&m.InterestRate,
		&m.DueDate,
		&m.Status,
		&m.TargetHoldingID,
		&m.DecidedBy,
		&m.DecidedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveLoan inserts a new loan application.
func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)

	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LoanID,
		m.BorrowerID,
		m.Principal,
		m.InterestRate,
		m.DueDate,
		m.Status,
		m.TargetHoldingID,
		m.DecidedBy,
		m.DecidedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewStorageFault("failed to save loan "+m.LoanID, err)
	}
	return nil
}

// FindLoanByID retrieves a loan by its ID.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`

	m, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageFault("failed to find loan by ID "+loanID, err)
	}

	d := mapping.ToDomainLoan(*m)
	return &d, nil
}

// FindLoanByIDForUpdate retrieves a loan inside tx with its row locked,
// serializing concurrent decisions on the same loan.
func (r *PgxLoanRepository) FindLoanByIDForUpdate(ctx context.Context, tx pgx.Tx, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1 FOR UPDATE;`

	m, err := scanLoan(tx.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageFault("failed to lock loan "+loanID, err)
	}

	d := mapping.ToDomainLoan(*m)
	return &d, nil
}

// MarkLoanDecidedInTx flips a loan out of PENDING inside tx. The status
// guard makes the transition one-shot even if two admins race: the loser's
// update matches no row and surfaces ErrAlreadyDecided.
func (r *PgxLoanRepository) MarkLoanDecidedInTx(ctx context.Context, tx pgx.Tx, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)

	query := `
		UPDATE loans
		SET status = $2,
		    target_holding_id = $3,
		    decided_by = $4,
		    decided_at = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE loan_id = $1 AND status = 'PENDING';
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.LoanID,
		m.Status,
		m.TargetHoldingID,
		m.DecidedBy,
		m.DecidedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewStorageFault("failed to mark loan decided "+m.LoanID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAlreadyDecided
	}
	return nil
}

// ListLoansByBorrower retrieves loans for a borrower, newest first,
// optionally filtered by status.
func (r *PgxLoanRepository) ListLoansByBorrower(ctx context.Context, borrowerID string, status *domain.LoanStatus) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE borrower_id = $1`
	args := []any{borrowerID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStorageFault("failed to query loans for borrower "+borrowerID, err)
	}
	defer rows.Close()

	loans := []models.Loan{}
	for rows.Next() {
		m, err := scanLoan(rows)
		if err != nil {
			return nil, apperrors.NewStorageFault("failed to scan loan row for borrower "+borrowerID, err)
		}
		loans = append(loans, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageFault("error iterating loan rows for borrower "+borrowerID, err)
	}

	return mapping.ToDomainLoanSlice(loans), nil
}

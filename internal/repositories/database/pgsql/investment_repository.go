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

const investmentColumns = `investment_id, owner_id, source_holding_id, amount, type, status, created_at`

type PgxInvestmentRepository struct {
	BaseRepository
}

// newPgxInvestmentRepository creates a new repository for investment data.
func newPgxInvestmentRepository(pool *pgxpool.Pool) portsrepo.InvestmentRepositoryFacade {
	return &PgxInvestmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxInvestmentRepository implements portsrepo.InvestmentRepositoryFacade
var _ portsrepo.InvestmentRepositoryFacade = (*PgxInvestmentRepository)(nil)

// SaveInvestmentInTx inserts an investment row inside the caller's
// transaction so it commits atomically with the funding debit.
func (r *PgxInvestmentRepository) SaveInvestmentInTx(ctx context.Context, tx pgx.Tx, investment domain.Investment) error {
	m := mapping.ToModelInvestment(investment)

	query := `
		INSERT INTO investments (` + investmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		m.InvestmentID,
		m.OwnerID,
		m.SourceHoldingID,
		m.Amount,
		m.Type,
		m.Status,
		m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewStorageFault("failed to insert investment "+m.InvestmentID, err)
	}
	return nil
}

func scanInvestment(row pgx.Row) (*models.Investment, error) {
	var m models.Investment
	err := row.Scan(
		&m.InvestmentID,
		&m.OwnerID,
		&m.SourceHoldingID,
		&m.Amount,
		&m.Type,
		&m.Status,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindInvestmentByID retrieves an investment by its ID.
func (r *PgxInvestmentRepository) FindInvestmentByID(ctx context.Context, investmentID string) (*domain.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE investment_id = $1;`

	m, err := scanInvestment(r.Pool.QueryRow(ctx, query, investmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageFault("failed to find investment by ID "+investmentID, err)
	}

	d := mapping.ToDomainInvestment(*m)
	return &d, nil
}

// ListInvestmentsByOwner retrieves investments for an owner, newest first.
func (r *PgxInvestmentRepository) ListInvestmentsByOwner(ctx context.Context, ownerID string) ([]domain.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE owner_id = $1 ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewStorageFault("failed to query investments for owner "+ownerID, err)
	}
	defer rows.Close()

	investments := []models.Investment{}
	for rows.Next() {
		m, err := scanInvestment(rows)
		if err != nil {
			return nil, apperrors.NewStorageFault("failed to scan investment row for owner "+ownerID, err)
		}
		investments = append(investments, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageFault("error iterating investment rows for owner "+ownerID, err)
	}

	return mapping.ToDomainInvestmentSlice(investments), nil
}

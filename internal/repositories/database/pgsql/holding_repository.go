package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/openvault/digibank/internal/apperrors"
	"github.com/openvault/digibank/internal/core/domain"
	portsrepo "github.com/openvault/digibank/internal/core/ports/repositories"
	"github.com/openvault/digibank/internal/models"
	"github.com/openvault/digibank/internal/utils/mapping"
)

const holdingColumns = `holding_id, owner_id, kind, number, balance, currency_code, version, is_primary, created_at, created_by, last_updated_at, last_updated_by`

type PgxHoldingRepository struct {
	BaseRepository
}

// newPgxHoldingRepository creates a new repository for holding data.
func newPgxHoldingRepository(pool *pgxpool.Pool) portsrepo.HoldingRepositoryWithTx {
	return &PgxHoldingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxHoldingRepository implements portsrepo.HoldingRepositoryWithTx
var _ portsrepo.HoldingRepositoryWithTx = (*PgxHoldingRepository)(nil)

func scanHolding(row pgx.Row) (*models.Holding, error) {
	var m models.Holding
	err := row.Scan(
		&m.HoldingID,
		&m.OwnerID,
		&m.Kind,
		&m.Number,
		&m.Balance,
		&m.CurrencyCode,
		&m.Version,
		&m.IsPrimary,
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

// SaveHolding inserts a new holding.
func (r *PgxHoldingRepository) SaveHolding(ctx context.Context, holding domain.Holding) error {
	m := mapping.ToModelHolding(holding)

	query := `
		INSERT INTO holdings (` + holdingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.HoldingID,
		m.OwnerID,
		m.Kind,
		m.Number,
		m.Balance,
		m.CurrencyCode,
		m.Version,
		m.IsPrimary,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: holding with ID %s already exists", apperrors.ErrDuplicate, m.HoldingID)
		}
		return apperrors.NewStorageFault("failed to save holding "+m.HoldingID, err)
	}
	return nil
}

// FindHoldingByID retrieves a holding by its ID.
func (r *PgxHoldingRepository) FindHoldingByID(ctx context.Context, holdingID string) (*domain.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE holding_id = $1;`

	m, err := scanHolding(r.Pool.QueryRow(ctx, query, holdingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageFault("failed to find holding by ID "+holdingID, err)
	}

	d := mapping.ToDomainHolding(*m)
	return &d, nil
}

// ListHoldingsByOwner retrieves all holdings owned by a user, newest first.
func (r *PgxHoldingRepository) ListHoldingsByOwner(ctx context.Context, ownerID string) ([]domain.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE owner_id = $1 ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewStorageFault("failed to query holdings for owner "+ownerID, err)
	}
	defer rows.Close()

	holdings := []models.Holding{}
	for rows.Next() {
		m, err := scanHolding(rows)
		if err != nil {
			return nil, apperrors.NewStorageFault("failed to scan holding row for owner "+ownerID, err)
		}
		holdings = append(holdings, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageFault("error iterating holding rows for owner "+ownerID, err)
	}

	return mapping.ToDomainHoldingSlice(holdings), nil
}

// FindPrimaryHoldingByOwner retrieves the owner's primary holding.
func (r *PgxHoldingRepository) FindPrimaryHoldingByOwner(ctx context.Context, ownerID string) (*domain.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE owner_id = $1 AND is_primary = TRUE;`

	m, err := scanHolding(r.Pool.QueryRow(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageFault("failed to find primary holding for owner "+ownerID, err)
	}

	d := mapping.ToDomainHolding(*m)
	return &d, nil
}

// FindHoldingsByIDsForUpdate retrieves holdings by IDs and locks the rows for
// update. Rows are locked in ascending holding ID order regardless of which
// leg is source or destination, so two transfers crossing the same pair of
// holdings in opposite directions cannot deadlock. Must be called within a
// transaction.
func (r *PgxHoldingRepository) FindHoldingsByIDsForUpdate(ctx context.Context, tx pgx.Tx, holdingIDs []string) (map[string]domain.Holding, error) {
	if len(holdingIDs) == 0 {
		return map[string]domain.Holding{}, nil
	}

	ordered := make([]string, len(holdingIDs))
	copy(ordered, holdingIDs)
	sort.Strings(ordered)

	query := `
		SELECT ` + holdingColumns + `
		FROM holdings
		WHERE holding_id = ANY($1)
		ORDER BY holding_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, ordered)
	if err != nil {
		return nil, apperrors.NewStorageFault("failed to query holdings for update", err)
	}
	defer rows.Close()

	holdingsMap := make(map[string]domain.Holding)
	for rows.Next() {
		m, err := scanHolding(rows)
		if err != nil {
			return nil, apperrors.NewStorageFault("failed to scan locked holding row", err)
		}
		holdingsMap[m.HoldingID] = mapping.ToDomainHolding(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageFault("error iterating locked holding rows", err)
	}

	if len(holdingsMap) != len(ordered) {
		missing := []string{}
		for _, id := range ordered {
			if _, found := holdingsMap[id]; !found {
				missing = append(missing, id)
			}
		}
		return nil, fmt.Errorf("%w: could not find or lock all requested holdings, missing: %v", apperrors.ErrNotFound, missing)
	}

	return holdingsMap, nil
}

// AdjustBalanceInTx applies delta to the holding balance inside tx. This is
// the single choke point for balance mutation: the guarded UPDATE only fires
// when the stored version still matches expectedVersion and the resulting
// balance stays non-negative. A miss is classified by re-reading the row in
// the same transaction.
func (r *PgxHoldingRepository) AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, holdingID string, delta decimal.Decimal, expectedVersion int64, userID string) (*domain.Holding, error) {
	query := `
		UPDATE holdings
		SET balance = balance + $2,
		    version = version + 1,
		    last_updated_at = NOW(),
		    last_updated_by = $4
		WHERE holding_id = $1
		  AND version = $3
		  AND balance + $2 >= 0
		RETURNING ` + holdingColumns + `;
	`
	m, err := scanHolding(tx.QueryRow(ctx, query, holdingID, delta, expectedVersion, userID))
	if err == nil {
		d := mapping.ToDomainHolding(*m)
		return &d, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewStorageFault("failed to adjust balance for holding "+holdingID, err)
	}

	// The guarded update did not fire. Distinguish the cause.
	var version int64
	var balance decimal.Decimal
	checkErr := tx.QueryRow(ctx, `SELECT version, balance FROM holdings WHERE holding_id = $1`, holdingID).Scan(&version, &balance)
	if checkErr != nil {
		if errors.Is(checkErr, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageFault("failed to classify balance adjustment failure for holding "+holdingID, checkErr)
	}
	if version != expectedVersion {
		return nil, fmt.Errorf("%w: holding %s version moved from %d to %d", apperrors.ErrConflict, holdingID, expectedVersion, version)
	}
	return nil, fmt.Errorf("%w: holding %s balance %s cannot absorb %s", apperrors.ErrInsufficientFunds, holdingID, balance.String(), delta.String())
}

// DeleteHoldingInTx removes a holding row inside tx. Callers refund the
// remaining balance to the owner's primary holding first.
func (r *PgxHoldingRepository) DeleteHoldingInTx(ctx context.Context, tx pgx.Tx, holdingID string) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM holdings WHERE holding_id = $1;`, holdingID)
	if err != nil {
		return apperrors.NewStorageFault("failed to delete holding "+holdingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

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

const transferColumns = `transfer_id, source_holding_id, dest_holding_id, amount, currency_code, status, reason, created_at, created_by`

type PgxTransferRepository struct {
	BaseRepository
}

// newPgxTransferRepository creates a new repository for transfer data.
func newPgxTransferRepository(pool *pgxpool.Pool) portsrepo.TransferRepositoryFacade {
	return &PgxTransferRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransferRepository implements portsrepo.TransferRepositoryFacade
var _ portsrepo.TransferRepositoryFacade = (*PgxTransferRepository)(nil)

const insertTransferQuery = `
	INSERT INTO transfers (` + transferColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`

func transferArgs(m models.Transfer) []any {
	return []any{
		m.TransferID,
		m.SourceHoldingID,
		m.DestHoldingID,
		m.Amount,
		m.CurrencyCode,
		m.Status,
		m.Reason,
		m.CreatedAt,
		m.CreatedBy,
	}
}

// SaveTransferInTx inserts a transfer row inside the caller's transaction so
// it commits atomically with the balance movement it describes.
func (r *PgxTransferRepository) SaveTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error {
	m := mapping.ToModelTransfer(transfer)
	if _, err := tx.Exec(ctx, insertTransferQuery, transferArgs(m)...); err != nil {
		return apperrors.NewStorageFault("failed to insert transfer "+m.TransferID, err)
	}
	return nil
}

// SaveTransfer inserts a terminal transfer row outside any caller transaction.
// Used for rejected transfers whose balances never moved.
func (r *PgxTransferRepository) SaveTransfer(ctx context.Context, transfer domain.Transfer) error {
	m := mapping.ToModelTransfer(transfer)
	if _, err := r.Pool.Exec(ctx, insertTransferQuery, transferArgs(m)...); err != nil {
		return apperrors.NewStorageFault("failed to insert transfer "+m.TransferID, err)
	}
	return nil
}

func scanTransfer(row pgx.Row) (*models.Transfer, error) {
	var m models.Transfer
	err := row.Scan(
		&m.TransferID,
		&m.SourceHoldingID,
		&m.DestHoldingID,
		&m.Amount,
		&m.CurrencyCode,
		&m.Status,
		&m.Reason,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindTransferByID retrieves a transfer by its ID.
func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE transfer_id = $1;`

	m, err := scanTransfer(r.Pool.QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageFault("failed to find transfer by ID "+transferID, err)
	}

	d := mapping.ToDomainTransfer(*m)
	return &d, nil
}

// ListTransfersByHolding retrieves transfers touching a holding, newest first.
func (r *PgxTransferRepository) ListTransfersByHolding(ctx context.Context, holdingID string, limit int) ([]domain.Transfer, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		WHERE source_holding_id = $1 OR dest_holding_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, holdingID, limit)
	if err != nil {
		return nil, apperrors.NewStorageFault("failed to query transfers for holding "+holdingID, err)
	}
	defer rows.Close()

	transfers := []models.Transfer{}
	for rows.Next() {
		m, err := scanTransfer(rows)
		if err != nil {
			return nil, apperrors.NewStorageFault("failed to scan transfer row for holding "+holdingID, err)
		}
		transfers = append(transfers, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageFault("error iterating transfer rows for holding "+holdingID, err)
	}

	return mapping.ToDomainTransferSlice(transfers), nil
}

package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/openvault/digibank/internal/core/domain"
)

// HoldingReader defines read operations for holding data
type HoldingReader interface {
	// FindHoldingByID retrieves a specific holding by its unique identifier.
	FindHoldingByID(ctx context.Context, holdingID string) (*domain.Holding, error)

	// ListHoldingsByOwner retrieves all holdings owned by a user, newest first.
	ListHoldingsByOwner(ctx context.Context, ownerID string) ([]domain.Holding, error)

	// FindPrimaryHoldingByOwner retrieves the owner's primary holding.
	FindPrimaryHoldingByOwner(ctx context.Context, ownerID string) (*domain.Holding, error)
}

// HoldingWriter defines write operations for holding data
type HoldingWriter interface {
	// SaveHolding persists a new holding.
	SaveHolding(ctx context.Context, holding domain.Holding) error
}

// LedgerStore is the single choke point for balance mutation. No caller may
// change a holding balance by any other path.
type LedgerStore interface {
	// FindHoldingsByIDsForUpdate selects holdings and locks their rows inside
	// tx, always acquiring in ascending holding ID order so that two
	// operations crossing the same pair of holdings cannot deadlock.
	FindHoldingsByIDsForUpdate(ctx context.Context, tx pgx.Tx, holdingIDs []string) (map[string]domain.Holding, error)

	// AdjustBalanceInTx applies delta to the holding balance inside tx.
	// It fails with apperrors.ErrInsufficientFunds when balance+delta < 0,
	// with apperrors.ErrConflict when the stored version no longer matches
	// expectedVersion, and with apperrors.ErrNotFound when the holding is
	// absent. On success the holding version is incremented.
	AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, holdingID string, delta decimal.Decimal, expectedVersion int64, userID string) (*domain.Holding, error)

	// DeleteHoldingInTx removes a holding row inside tx. The caller must
	// have drained its balance first (refund-then-delete).
	DeleteHoldingInTx(ctx context.Context, tx pgx.Tx, holdingID string) error
}

// HoldingRepositoryFacade combines all holding-related repository interfaces.
type HoldingRepositoryFacade interface {
	HoldingReader
	HoldingWriter
	LedgerStore
}

// HoldingRepositoryWithTx extends HoldingRepositoryFacade with transaction capabilities
type HoldingRepositoryWithTx interface {
	HoldingRepositoryFacade
	TransactionManager
}

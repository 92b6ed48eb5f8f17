package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/openvault/digibank/internal/core/domain"
)

// TransferReader defines read operations for transfer data
type TransferReader interface {
	// FindTransferByID retrieves a specific transfer by its unique identifier.
	FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error)

	// ListTransfersByHolding retrieves transfers touching a holding, newest first.
	ListTransfersByHolding(ctx context.Context, holdingID string, limit int) ([]domain.Transfer, error)
}

// TransferWriter defines write operations for transfer data. Transfer rows
// are written once with their terminal status; there is no update.
type TransferWriter interface {
	// SaveTransferInTx persists a transfer row inside tx so it commits
	// atomically with the balance movement it describes.
	SaveTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error

	// SaveTransfer persists a terminal transfer row outside any caller
	// transaction (used for rejected transfers whose balances never moved).
	SaveTransfer(ctx context.Context, transfer domain.Transfer) error
}

// TransferRepositoryFacade combines all transfer-related repository interfaces.
type TransferRepositoryFacade interface {
	TransferReader
	TransferWriter
}

package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/openvault/digibank/internal/core/domain"
	"github.com/openvault/digibank/internal/dto"
)

// TransferResult carries a completed transfer together with the post-commit
// balances of both legs.
type TransferResult struct {
	Transfer      domain.Transfer
	SourceBalance decimal.Decimal
	DestBalance   decimal.Decimal
}

// LedgerSvcFacade is the transfer engine: it validates and executes balance
// movement between two holdings as a single all-or-nothing operation.
type LedgerSvcFacade interface {
	// Transfer moves amount from the actor's source holding to the
	// destination holding. On rejection the returned error is one of the
	// apperrors sentinels (ErrInsufficientFunds, ErrCurrencyMismatch,
	// ErrSelfTransfer, ErrNotFound, ErrContention).
	Transfer(ctx context.Context, actorID string, req dto.CreateTransferRequest, meta dto.RequestMeta) (*TransferResult, error)

	// GetTransferByID retrieves a transfer record.
	GetTransferByID(ctx context.Context, actorID string, transferID string) (*domain.Transfer, error)

	// ListTransfersByHolding retrieves transfers touching a holding the
	// actor owns, newest first.
	ListTransfersByHolding(ctx context.Context, actorID string, holdingID string, limit int) ([]domain.Transfer, error)
}

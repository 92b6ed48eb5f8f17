package services

import (
	"context"

	"github.com/openvault/digibank/internal/core/domain"
	"github.com/openvault/digibank/internal/dto"
)

// HoldingSvcFacade manages holding lifecycle. Balance mutation stays with
// the transfer/loan/investment services; this facade only opens, reads and
// closes holdings (close refunds any remaining balance to the owner's
// primary holding before the row is removed).
type HoldingSvcFacade interface {
	// OpenHolding creates a new zero-balance holding for the owner.
	OpenHolding(ctx context.Context, ownerID string, req dto.OpenHoldingRequest, meta dto.RequestMeta) (*domain.Holding, error)

	// GetHoldingByID retrieves a holding.
	GetHoldingByID(ctx context.Context, holdingID string) (*domain.Holding, error)

	// ListHoldingsByOwner retrieves the owner's holdings, newest first.
	ListHoldingsByOwner(ctx context.Context, ownerID string) ([]domain.Holding, error)

	// CloseHolding refunds the remaining balance to the owner's primary
	// holding and deletes the holding, atomically.
	CloseHolding(ctx context.Context, ownerID string, holdingID string, meta dto.RequestMeta) error
}

package services

import (
	"context"

	"github.com/openvault/digibank/internal/core/domain"
	"github.com/openvault/digibank/internal/dto"
)

// InvestmentSvcFacade opens funded positions. The funding debit and the
// investment row commit in one atomic unit.
type InvestmentSvcFacade interface {
	// FundInvestment debits the source holding and creates an ACTIVE
	// position. Unknown types fail with apperrors.ErrInvalidInvestmentType
	// before any balance mutation is attempted.
	FundInvestment(ctx context.Context, ownerID string, req dto.FundInvestmentRequest, meta dto.RequestMeta) (*domain.Investment, error)

	// ListInvestmentsByOwner retrieves the owner's investments, newest first.
	ListInvestmentsByOwner(ctx context.Context, ownerID string) ([]domain.Investment, error)
}

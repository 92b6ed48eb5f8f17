package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/openvault/digibank/internal/core/domain"
)

// InvestmentReader defines read operations for investment data
type InvestmentReader interface {
	// FindInvestmentByID retrieves a specific investment by its unique identifier.
	FindInvestmentByID(ctx context.Context, investmentID string) (*domain.Investment, error)

	// ListInvestmentsByOwner retrieves investments for an owner, newest first.
	ListInvestmentsByOwner(ctx context.Context, ownerID string) ([]domain.Investment, error)
}

// InvestmentWriter defines write operations for investment data
type InvestmentWriter interface {
	// SaveInvestmentInTx persists an investment row inside tx so it commits
	// atomically with the funding debit.
	SaveInvestmentInTx(ctx context.Context, tx pgx.Tx, investment domain.Investment) error
}

// InvestmentRepositoryFacade combines all investment-related repository interfaces.
type InvestmentRepositoryFacade interface {
	InvestmentReader
	InvestmentWriter
}

package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/openvault/digibank/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx repositories over one connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		HoldingRepo:    newPgxHoldingRepository(dbPool),
		TransferRepo:   newPgxTransferRepository(dbPool),
		LoanRepo:       newPgxLoanRepository(dbPool),
		InvestmentRepo: newPgxInvestmentRepository(dbPool),
		AuditRepo:      newPgxAuditRepository(dbPool),
	}
}

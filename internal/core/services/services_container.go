package services

import (
	portsrepo "github.com/openvault/digibank/internal/core/ports/repositories"
	portssvc "github.com/openvault/digibank/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. publisher may be nil when the message broker is
// disabled.
func NewServiceContainer(repos portsrepo.RepositoryProvider, publisher portssvc.EventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit comes first since every other service records through it.
	container.Audit = NewAuditService(repos.AuditRepo)

	container.Ledger = NewLedgerService(repos.HoldingRepo, repos.TransferRepo, repos.AuditRepo, container.Audit, publisher)
	container.Holding = NewHoldingService(repos.HoldingRepo, repos.TransferRepo, repos.AuditRepo, container.Audit, publisher)
	container.Loan = NewLoanService(repos.LoanRepo, repos.HoldingRepo, repos.TransferRepo, repos.AuditRepo, container.Audit, publisher)
	container.Investment = NewInvestmentService(repos.InvestmentRepo, repos.HoldingRepo, repos.TransferRepo, repos.AuditRepo, container.Audit, publisher)

	return container
}

package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	HoldingRepo    HoldingRepositoryWithTx
	TransferRepo   TransferRepositoryFacade
	LoanRepo       LoanRepositoryFacade
	InvestmentRepo InvestmentRepositoryFacade
	AuditRepo      AuditRepositoryFacade
}

package services

// ServiceContainer holds all the services and manages their dependencies
type ServiceContainer struct {
	Ledger     LedgerSvcFacade
	Holding    HoldingSvcFacade
	Loan       LoanSvcFacade
	Investment InvestmentSvcFacade
	Audit      AuditSvcFacade
}

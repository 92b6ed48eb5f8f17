package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus mirrors domain.LoanStatus for persistence.
type LoanStatus string

// Loan is the persistence model for the loans table.
type Loan struct {
	LoanID          string          `db:"loan_id"`
	BorrowerID      string          `db:"borrower_id"`
	Principal       decimal.Decimal `db:"principal"`
	InterestRate    decimal.Decimal `db:"interest_rate"`
	DueDate         time.Time       `db:"due_date"`
	Status          LoanStatus      `db:"status"`
	TargetHoldingID *string         `db:"target_holding_id"`
	DecidedBy       *string         `db:"decided_by"`
	DecidedAt       *time.Time      `db:"decided_at"`
	AuditFields
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus transitions are monotonic: PENDING -> {APPROVED, REJECTED}.
// APPROVED is reachable exactly once and is the only state that triggers
// disbursement.
type LoanStatus string

const (
	LoanPending  LoanStatus = "PENDING"
	LoanApproved LoanStatus = "APPROVED"
	LoanRejected LoanStatus = "REJECTED"
)

// LoanAction is an admin decision on a pending loan.
type LoanAction string

const (
	LoanActionApprove LoanAction = "APPROVE"
	LoanActionReject  LoanAction = "REJECT"
)

// Loan represents a credit obligation. Loans are never deleted.
type Loan struct {
	LoanID          string          `json:"loanID"`
	BorrowerID      string          `json:"borrowerID"`
	Principal       decimal.Decimal `json:"principal"`
	InterestRate    decimal.Decimal `json:"interestRate"` // Percent
	DueDate         time.Time       `json:"dueDate"`
	Status          LoanStatus      `json:"status"`
	TargetHoldingID *string         `json:"targetHoldingID"` // Set at approval; disbursement destination
	DecidedBy       *string         `json:"decidedBy"`
	DecidedAt       *time.Time      `json:"decidedAt"`
	AuditFields
}

// RepaymentAmount returns principal plus simple interest.
func (l Loan) RepaymentAmount() decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return l.Principal.Add(l.Principal.Mul(l.InterestRate).Div(hundred))
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus indicates the terminal outcome of a transfer. A transfer is
// created PENDING and transitions exactly once; rows are immutable after.
type TransferStatus string

const (
	TransferPending   TransferStatus = "PENDING"
	TransferCompleted TransferStatus = "COMPLETED"
	TransferRejected  TransferStatus = "REJECTED"
	TransferFailed    TransferStatus = "FAILED"
)

// Transfer represents one completed or rejected movement of value between
// two holdings. Single-leg transfers (loan disbursement, investment funding)
// leave the absent leg nil; their external nature is recorded in Reason.
type Transfer struct {
	TransferID      string          `json:"transferID"`
	SourceHoldingID *string         `json:"sourceHoldingID"` // nil for external credits (loan disbursement)
	DestHoldingID   *string         `json:"destHoldingID"`   // nil for external debits (investment funding)
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	Status          TransferStatus  `json:"status"`
	Reason          string          `json:"reason"` // Rejection cause, empty on success
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

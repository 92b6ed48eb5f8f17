package domain

import (
	"github.com/shopspring/decimal"
)

// HoldingKind distinguishes deposit accounts from asset holdings. Both carry
// a balance and move money through the same ledger primitives.
type HoldingKind string

const (
	HoldingAccount HoldingKind = "ACCOUNT"
	HoldingAsset   HoldingKind = "ASSET"
)

// Holding represents a monetary balance owned by exactly one user.
//
// Balance is mutated only through the ledger store's AdjustBalanceInTx choke
// point; Version increments on every committed balance mutation and is the
// optimistic-concurrency token that prevents lost updates.
type Holding struct {
	HoldingID    string          `json:"holdingID"` // Primary Key (UUID)
	OwnerID      string          `json:"ownerID"`   // FK -> users.user_id
	Kind         HoldingKind     `json:"kind"`
	Number       string          `json:"number"` // Human-facing holding number, e.g. ACC1234...
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
	Version      int64           `json:"version"`
	IsPrimary    bool            `json:"isPrimary"` // Receives refunds when another holding closes
	AuditFields
}

package models

import (
	"github.com/shopspring/decimal"
)

// HoldingKind mirrors domain.HoldingKind for persistence.
type HoldingKind string

// Holding is the persistence model for the holdings table.
type Holding struct {
	HoldingID    string          `db:"holding_id"`
	OwnerID      string          `db:"owner_id"`
	Kind         HoldingKind     `db:"kind"`
	Number       string          `db:"number"`
	Balance      decimal.Decimal `db:"balance"`
	CurrencyCode string          `db:"currency_code"`
	Version      int64           `db:"version"`
	IsPrimary    bool            `db:"is_primary"`
	AuditFields
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment is the persistence model for the investments table.
type Investment struct {
	InvestmentID    string          `db:"investment_id"`
	OwnerID         string          `db:"owner_id"`
	SourceHoldingID string          `db:"source_holding_id"`
	Amount          decimal.Decimal `db:"amount"`
	Type            string          `db:"type"`
	Status          string          `db:"status"`
	CreatedAt       time.Time       `db:"created_at"`
}

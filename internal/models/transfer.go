package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus mirrors domain.TransferStatus for persistence.
type TransferStatus string

// Transfer is the persistence model for the transfers table. Rows are
// written once with their terminal status and never updated.
type Transfer struct {
	TransferID      string          `db:"transfer_id"`
	SourceHoldingID *string         `db:"source_holding_id"`
	DestHoldingID   *string         `db:"dest_holding_id"`
	Amount          decimal.Decimal `db:"amount"`
	CurrencyCode    string          `db:"currency_code"`
	Status          TransferStatus  `db:"status"`
	Reason          string          `db:"reason"`
	CreatedAt       time.Time       `db:"created_at"`
	CreatedBy       string          `db:"created_by"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentType is a closed enumeration of supported asset classes.
type InvestmentType string

const (
	InvestmentStocks       InvestmentType = "STOCKS"
	InvestmentBonds        InvestmentType = "BONDS"
	InvestmentMutualFunds  InvestmentType = "MUTUAL_FUNDS"
	InvestmentFixedDeposit InvestmentType = "FIXED_DEPOSIT"
	InvestmentCrypto       InvestmentType = "CRYPTO"
)

// ValidInvestmentType reports whether t is one of the known asset classes.
func ValidInvestmentType(t InvestmentType) bool {
	switch t {
	case InvestmentStocks, InvestmentBonds, InvestmentMutualFunds, InvestmentFixedDeposit, InvestmentCrypto:
		return true
	}
	return false
}

// InvestmentStatus indicates whether a position is open.
type InvestmentStatus string

const (
	InvestmentActive InvestmentStatus = "ACTIVE"
	InvestmentClosed InvestmentStatus = "CLOSED"
)

// Investment represents a funded position. The funding debit and the
// investment row are committed in the same atomic unit.
type Investment struct {
	InvestmentID    string           `json:"investmentID"`
	OwnerID         string           `json:"ownerID"`
	SourceHoldingID string           `json:"sourceHoldingID"`
	Amount          decimal.Decimal  `json:"amount"`
	Type            InvestmentType   `json:"type"`
	Status          InvestmentStatus `json:"status"`
	CreatedAt       time.Time        `json:"createdAt"`
}

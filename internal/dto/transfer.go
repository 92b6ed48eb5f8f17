package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/openvault/digibank/internal/core/domain"
)

// CreateTransferRequest defines the data needed to move value between two holdings.
type CreateTransferRequest struct {
	SourceHoldingID string          `json:"sourceHoldingID" binding:"required"`
	DestHoldingID   string          `json:"destHoldingID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode    string          `json:"currencyCode" binding:"required,len=3"`
}

// TransferResponse defines the data returned for a transfer.
type TransferResponse struct {
	TransferID      string                `json:"transferID"`
	SourceHoldingID *string               `json:"sourceHoldingID,omitempty"`
	DestHoldingID   *string               `json:"destHoldingID,omitempty"`
	Amount          decimal.Decimal       `json:"amount"`
	CurrencyCode    string                `json:"currencyCode"`
	Status          domain.TransferStatus `json:"status"`
	Reason          string                `json:"reason,omitempty"`
	SourceBalance   *decimal.Decimal      `json:"sourceBalance,omitempty"`
	DestBalance     *decimal.Decimal      `json:"destBalance,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
}

// ToTransferResponse converts a domain.Transfer to TransferResponse DTO
func ToTransferResponse(t *domain.Transfer) TransferResponse {
	return TransferResponse{
		TransferID:      t.TransferID,
		SourceHoldingID: t.SourceHoldingID,
		DestHoldingID:   t.DestHoldingID,
		Amount:          t.Amount,
		CurrencyCode:    t.CurrencyCode,
		Status:          t.Status,
		Reason:          t.Reason,
		CreatedAt:       t.CreatedAt,
	}
}

// ToTransferResponses converts a slice of domain.Transfer to DTOs
func ToTransferResponses(ts []domain.Transfer) []TransferResponse {
	res := make([]TransferResponse, len(ts))
	for i := range ts {
		res[i] = ToTransferResponse(&ts[i])
	}
	return res
}

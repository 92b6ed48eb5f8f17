package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/openvault/digibank/internal/core/domain"
)

// OpenHoldingRequest defines the data needed to open a new holding.
type OpenHoldingRequest struct {
	Kind         domain.HoldingKind `json:"kind" binding:"required,oneof=ACCOUNT ASSET"`
	CurrencyCode string             `json:"currencyCode" binding:"required,len=3"`
	IsPrimary    bool               `json:"isPrimary"`
}

// HoldingResponse defines the data returned for a holding.
type HoldingResponse struct {
	HoldingID    string             `json:"holdingID"`
	OwnerID      string             `json:"ownerID"`
	Kind         domain.HoldingKind `json:"kind"`
	Number       string             `json:"number"`
	Balance      decimal.Decimal    `json:"balance"`
	CurrencyCode string             `json:"currencyCode"`
	Version      int64              `json:"version"`
	IsPrimary    bool               `json:"isPrimary"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// ToHoldingResponse converts a domain.Holding to HoldingResponse DTO
func ToHoldingResponse(h *domain.Holding) HoldingResponse {
	return HoldingResponse{
		HoldingID:    h.HoldingID,
		OwnerID:      h.OwnerID,
		Kind:         h.Kind,
		Number:       h.Number,
		Balance:      h.Balance,
		CurrencyCode: h.CurrencyCode,
		Version:      h.Version,
		IsPrimary:    h.IsPrimary,
		CreatedAt:    h.CreatedAt,
	}
}

// ToHoldingResponses converts a slice of domain.Holding to DTOs
func ToHoldingResponses(hs []domain.Holding) []HoldingResponse {
	res := make([]HoldingResponse, len(hs))
	for i := range hs {
		res[i] = ToHoldingResponse(&hs[i])
	}
	return res
}

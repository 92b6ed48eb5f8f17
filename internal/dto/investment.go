package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/openvault/digibank/internal/core/domain"
)

// FundInvestmentRequest defines the data needed to fund a new investment.
type FundInvestmentRequest struct {
	SourceHoldingID string                `json:"sourceHoldingID" binding:"required"`
	Amount          decimal.Decimal       `json:"amount" binding:"required"`
	Type            domain.InvestmentType `json:"type" binding:"required"`
}

// InvestmentResponse defines the data returned for an investment.
type InvestmentResponse struct {
	InvestmentID    string                  `json:"investmentID"`
	OwnerID         string                  `json:"ownerID"`
	SourceHoldingID string                  `json:"sourceHoldingID"`
	Amount          decimal.Decimal         `json:"amount"`
	Type            domain.InvestmentType   `json:"type"`
	Status          domain.InvestmentStatus `json:"status"`
	CreatedAt       time.Time               `json:"createdAt"`
}

// ToInvestmentResponse converts a domain.Investment to InvestmentResponse DTO
func ToInvestmentResponse(inv *domain.Investment) InvestmentResponse {
	return InvestmentResponse{
		InvestmentID:    inv.InvestmentID,
		OwnerID:         inv.OwnerID,
		SourceHoldingID: inv.SourceHoldingID,
		Amount:          inv.Amount,
		Type:            inv.Type,
		Status:          inv.Status,
		CreatedAt:       inv.CreatedAt,
	}
}

// ToInvestmentResponses converts a slice of domain.Investment to DTOs
func ToInvestmentResponses(invs []domain.Investment) []InvestmentResponse {
	res := make([]InvestmentResponse, len(invs))
	for i := range invs {
		res[i] = ToInvestmentResponse(&invs[i])
	}
	return res
}

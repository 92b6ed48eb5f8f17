package mapping

import (
	"github.com/openvault/digibank/internal/core/domain"
	"github.com/openvault/digibank/internal/models"
)

// ToModelInvestment converts a domain Investment to a model Investment
func ToModelInvestment(d domain.Investment) models.Investment {
	return models.Investment{
		InvestmentID:    d.InvestmentID,
		OwnerID:         d.OwnerID,
		SourceHoldingID: d.SourceHoldingID,
		Amount:          d.Amount,
		Type:            string(d.Type),
		Status:          string(d.Status),
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainInvestment converts a model Investment to a domain Investment
func ToDomainInvestment(m models.Investment) domain.Investment {
	return domain.Investment{
		InvestmentID:    m.InvestmentID,
		OwnerID:         m.OwnerID,
		SourceHoldingID: m.SourceHoldingID,
		Amount:          m.Amount,
		Type:            domain.InvestmentType(m.Type),
		Status:          domain.InvestmentStatus(m.Status),
		CreatedAt:       m.CreatedAt,
	}
}

// ToDomainInvestmentSlice converts a slice of model Investments to domain Investments
func ToDomainInvestmentSlice(ms []models.Investment) []domain.Investment {
	ds := make([]domain.Investment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvestment(m)
	}
	return ds
}

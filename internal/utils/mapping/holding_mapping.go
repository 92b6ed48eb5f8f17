package mapping

import (
	"github.com/openvault/digibank/internal/core/domain"
	"github.com/openvault/digibank/internal/models"
)

// ToModelHolding converts a domain Holding to a model Holding
func ToModelHolding(d domain.Holding) models.Holding {
	return models.Holding{
		HoldingID:    d.HoldingID,
		OwnerID:      d.OwnerID,
		Kind:         models.HoldingKind(d.Kind),
		Number:       d.Number,
		Balance:      d.Balance,
		CurrencyCode: d.CurrencyCode,
		Version:      d.Version,
		IsPrimary:    d.IsPrimary,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainHolding converts a model Holding to a domain Holding
func ToDomainHolding(m models.Holding) domain.Holding {
	return domain.Holding{
		HoldingID:    m.HoldingID,
		OwnerID:      m.OwnerID,
		Kind:         domain.HoldingKind(m.Kind),
		Number:       m.Number,
		Balance:      m.Balance,
		CurrencyCode: m.CurrencyCode,
		Version:      m.Version,
		IsPrimary:    m.IsPrimary,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainHoldingSlice converts a slice of model Holdings to domain Holdings
func ToDomainHoldingSlice(ms []models.Holding) []domain.Holding {
	ds := make([]domain.Holding, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainHolding(m)
	}
	return ds
}

package mapping

import (
	"github.com/openvault/digibank/internal/core/domain"
	"github.com/openvault/digibank/internal/models"
)

// ToModelTransfer converts a domain Transfer to a model Transfer
func ToModelTransfer(d domain.Transfer) models.Transfer {
	return models.Transfer{
		TransferID:      d.TransferID,
		SourceHoldingID: d.SourceHoldingID,
		DestHoldingID:   d.DestHoldingID,
		Amount:          d.Amount,
		CurrencyCode:    d.CurrencyCode,
		Status:          models.TransferStatus(d.Status),
		Reason:          d.Reason,
		CreatedAt:       d.CreatedAt,
		CreatedBy:       d.CreatedBy,
	}
}

// ToDomainTransfer converts a model Transfer to a domain Transfer
func ToDomainTransfer(m models.Transfer) domain.Transfer {
	return domain.Transfer{
		TransferID:      m.TransferID,
		SourceHoldingID: m.SourceHoldingID,
		DestHoldingID:   m.DestHoldingID,
		Amount:          m.Amount,
		CurrencyCode:    m.CurrencyCode,
		Status:          domain.TransferStatus(m.Status),
		Reason:          m.Reason,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}

// ToDomainTransferSlice converts a slice of model Transfers to domain Transfers
func ToDomainTransferSlice(ms []models.Transfer) []domain.Transfer {
	ds := make([]domain.Transfer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransfer(m)
	}
	return ds
}

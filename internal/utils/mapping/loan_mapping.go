package mapping

import (
	"github.com/openvault/digibank/internal/core/domain"
	"github.com/openvault/digibank/internal/models"
)

// ToModelLoan converts a domain Loan to a model Loan
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:          d.LoanID,
		BorrowerID:      d.BorrowerID,
		Principal:       d.Principal,
		InterestRate:    d.InterestRate,
		DueDate:         d.DueDate,
		Status:          models.LoanStatus(d.Status),
		TargetHoldingID: d.TargetHoldingID,
		DecidedBy:       d.DecidedBy,
		DecidedAt:       d.DecidedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoan converts a model Loan to a domain Loan
func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:          m.LoanID,
		BorrowerID:      m.BorrowerID,
		Principal:       m.Principal,
		InterestRate:    m.InterestRate,
		DueDate:         m.DueDate,
		Status:          domain.LoanStatus(m.Status),
		TargetHoldingID: m.TargetHoldingID,
		DecidedBy:       m.DecidedBy,
		DecidedAt:       m.DecidedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLoanSlice converts a slice of model Loans to domain Loans
func ToDomainLoanSlice(ms []models.Loan) []domain.Loan {
	ds := make([]domain.Loan, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLoan(m)
	}
	return ds
}

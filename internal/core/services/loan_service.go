package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openvault/digibank/internal/apperrors"
	"github.com/openvault/digibank/internal/core/domain"
	portsrepo "github.com/openvault/digibank/internal/core/ports/repositories"
	portssvc "github.com/openvault/digibank/internal/core/ports/services"
	"github.com/openvault/digibank/internal/dto"
	"github.com/openvault/digibank/internal/middleware"
)

// defaultLoanInterestRate applies when the application omits a rate, in
// percent.
var defaultLoanInterestRate = decimal.NewFromFloat(5.0)

type loanService struct {
	loanRepo     portsrepo.LoanRepositoryFacade
	holdingRepo  portsrepo.HoldingRepositoryWithTx
	transferRepo portsrepo.TransferRepositoryFacade
	auditRepo    portsrepo.AuditRepositoryFacade
	auditSvc     portssvc.AuditSvcFacade
	publisher    portssvc.EventPublisher
}

// NewLoanService creates a new loan lifecycle service.
func NewLoanService(
	loanRepo portsrepo.LoanRepositoryFacade,
	holdingRepo portsrepo.HoldingRepositoryWithTx,
	transferRepo portsrepo.TransferRepositoryFacade,
	auditRepo portsrepo.AuditRepositoryFacade,
	auditSvc portssvc.AuditSvcFacade,
	publisher portssvc.EventPublisher,
) portssvc.LoanSvcFacade {
	return &loanService{
		loanRepo:     loanRepo,
		holdingRepo:  holdingRepo,
		transferRepo: transferRepo,
		auditRepo:    auditRepo,
		auditSvc:     auditSvc,
		publisher:    publisher,
	}
}

// ApplyLoan files a PENDING loan application for the borrower. The borrower
// must already hold at least one holding to receive an eventual disbursement.
func (s *loanService) ApplyLoan(ctx context.Context, borrowerID string, req dto.ApplyLoanRequest, meta dto.RequestMeta) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Principal.IsPositive() {
		return nil, apperrors.NewAppError(400, "loan principal must be positive", apperrors.ErrValidation)
	}
	if !req.DueDate.After(time.Now()) {
		return nil, apperrors.NewAppError(400, "loan due date must be in the future", apperrors.ErrValidation)
	}

	rate := defaultLoanInterestRate
	if req.InterestRate != nil {
		if req.InterestRate.IsNegative() {
			return nil, apperrors.NewAppError(400, "interest rate must not be negative", apperrors.ErrValidation)
		}
		rate = *req.InterestRate
	}

	holdings, err := s.holdingRepo.ListHoldingsByOwner(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	if len(holdings) == 0 {
		return nil, apperrors.NewAppError(400, "borrower has no holding to disburse into", apperrors.ErrValidation)
	}

	now := time.Now()
	loan := domain.Loan{
		LoanID:       uuid.NewString(),
		BorrowerID:   borrowerID,
		Principal:    req.Principal,
		InterestRate: rate,
		DueDate:      req.DueDate,
		Status:       domain.LoanPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     borrowerID,
			LastUpdatedAt: now,
			LastUpdatedBy: borrowerID,
		},
	}

	if err := s.loanRepo.SaveLoan(ctx, loan); err != nil {
		logger.Error("Failed to save loan application", slog.String("error", err.Error()), slog.String("loan_id", loan.LoanID))
		return nil, err
	}

	s.auditSvc.Record(ctx, &borrowerID, domain.EventLoanApplication, map[string]any{
		"loanID":       loan.LoanID,
		"principal":    loan.Principal.String(),
		"interestRate": loan.InterestRate.String(),
		"dueDate":      loan.DueDate.Format(time.RFC3339),
	}, meta)
	publishEvent(ctx, s.publisher, "ledger.loan.applied", dto.ToLoanResponse(&loan))

	logger.Info("Loan application filed", slog.String("loan_id", loan.LoanID), slog.String("borrower_id", borrowerID))
	return &loan, nil
}

// DecideLoan applies an admin decision to a pending loan. Approval credits
// the principal to the borrower's target holding in the same transaction
// that flips the status, so a crash between the two cannot disburse twice
// or approve without disbursing. Every invocation leaves exactly one audit
// entry: the committed decision writes it inside the transaction, every
// failure is recorded here with the outcome.
func (s *loanService) DecideLoan(ctx context.Context, adminID string, loanID string, req dto.DecideLoanRequest, meta dto.RequestMeta) (*domain.Loan, error) {
	loan, err := s.decideLoan(ctx, adminID, loanID, req, meta)
	if err != nil {
		kind := domain.EventLoanRejection
		if req.Action == domain.LoanActionApprove {
			kind = domain.EventLoanApproval
		}
		s.auditSvc.Record(ctx, &adminID, kind, map[string]any{
			"loanID": loanID,
			"action": string(req.Action),
			"status": "FAILED",
			"reason": err.Error(),
		}, meta)
	}
	return loan, err
}

func (s *loanService) decideLoan(ctx context.Context, adminID string, loanID string, req dto.DecideLoanRequest, meta dto.RequestMeta) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.holdingRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.holdingRepo.Rollback(ctx, tx) }()

	loan, err := s.loanRepo.FindLoanByIDForUpdate(ctx, tx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != domain.LoanPending {
		return nil, apperrors.ErrAlreadyDecided
	}

	now := time.Now()
	loan.DecidedBy = &adminID
	loan.DecidedAt = &now
	loan.LastUpdatedAt = now
	loan.LastUpdatedBy = adminID

	kind := domain.EventLoanRejection
	switch req.Action {
	case domain.LoanActionApprove:
		if req.TargetHoldingID == nil {
			return nil, apperrors.NewAppError(400, "target holding is required for approval", apperrors.ErrValidation)
		}
		locked, err := s.holdingRepo.FindHoldingsByIDsForUpdate(ctx, tx, []string{*req.TargetHoldingID})
		if err != nil {
			return nil, err
		}
		target := locked[*req.TargetHoldingID]
		if target.OwnerID != loan.BorrowerID {
			return nil, apperrors.NewAppError(400, "target holding does not belong to the borrower", apperrors.ErrValidation)
		}

		if _, err := s.holdingRepo.AdjustBalanceInTx(ctx, tx, target.HoldingID, loan.Principal, target.Version, adminID); err != nil {
			return nil, err
		}

		disbursement := domain.Transfer{
			TransferID:    uuid.NewString(),
			DestHoldingID: &target.HoldingID,
			Amount:        loan.Principal,
			CurrencyCode:  target.CurrencyCode,
			Status:        domain.TransferCompleted,
			Reason:        "loan disbursement",
			CreatedAt:     now,
			CreatedBy:     adminID,
		}
		if err := s.transferRepo.SaveTransferInTx(ctx, tx, disbursement); err != nil {
			return nil, err
		}

		loan.Status = domain.LoanApproved
		loan.TargetHoldingID = req.TargetHoldingID
		kind = domain.EventLoanApproval
	case domain.LoanActionReject:
		loan.Status = domain.LoanRejected
	default:
		return nil, apperrors.NewAppError(400, "unknown loan action", apperrors.ErrValidation)
	}

	if err := s.loanRepo.MarkLoanDecidedInTx(ctx, tx, *loan); err != nil {
		return nil, err
	}

	detail := map[string]any{
		"loanID":     loan.LoanID,
		"borrowerID": loan.BorrowerID,
		"principal":  loan.Principal.String(),
		"status":     string(loan.Status),
	}
	if req.Reason != "" {
		detail["reason"] = req.Reason
	}
	if loan.TargetHoldingID != nil {
		detail["targetHoldingID"] = *loan.TargetHoldingID
	}
	if err := s.auditRepo.AppendEntryInTx(ctx, tx, newAuditEntry(&adminID, kind, detail, meta)); err != nil {
		return nil, err
	}

	if err := s.holdingRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Loan decided",
		slog.String("loan_id", loan.LoanID),
		slog.String("status", string(loan.Status)),
		slog.String("decided_by", adminID),
	)
	routingKey := "ledger.loan.rejected"
	if loan.Status == domain.LoanApproved {
		routingKey = "ledger.loan.approved"
	}
	publishEvent(ctx, s.publisher, routingKey, dto.ToLoanResponse(loan))
	return loan, nil
}

// GetLoanByID retrieves a loan. It is visible to its borrower and, once
// decided, to the deciding admin.
func (s *loanService) GetLoanByID(ctx context.Context, requesterID string, loanID string) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.BorrowerID != requesterID && (loan.DecidedBy == nil || *loan.DecidedBy != requesterID) {
		return nil, apperrors.ErrForbidden
	}
	return loan, nil
}

// ListLoansByBorrower retrieves the borrower's loans, newest first,
// optionally filtered by status.
func (s *loanService) ListLoansByBorrower(ctx context.Context, borrowerID string, status *domain.LoanStatus) ([]domain.Loan, error) {
	return s.loanRepo.ListLoansByBorrower(ctx, borrowerID, status)
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

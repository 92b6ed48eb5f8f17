package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openvault/digibank/internal/apperrors"
	"github.com/openvault/digibank/internal/core/domain"
	portsrepo "github.com/openvault/digibank/internal/core/ports/repositories"
	portssvc "github.com/openvault/digibank/internal/core/ports/services"
	"github.com/openvault/digibank/internal/dto"
	"github.com/openvault/digibank/internal/middleware"
)

type investmentService struct {
	investmentRepo portsrepo.InvestmentRepositoryFacade
	holdingRepo    portsrepo.HoldingRepositoryWithTx
	transferRepo   portsrepo.TransferRepositoryFacade
	auditRepo      portsrepo.AuditRepositoryFacade
	auditSvc       portssvc.AuditSvcFacade
	publisher      portssvc.EventPublisher
}

// NewInvestmentService creates a new investment funding service.
func NewInvestmentService(
	investmentRepo portsrepo.InvestmentRepositoryFacade,
	holdingRepo portsrepo.HoldingRepositoryWithTx,
	transferRepo portsrepo.TransferRepositoryFacade,
	auditRepo portsrepo.AuditRepositoryFacade,
	auditSvc portssvc.AuditSvcFacade,
	publisher portssvc.EventPublisher,
) portssvc.InvestmentSvcFacade {
	return &investmentService{
		investmentRepo: investmentRepo,
		holdingRepo:    holdingRepo,
		transferRepo:   transferRepo,
		auditRepo:      auditRepo,
		auditSvc:       auditSvc,
		publisher:      publisher,
	}
}

// FundInvestment debits the source holding and creates an ACTIVE position in
// one transaction. The type check runs before any storage access, so an
// unknown asset class can never move a balance. Every invocation leaves
// exactly one audit entry: success commits it with the funding, insufficient
// funds records the rejection, an ownership violation records
// SUSPICIOUS_ACTIVITY, and all other failures are recorded here.
func (s *investmentService) FundInvestment(ctx context.Context, ownerID string, req dto.FundInvestmentRequest, meta dto.RequestMeta) (*domain.Investment, error) {
	investment, err := s.fundInvestment(ctx, ownerID, req, meta)
	if err != nil && !errors.Is(err, apperrors.ErrInsufficientFunds) && !errors.Is(err, apperrors.ErrForbidden) {
		s.auditSvc.Record(ctx, &ownerID, domain.EventInvestmentFunded, map[string]any{
			"sourceHoldingID": req.SourceHoldingID,
			"amount":          req.Amount.String(),
			"type":            string(req.Type),
			"status":          "FAILED",
			"reason":          err.Error(),
		}, meta)
	}
	return investment, err
}

func (s *investmentService) fundInvestment(ctx context.Context, ownerID string, req dto.FundInvestmentRequest, meta dto.RequestMeta) (*domain.Investment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidInvestmentType(req.Type) {
		return nil, apperrors.NewAppError(400, "unknown investment type", apperrors.ErrInvalidInvestmentType)
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewAppError(400, "investment amount must be positive", apperrors.ErrValidation)
	}

	tx, err := s.holdingRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.holdingRepo.Rollback(ctx, tx) }()

	locked, err := s.holdingRepo.FindHoldingsByIDsForUpdate(ctx, tx, []string{req.SourceHoldingID})
	if err != nil {
		return nil, err
	}
	source := locked[req.SourceHoldingID]
	if source.OwnerID != ownerID {
		s.auditSvc.Record(ctx, &ownerID, domain.EventSuspiciousActivity, map[string]any{
			"reason":          "investment funding from holding not owned by actor",
			"sourceHoldingID": req.SourceHoldingID,
		}, meta)
		return nil, apperrors.NewAppError(403, "source holding does not belong to the actor", apperrors.ErrForbidden)
	}

	if _, err := s.holdingRepo.AdjustBalanceInTx(ctx, tx, source.HoldingID, req.Amount.Neg(), source.Version, ownerID); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			_ = s.holdingRepo.Rollback(ctx, tx)
			s.auditSvc.Record(ctx, &ownerID, domain.EventInvestmentFunded, map[string]any{
				"sourceHoldingID": req.SourceHoldingID,
				"amount":          req.Amount.String(),
				"type":            string(req.Type),
				"status":          "REJECTED",
				"reason":          "insufficient funds",
			}, meta)
			return nil, apperrors.ErrInsufficientFunds
		}
		return nil, err
	}

	now := time.Now()
	investment := domain.Investment{
		InvestmentID:    uuid.NewString(),
		OwnerID:         ownerID,
		SourceHoldingID: source.HoldingID,
		Amount:          req.Amount,
		Type:            req.Type,
		Status:          domain.InvestmentActive,
		CreatedAt:       now,
	}
	if err := s.investmentRepo.SaveInvestmentInTx(ctx, tx, investment); err != nil {
		return nil, err
	}

	funding := domain.Transfer{
		TransferID:      uuid.NewString(),
		SourceHoldingID: &source.HoldingID,
		Amount:          req.Amount,
		CurrencyCode:    source.CurrencyCode,
		Status:          domain.TransferCompleted,
		Reason:          "investment funding",
		CreatedAt:       now,
		CreatedBy:       ownerID,
	}
	if err := s.transferRepo.SaveTransferInTx(ctx, tx, funding); err != nil {
		return nil, err
	}

	entry := newAuditEntry(&ownerID, domain.EventInvestmentFunded, map[string]any{
		"investmentID":    investment.InvestmentID,
		"sourceHoldingID": source.HoldingID,
		"amount":          req.Amount.String(),
		"type":            string(req.Type),
	}, meta)
	if err := s.auditRepo.AppendEntryInTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := s.holdingRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Investment funded",
		slog.String("investment_id", investment.InvestmentID),
		slog.String("owner_id", ownerID),
		slog.String("amount", req.Amount.String()),
		slog.String("type", string(req.Type)),
	)
	publishEvent(ctx, s.publisher, "ledger.investment.funded", dto.ToInvestmentResponse(&investment))
	return &investment, nil
}

// ListInvestmentsByOwner retrieves the owner's investments, newest first.
func (s *investmentService) ListInvestmentsByOwner(ctx context.Context, ownerID string) ([]domain.Investment, error) {
	return s.investmentRepo.ListInvestmentsByOwner(ctx, ownerID)
}

var _ portssvc.InvestmentSvcFacade = (*investmentService)(nil)

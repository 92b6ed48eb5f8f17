package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
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

type holdingService struct {
	holdingRepo  portsrepo.HoldingRepositoryWithTx
	transferRepo portsrepo.TransferRepositoryFacade
	auditRepo    portsrepo.AuditRepositoryFacade
	auditSvc     portssvc.AuditSvcFacade
	publisher    portssvc.EventPublisher
}

// NewHoldingService creates a new holding lifecycle service.
func NewHoldingService(
	holdingRepo portsrepo.HoldingRepositoryWithTx,
	transferRepo portsrepo.TransferRepositoryFacade,
	auditRepo portsrepo.AuditRepositoryFacade,
	auditSvc portssvc.AuditSvcFacade,
	publisher portssvc.EventPublisher,
) portssvc.HoldingSvcFacade {
	return &holdingService{
		holdingRepo:  holdingRepo,
		transferRepo: transferRepo,
		auditRepo:    auditRepo,
		auditSvc:     auditSvc,
		publisher:    publisher,
	}
}

// newHoldingNumber generates the human-facing holding number, an ACC prefix
// followed by sixteen digits.
func newHoldingNumber() string {
	return fmt.Sprintf("ACC%08d%08d", rand.Intn(100000000), rand.Intn(100000000))
}

// OpenHolding creates a new zero-balance holding. The owner's first holding
// becomes the primary regardless of the request flag; a second primary for
// the same owner is rejected.
func (s *holdingService) OpenHolding(ctx context.Context, ownerID string, req dto.OpenHoldingRequest, meta dto.RequestMeta) (*domain.Holding, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	isPrimary := req.IsPrimary
	_, err := s.holdingRepo.FindPrimaryHoldingByOwner(ctx, ownerID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		isPrimary = true
	case err != nil:
		return nil, err
	case isPrimary:
		return nil, apperrors.NewAppError(400, "owner already has a primary holding", apperrors.ErrValidation)
	}

	now := time.Now()
	holding := domain.Holding{
		HoldingID:    uuid.NewString(),
		OwnerID:      ownerID,
		Kind:         req.Kind,
		Number:       newHoldingNumber(),
		Balance:      decimal.Zero,
		CurrencyCode: req.CurrencyCode,
		Version:      1,
		IsPrimary:    isPrimary,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.holdingRepo.SaveHolding(ctx, holding); err != nil {
		logger.Error("Failed to save holding", slog.String("error", err.Error()), slog.String("holding_id", holding.HoldingID))
		return nil, err
	}

	s.auditSvc.Record(ctx, &ownerID, domain.EventAccountOpened, map[string]any{
		"holdingID":    holding.HoldingID,
		"number":       holding.Number,
		"kind":         string(holding.Kind),
		"currencyCode": holding.CurrencyCode,
	}, meta)
	publishEvent(ctx, s.publisher, "ledger.holding.opened", dto.ToHoldingResponse(&holding))

	logger.Info("Holding opened", slog.String("holding_id", holding.HoldingID), slog.String("owner_id", ownerID))
	return &holding, nil
}

// GetHoldingByID retrieves a single holding.
func (s *holdingService) GetHoldingByID(ctx context.Context, holdingID string) (*domain.Holding, error) {
	holding, err := s.holdingRepo.FindHoldingByID(ctx, holdingID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find holding", slog.String("error", err.Error()), slog.String("holding_id", holdingID))
		}
		return nil, err
	}
	return holding, nil
}

// ListHoldingsByOwner retrieves the owner's holdings, newest first.
func (s *holdingService) ListHoldingsByOwner(ctx context.Context, ownerID string) ([]domain.Holding, error) {
	return s.holdingRepo.ListHoldingsByOwner(ctx, ownerID)
}

// CloseHolding refunds any remaining balance to the owner's primary holding
// and deletes the holding, in one transaction. The refund is recorded as a
// completed transfer so the movement stays on the ledger.
func (s *holdingService) CloseHolding(ctx context.Context, ownerID string, holdingID string, meta dto.RequestMeta) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	holding, err := s.holdingRepo.FindHoldingByID(ctx, holdingID)
	if err != nil {
		return err
	}
	if holding.OwnerID != ownerID {
		s.auditSvc.Record(ctx, &ownerID, domain.EventSuspiciousActivity, map[string]any{
			"reason":    "close attempt on holding not owned by actor",
			"holdingID": holdingID,
		}, meta)
		return apperrors.NewAppError(403, "holding does not belong to the actor", apperrors.ErrForbidden)
	}
	if holding.IsPrimary {
		return apperrors.NewAppError(400, "primary holding cannot be closed", apperrors.ErrValidation)
	}

	var primary *domain.Holding
	if holding.Balance.IsPositive() {
		primary, err = s.holdingRepo.FindPrimaryHoldingByOwner(ctx, ownerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewAppError(400, "no primary holding to receive the refund", apperrors.ErrValidation)
			}
			return err
		}
		if primary.CurrencyCode != holding.CurrencyCode {
			return apperrors.ErrCurrencyMismatch
		}
	}

	tx, err := s.holdingRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.holdingRepo.Rollback(ctx, tx) }()

	lockIDs := []string{holdingID}
	if primary != nil {
		lockIDs = append(lockIDs, primary.HoldingID)
	}
	locked, err := s.holdingRepo.FindHoldingsByIDsForUpdate(ctx, tx, lockIDs)
	if err != nil {
		return err
	}

	closing := locked[holdingID]
	refund := closing.Balance
	if refund.IsPositive() {
		if primary == nil {
			// Balance appeared between the unlocked read and the lock.
			return apperrors.ErrConflict
		}
		target := locked[primary.HoldingID]
		if _, err := s.holdingRepo.AdjustBalanceInTx(ctx, tx, closing.HoldingID, refund.Neg(), closing.Version, ownerID); err != nil {
			return err
		}
		if _, err := s.holdingRepo.AdjustBalanceInTx(ctx, tx, target.HoldingID, refund, target.Version, ownerID); err != nil {
			return err
		}

		refundTransfer := domain.Transfer{
			TransferID:      uuid.NewString(),
			SourceHoldingID: &closing.HoldingID,
			DestHoldingID:   &target.HoldingID,
			Amount:          refund,
			CurrencyCode:    closing.CurrencyCode,
			Status:          domain.TransferCompleted,
			Reason:          "holding closure refund",
			CreatedAt:       time.Now(),
			CreatedBy:       ownerID,
		}
		if err := s.transferRepo.SaveTransferInTx(ctx, tx, refundTransfer); err != nil {
			return err
		}
	}

	if err := s.holdingRepo.DeleteHoldingInTx(ctx, tx, holdingID); err != nil {
		return err
	}

	entry := newAuditEntry(&ownerID, domain.EventAccountClosed, map[string]any{
		"holdingID": holdingID,
		"number":    holding.Number,
		"refund":    refund.String(),
	}, meta)
	if err := s.auditRepo.AppendEntryInTx(ctx, tx, entry); err != nil {
		return err
	}

	if err := s.holdingRepo.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("Holding closed",
		slog.String("holding_id", holdingID),
		slog.String("owner_id", ownerID),
		slog.String("refund", refund.String()),
	)
	publishEvent(ctx, s.publisher, "ledger.holding.closed", map[string]any{
		"holdingID": holdingID,
		"ownerID":   ownerID,
		"refund":    refund.String(),
	})
	return nil
}

var _ portssvc.HoldingSvcFacade = (*holdingService)(nil)

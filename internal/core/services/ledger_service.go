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

// maxConflictRetries bounds the number of fresh attempts after a holding
// version conflict before the transfer fails with ErrContention.
const maxConflictRetries = 3

type ledgerService struct {
	holdingRepo  portsrepo.HoldingRepositoryWithTx
	transferRepo portsrepo.TransferRepositoryFacade
	auditRepo    portsrepo.AuditRepositoryFacade
	auditSvc     portssvc.AuditSvcFacade
	publisher    portssvc.EventPublisher // nil when the broker is disabled
}

// NewLedgerService creates the transfer engine.
func NewLedgerService(
	holdingRepo portsrepo.HoldingRepositoryWithTx,
	transferRepo portsrepo.TransferRepositoryFacade,
	auditRepo portsrepo.AuditRepositoryFacade,
	auditSvc portssvc.AuditSvcFacade,
	publisher portssvc.EventPublisher,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		holdingRepo:  holdingRepo,
		transferRepo: transferRepo,
		auditRepo:    auditRepo,
		auditSvc:     auditSvc,
		publisher:    publisher,
	}
}

// Transfer moves amount from the actor's source holding to the destination
// holding. Debit, credit, transfer row and audit entry commit in one
// database transaction; either all of them persist or none do. Every
// invocation leaves exactly one audit entry: the success path writes it
// inside the transaction, insufficient funds writes it with the REJECTED
// row, an ownership violation writes a SUSPICIOUS_ACTIVITY entry, and all
// other failures are recorded here.
func (s *ledgerService) Transfer(ctx context.Context, actorID string, req dto.CreateTransferRequest, meta dto.RequestMeta) (*portssvc.TransferResult, error) {
	result, err := s.transfer(ctx, actorID, req, meta)
	if err != nil && !errors.Is(err, apperrors.ErrInsufficientFunds) && !errors.Is(err, apperrors.ErrForbidden) {
		s.auditSvc.Record(ctx, &actorID, domain.EventTransfer, map[string]any{
			"sourceHoldingID": req.SourceHoldingID,
			"destHoldingID":   req.DestHoldingID,
			"amount":          req.Amount.String(),
			"status":          string(domain.TransferFailed),
			"reason":          err.Error(),
		}, meta)
	}
	return result, err
}

func (s *ledgerService) transfer(ctx context.Context, actorID string, req dto.CreateTransferRequest, meta dto.RequestMeta) (*portssvc.TransferResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, apperrors.NewAppError(400, "transfer amount must be positive", apperrors.ErrValidation)
	}
	if req.SourceHoldingID == req.DestHoldingID {
		return nil, apperrors.ErrSelfTransfer
	}

	for attempt := 1; attempt <= maxConflictRetries; attempt++ {
		result, err := s.transferOnce(ctx, actorID, req, meta)
		if err != nil && errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Transfer hit version conflict, retrying from fresh read",
				slog.Int("attempt", attempt),
				slog.String("source_holding_id", req.SourceHoldingID),
			)
			continue
		}
		return result, err
	}

	logger.Warn("Transfer retries exhausted",
		slog.String("source_holding_id", req.SourceHoldingID),
		slog.String("dest_holding_id", req.DestHoldingID),
	)
	return nil, apperrors.ErrContention
}

// transferOnce runs a single attempt inside one transaction. A returned
// apperrors.ErrConflict means the caller may retry from a fresh read.
func (s *ledgerService) transferOnce(ctx context.Context, actorID string, req dto.CreateTransferRequest, meta dto.RequestMeta) (*portssvc.TransferResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.holdingRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// Rollback is a no-op if the transaction commits.
	defer func() { _ = s.holdingRepo.Rollback(ctx, tx) }()

	locked, err := s.holdingRepo.FindHoldingsByIDsForUpdate(ctx, tx, []string{req.SourceHoldingID, req.DestHoldingID})
	if err != nil {
		return nil, err
	}
	source := locked[req.SourceHoldingID]
	dest := locked[req.DestHoldingID]

	if source.OwnerID != actorID {
		s.auditSvc.Record(ctx, &actorID, domain.EventSuspiciousActivity, map[string]any{
			"reason":          "transfer from holding not owned by actor",
			"sourceHoldingID": req.SourceHoldingID,
		}, meta)
		return nil, apperrors.NewAppError(403, "source holding does not belong to the actor", apperrors.ErrForbidden)
	}
	if source.CurrencyCode != dest.CurrencyCode || source.CurrencyCode != req.CurrencyCode {
		return nil, apperrors.ErrCurrencyMismatch
	}

	debited, err := s.holdingRepo.AdjustBalanceInTx(ctx, tx, source.HoldingID, req.Amount.Neg(), source.Version, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			// The rejection itself is recorded, outside the aborted
			// transaction, so the attempt stays visible.
			_ = s.holdingRepo.Rollback(ctx, tx)
			return nil, s.recordRejectedTransfer(ctx, actorID, req, source.CurrencyCode, meta)
		}
		return nil, err
	}

	credited, err := s.holdingRepo.AdjustBalanceInTx(ctx, tx, dest.HoldingID, req.Amount, dest.Version, actorID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	transfer := domain.Transfer{
		TransferID:      uuid.NewString(),
		SourceHoldingID: &source.HoldingID,
		DestHoldingID:   &dest.HoldingID,
		Amount:          req.Amount,
		CurrencyCode:    source.CurrencyCode,
		Status:          domain.TransferCompleted,
		CreatedAt:       now,
		CreatedBy:       actorID,
	}
	if err := s.transferRepo.SaveTransferInTx(ctx, tx, transfer); err != nil {
		return nil, err
	}

	entry := newAuditEntry(&actorID, domain.EventTransfer, map[string]any{
		"transferID":      transfer.TransferID,
		"sourceHoldingID": source.HoldingID,
		"destHoldingID":   dest.HoldingID,
		"amount":          req.Amount.String(),
		"currencyCode":    source.CurrencyCode,
		"status":          string(domain.TransferCompleted),
	}, meta)
	if err := s.auditRepo.AppendEntryInTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := s.holdingRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Transfer completed",
		slog.String("transfer_id", transfer.TransferID),
		slog.String("amount", req.Amount.String()),
		slog.String("source_holding_id", source.HoldingID),
		slog.String("dest_holding_id", dest.HoldingID),
	)
	publishEvent(ctx, s.publisher, "ledger.transfer.completed", dto.ToTransferResponse(&transfer))

	return &portssvc.TransferResult{
		Transfer:      transfer,
		SourceBalance: debited.Balance,
		DestBalance:   credited.Balance,
	}, nil
}

// recordRejectedTransfer persists the REJECTED transfer row and its audit
// entry after the balance transaction was rolled back, then returns
// ErrInsufficientFunds for the caller.
func (s *ledgerService) recordRejectedTransfer(ctx context.Context, actorID string, req dto.CreateTransferRequest, currencyCode string, meta dto.RequestMeta) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	rejected := domain.Transfer{
		TransferID:      uuid.NewString(),
		SourceHoldingID: &req.SourceHoldingID,
		DestHoldingID:   &req.DestHoldingID,
		Amount:          req.Amount,
		CurrencyCode:    currencyCode,
		Status:          domain.TransferRejected,
		Reason:          "insufficient funds",
		CreatedAt:       time.Now(),
		CreatedBy:       actorID,
	}
	if err := s.transferRepo.SaveTransfer(ctx, rejected); err != nil {
		logger.Error("Failed to persist rejected transfer row",
			slog.String("error", err.Error()),
			slog.String("transfer_id", rejected.TransferID),
		)
	}

	s.auditSvc.Record(ctx, &actorID, domain.EventTransfer, map[string]any{
		"transferID":      rejected.TransferID,
		"sourceHoldingID": req.SourceHoldingID,
		"destHoldingID":   req.DestHoldingID,
		"amount":          req.Amount.String(),
		"status":          string(domain.TransferRejected),
		"reason":          rejected.Reason,
	}, meta)

	return apperrors.ErrInsufficientFunds
}

// GetTransferByID retrieves a transfer. The actor must have created the
// transfer or own one of its legs.
func (s *ledgerService) GetTransferByID(ctx context.Context, actorID string, transferID string) (*domain.Transfer, error) {
	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if transfer.CreatedBy == actorID {
		return transfer, nil
	}
	for _, legID := range []*string{transfer.SourceHoldingID, transfer.DestHoldingID} {
		if legID == nil {
			continue
		}
		holding, err := s.holdingRepo.FindHoldingByID(ctx, *legID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if holding.OwnerID == actorID {
			return transfer, nil
		}
	}
	return nil, apperrors.ErrForbidden
}

// ListTransfersByHolding retrieves transfers touching one of the actor's
// holdings, newest first.
func (s *ledgerService) ListTransfersByHolding(ctx context.Context, actorID string, holdingID string, limit int) ([]domain.Transfer, error) {
	holding, err := s.holdingRepo.FindHoldingByID(ctx, holdingID)
	if err != nil {
		return nil, err
	}
	if holding.OwnerID != actorID {
		return nil, apperrors.ErrForbidden
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return s.transferRepo.ListTransfersByHolding(ctx, holdingID, limit)
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

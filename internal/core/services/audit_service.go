package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openvault/digibank/internal/core/domain"
	portsrepo "github.com/openvault/digibank/internal/core/ports/repositories"
	portssvc "github.com/openvault/digibank/internal/core/ports/services"
	"github.com/openvault/digibank/internal/dto"
	"github.com/openvault/digibank/internal/middleware"
)

type auditService struct {
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates a new audit service.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

// Record appends one audit entry. Unknown kinds are coerced to UNCLASSIFIED
// with the original kind preserved in the entry detail. Persistence failures
// are routed to the structured log as a fallback sink so the caller's
// operation is never aborted by its own audit write.
func (s *auditService) Record(ctx context.Context, actorID *string, kind domain.EventKind, detail map[string]any, meta dto.RequestMeta) {
	logger := middleware.GetLoggerFromCtx(ctx)

	coerced := domain.CoerceEventKind(kind)
	if coerced != kind {
		if detail == nil {
			detail = map[string]any{}
		}
		detail["originalKind"] = string(kind)
	}

	entry := domain.AuditEntry{
		EntryID:   uuid.NewString(),
		ActorID:   actorID,
		Kind:      coerced,
		Detail:    detail,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		CreatedAt: time.Now(),
	}

	if err := s.auditRepo.AppendEntry(ctx, entry); err != nil {
		logger.Error("Audit entry persistence failed, falling back to log sink",
			slog.String("error", err.Error()),
			slog.String("kind", string(entry.Kind)),
			slog.Any("detail", entry.Detail),
		)
	}
}

// ListForActor retrieves audit entries for a single actor, newest first.
func (s *auditService) ListForActor(ctx context.Context, actorID string, limit int) ([]domain.AuditEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	entries, err := s.auditRepo.ListEntriesByActor(ctx, actorID, limit)
	if err != nil {
		logger.Error("Failed to list audit entries", slog.String("error", err.Error()), slog.String("actor_id", actorID))
		return nil, err
	}
	return entries, nil
}

// newAuditEntry builds a success-path audit entry for callers that append it
// inside their own transaction via AppendEntryInTx.
func newAuditEntry(actorID *string, kind domain.EventKind, detail map[string]any, meta dto.RequestMeta) domain.AuditEntry {
	return domain.AuditEntry{
		EntryID:   uuid.NewString(),
		ActorID:   actorID,
		Kind:      domain.CoerceEventKind(kind),
		Detail:    detail,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		CreatedAt: time.Now(),
	}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

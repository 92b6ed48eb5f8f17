package services

import (
	"context"

	"github.com/openvault/digibank/internal/core/domain"
	"github.com/openvault/digibank/internal/dto"
)

// AuditSvcFacade records and serves the append-only audit trail.
type AuditSvcFacade interface {
	// Record appends one entry describing an attempted or completed
	// operation. It never returns an error that should abort the caller:
	// persistence failures are routed to a fallback log sink instead.
	Record(ctx context.Context, actorID *string, kind domain.EventKind, detail map[string]any, meta dto.RequestMeta)

	// ListForActor retrieves entries for an actor, newest first.
	ListForActor(ctx context.Context, actorID string, limit int) ([]domain.AuditEntry, error)
}

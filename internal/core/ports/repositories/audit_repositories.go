package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/openvault/digibank/internal/core/domain"
)

// AuditWriter defines append operations for the audit trail. The table is
// append-only: there is no update or delete.
type AuditWriter interface {
	// AppendEntry persists a single audit entry.
	AppendEntry(ctx context.Context, entry domain.AuditEntry) error

	// AppendEntryInTx persists an audit entry inside tx so that success-path
	// entries commit atomically with the mutation they describe.
	AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditEntry) error
}

// AuditReader defines read operations for the audit trail.
type AuditReader interface {
	// ListEntriesByActor retrieves entries for an actor, newest first.
	ListEntriesByActor(ctx context.Context, actorID string, limit int) ([]domain.AuditEntry, error)
}

// AuditRepositoryFacade combines all audit-related repository interfaces.
type AuditRepositoryFacade interface {
	AuditWriter
	AuditReader
}

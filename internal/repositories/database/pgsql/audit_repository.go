package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openvault/digibank/internal/apperrors"
	"github.com/openvault/digibank/internal/core/domain"
	portsrepo "github.com/openvault/digibank/internal/core/ports/repositories"
	"github.com/openvault/digibank/internal/models"
	"github.com/openvault/digibank/internal/utils/mapping"
)

const auditColumns = `entry_id, actor_id, kind, detail, ip_address, user_agent, created_at`

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the append-only audit trail.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepositoryFacade
var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

const insertAuditQuery = `
	INSERT INTO audit_entries (` + auditColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

func auditArgs(m models.AuditEntry) []any {
	return []any{
		m.EntryID,
		m.ActorID,
		m.Kind,
		m.Detail,
		m.IPAddress,
		m.UserAgent,
		m.CreatedAt,
	}
}

// AppendEntry persists a single audit entry.
func (r *PgxAuditRepository) AppendEntry(ctx context.Context, entry domain.AuditEntry) error {
	m := mapping.ToModelAuditEntry(entry)
	if _, err := r.Pool.Exec(ctx, insertAuditQuery, auditArgs(m)...); err != nil {
		return apperrors.NewStorageFault("failed to append audit entry "+m.EntryID, err)
	}
	return nil
}

// AppendEntryInTx persists an audit entry inside the caller's transaction so
// success-path entries commit atomically with the mutation they describe.
func (r *PgxAuditRepository) AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditEntry) error {
	m := mapping.ToModelAuditEntry(entry)
	if _, err := tx.Exec(ctx, insertAuditQuery, auditArgs(m)...); err != nil {
		return apperrors.NewStorageFault("failed to append audit entry "+m.EntryID, err)
	}
	return nil
}

// ListEntriesByActor retrieves entries for an actor, newest first.
func (r *PgxAuditRepository) ListEntriesByActor(ctx context.Context, actorID string, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + auditColumns + `
		FROM audit_entries
		WHERE actor_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, actorID, limit)
	if err != nil {
		return nil, apperrors.NewStorageFault("failed to query audit entries for actor "+actorID, err)
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var m models.AuditEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.ActorID,
			&m.Kind,
			&m.Detail,
			&m.IPAddress,
			&m.UserAgent,
			&m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewStorageFault("failed to scan audit entry row for actor "+actorID, err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageFault("error iterating audit entry rows for actor "+actorID, err)
	}

	return mapping.ToDomainAuditEntrySlice(entries), nil
}

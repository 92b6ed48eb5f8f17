package models

import "time"

// AuditEntry is the persistence model for the append-only audit_entries
// table. Detail is stored as JSONB.
type AuditEntry struct {
	EntryID   string         `db:"entry_id"`
	ActorID   *string        `db:"actor_id"`
	Kind      string         `db:"kind"`
	Detail    map[string]any `db:"detail"`
	IPAddress string         `db:"ip_address"`
	UserAgent string         `db:"user_agent"`
	CreatedAt time.Time      `db:"created_at"`
}

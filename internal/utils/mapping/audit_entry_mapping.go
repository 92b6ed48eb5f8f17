package mapping

import (
	"github.com/openvault/digibank/internal/core/domain"
	"github.com/openvault/digibank/internal/models"
)

// ToModelAuditEntry converts a domain AuditEntry to a model AuditEntry
func ToModelAuditEntry(d domain.AuditEntry) models.AuditEntry {
	return models.AuditEntry{
		EntryID:   d.EntryID,
		ActorID:   d.ActorID,
		Kind:      string(d.Kind),
		Detail:    d.Detail,
		IPAddress: d.IPAddress,
		UserAgent: d.UserAgent,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainAuditEntry converts a model AuditEntry to a domain AuditEntry
func ToDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		EntryID:   m.EntryID,
		ActorID:   m.ActorID,
		Kind:      domain.EventKind(m.Kind),
		Detail:    m.Detail,
		IPAddress: m.IPAddress,
		UserAgent: m.UserAgent,
		CreatedAt: m.CreatedAt,
	}
}

// ToDomainAuditEntrySlice converts a slice of model AuditEntries to domain AuditEntries
func ToDomainAuditEntrySlice(ms []models.AuditEntry) []domain.AuditEntry {
	ds := make([]domain.AuditEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditEntry(m)
	}
	return ds
}

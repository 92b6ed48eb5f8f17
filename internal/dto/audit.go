package dto

import (
	"time"

	"github.com/openvault/digibank/internal/core/domain"
)

// AuditEntryResponse defines the data returned for an audit entry.
type AuditEntryResponse struct {
	EntryID   string           `json:"entryID"`
	ActorID   *string          `json:"actorID,omitempty"`
	Kind      domain.EventKind `json:"kind"`
	Detail    map[string]any   `json:"detail"`
	IPAddress string           `json:"ipAddress,omitempty"`
	UserAgent string           `json:"userAgent,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ListAuditParams defines query parameters for listing audit entries.
type ListAuditParams struct {
	Limit int `form:"limit,default=50"`
}

// ToAuditEntryResponse converts a domain.AuditEntry to AuditEntryResponse DTO
func ToAuditEntryResponse(e *domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		EntryID:   e.EntryID,
		ActorID:   e.ActorID,
		Kind:      e.Kind,
		Detail:    e.Detail,
		IPAddress: e.IPAddress,
		UserAgent: e.UserAgent,
		CreatedAt: e.CreatedAt,
	}
}

// ToAuditEntryResponses converts a slice of domain.AuditEntry to DTOs
func ToAuditEntryResponses(es []domain.AuditEntry) []AuditEntryResponse {
	res := make([]AuditEntryResponse, len(es))
	for i := range es {
		res[i] = ToAuditEntryResponse(&es[i])
	}
	return res
}

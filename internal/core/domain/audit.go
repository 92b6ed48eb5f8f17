package domain

import "time"

// EventKind is the closed enumeration of auditable events.
type EventKind string

const (
	EventAccountOpened      EventKind = "ACCOUNT_OPENED"
	EventAccountClosed      EventKind = "ACCOUNT_CLOSED"
	EventTransfer           EventKind = "TRANSFER"
	EventLoanApplication    EventKind = "LOAN_APPLICATION"
	EventLoanApproval       EventKind = "LOAN_APPROVAL"
	EventLoanRejection      EventKind = "LOAN_REJECTION"
	EventInvestmentFunded   EventKind = "INVESTMENT_FUNDED"
	EventSuspiciousActivity EventKind = "SUSPICIOUS_ACTIVITY"
	EventUnclassified       EventKind = "UNCLASSIFIED"
)

var knownEventKinds = map[EventKind]struct{}{
	EventAccountOpened:      {},
	EventAccountClosed:      {},
	EventTransfer:           {},
	EventLoanApplication:    {},
	EventLoanApproval:       {},
	EventLoanRejection:      {},
	EventInvestmentFunded:   {},
	EventSuspiciousActivity: {},
	EventUnclassified:       {},
}

// CoerceEventKind maps unknown kinds to UNCLASSIFIED so no event is ever
// silently dropped. The original kind is preserved by the caller in the
// entry detail.
func CoerceEventKind(kind EventKind) EventKind {
	if _, ok := knownEventKinds[kind]; ok {
		return kind
	}
	return EventUnclassified
}

// AuditEntry is an append-only record of an attempted or completed
// balance-affecting operation. Entries are never mutated or deleted.
type AuditEntry struct {
	EntryID   string         `json:"entryID"`
	ActorID   *string        `json:"actorID"` // nil for system/unauthenticated events
	Kind      EventKind      `json:"kind"`
	Detail    map[string]any `json:"detail"`
	IPAddress string         `json:"ipAddress"`
	UserAgent string         `json:"userAgent"`
	CreatedAt time.Time      `json:"createdAt"`
}

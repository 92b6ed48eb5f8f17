package dto

// RequestMeta carries the client metadata recorded on every audit entry.
// The HTTP layer fills it from the inbound request; system-initiated
// operations leave it zero.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

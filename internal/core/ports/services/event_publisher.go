package services

import "context"

// EventPublisher pushes ledger events to the message broker after the
// database transaction they describe has committed. Publishing is
// best-effort: a broker outage must never fail or roll back a transfer.
type EventPublisher interface {
	// Publish sends the payload under the given routing key.
	Publish(ctx context.Context, routingKey string, payload any) error

	// Close releases the broker connection.
	Close()
}

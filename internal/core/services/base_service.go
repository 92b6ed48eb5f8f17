package services

import (
	"context"
	"log/slog"

	portssvc "github.com/openvault/digibank/internal/core/ports/services"
	"github.com/openvault/digibank/internal/middleware"
)

// publishEvent pushes a post-commit event to the broker. A nil publisher
// means the broker is disabled. Broker failures are logged and swallowed;
// the committed transaction stands either way.
func publishEvent(ctx context.Context, publisher portssvc.EventPublisher, routingKey string, payload any) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, routingKey, payload); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Event publish failed",
			slog.String("routing_key", routingKey),
			slog.String("error", err.Error()),
		)
	}
}

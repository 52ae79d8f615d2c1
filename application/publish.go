package application

import (
	"context"
	"log/slog"

	"github.com/fazlanhoxton/hxt-events/domain/activity"
	"github.com/fazlanhoxton/hxt-events/infrastructure/messaging/kafka"
	"github.com/fazlanhoxton/hxt-events/infrastructure/metrics"
)

// publishActivity is best effort: the admin action already happened upstream,
// so a broker failure is logged and counted but never returned.
func publishActivity(ctx context.Context, publisher kafka.ActivityPublisher, a *activity.Activity) {
	a.RequestID = activity.RequestIDFrom(ctx)

	if err := publisher.Publish(ctx, a); err != nil {
		metrics.ActivityPublishedTotal.WithLabelValues(a.Kind, "error").Inc()
		slog.Warn("Failed to publish activity",
			"kind", a.Kind,
			"entityID", a.EntityID,
			"requestID", a.RequestID,
			"error", err,
		)
	}
}

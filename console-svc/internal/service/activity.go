package service

import (
	"context"
	"log/slog"
	"time"

	"event-console/console-svc/internal/domain"
)

// activity publishes write notifications. A failed publish is logged and
// never reported to the caller.
type activity struct {
	publisher ActivityPublisher
	now       func() time.Time
}

func newActivity(publisher ActivityPublisher) activity {
	return activity{publisher: publisher, now: time.Now}
}

func (a activity) record(ctx context.Context, eventType, entity string, id, count int) {
	if a.publisher == nil {
		return
	}
	event := domain.ActivityEvent{
		Type:      eventType,
		Entity:    entity,
		ID:        id,
		Count:     count,
		Timestamp: a.now().UTC(),
	}
	if err := a.publisher.PublishActivity(ctx, event); err != nil {
		slog.WarnContext(ctx, "publish activity event failed",
			slog.String("type", eventType),
			slog.String("entity", entity),
			slog.Any("error", err))
	}
}

// removePhoto deletes a stored photo, logging failures.
func removePhoto(ctx context.Context, photos PhotoStore, path string) {
	if photos == nil || path == "" {
		return
	}
	if err := photos.Remove(path); err != nil {
		slog.WarnContext(ctx, "remove photo failed", slog.String("path", path), slog.Any("error", err))
	}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"event-console/stats-svc/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/kafka-go"
)

var eventsConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "stats_activity_events_total",
	Help: "Console activity events consumed by outcome.",
}, []string{"outcome"})

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

const defaultRetryDelay = time.Second

type Consumer struct {
	Reader MessageReader
	Cache  SnapshotCache
	Feed   ActivityFeed
	// RetryDelay is the pause after a failed read.
	RetryDelay time.Duration
}

func NewConsumer(reader MessageReader, cache SnapshotCache, feed ActivityFeed) *Consumer {
	return &Consumer{Reader: reader, Cache: cache, Feed: feed, RetryDelay: defaultRetryDelay}
}

// Start reads until ctx is cancelled or the reader is closed.
func (c *Consumer) Start(ctx context.Context) {
	slog.Info("activity consumer started")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				slog.Info("activity consumer stopped")
				return
			}
			if errors.Is(err, io.EOF) {
				slog.Info("activity reader closed, consumer stopped")
				return
			}
			slog.Error("read activity message failed", slog.Any("error", err))
			select {
			case <-ctx.Done():
				slog.Info("activity consumer stopped")
				return
			case <-time.After(c.RetryDelay):
			}
			continue
		}

		var event domain.ActivityEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			eventsConsumed.WithLabelValues("malformed").Inc()
			slog.Warn("skipping malformed activity message",
				slog.Int64("offset", message.Offset),
				slog.Any("error", err))
			continue
		}
		c.ProcessEvent(ctx, event)
	}
}

// ProcessEvent records event in the feed and drops the cached snapshot.
func (c *Consumer) ProcessEvent(ctx context.Context, event domain.ActivityEvent) {
	if event.Type == "" || event.Entity == "" {
		eventsConsumed.WithLabelValues("malformed").Inc()
		return
	}

	if err := c.Feed.PushActivity(ctx, event); err != nil {
		eventsConsumed.WithLabelValues("failed").Inc()
		slog.ErrorContext(ctx, "push activity failed", slog.Any("error", err))
	}
	if err := c.Cache.InvalidateSnapshot(ctx); err != nil {
		eventsConsumed.WithLabelValues("failed").Inc()
		slog.ErrorContext(ctx, "invalidate snapshot failed", slog.Any("error", err))
		return
	}

	eventsConsumed.WithLabelValues("processed").Inc()
	slog.DebugContext(ctx, "activity processed",
		slog.String("type", event.Type),
		slog.String("entity", event.Entity),
		slog.Int("id", event.ID))
}

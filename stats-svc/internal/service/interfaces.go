package service

import (
	"context"

	"event-console/stats-svc/internal/domain"
)

type CountStore interface {
	CountRows(ctx context.Context, counter string) (int, error)
	UpcomingPerformances(ctx context.Context, limit int) ([]domain.UpcomingEvent, error)
}

type SnapshotCache interface {
	GetSnapshot(ctx context.Context) (*domain.Snapshot, error)
	SetSnapshot(ctx context.Context, snap *domain.Snapshot) error
	InvalidateSnapshot(ctx context.Context) error
}

type ActivityFeed interface {
	PushActivity(ctx context.Context, event domain.ActivityEvent) error
	RecentActivity(ctx context.Context, limit int) ([]domain.ActivityEvent, error)
}

type StatsInterface interface {
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
	RecentActivity(ctx context.Context, limit int) ([]domain.ActivityEvent, error)
}

var _ StatsInterface = (*StatsService)(nil)

// Package mocks holds testify mocks for the stats-svc interfaces.
package mocks

import (
	"context"

	"event-console/stats-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

type CountStore struct {
	mock.Mock
}

func (m *CountStore) CountRows(ctx context.Context, counter string) (int, error) {
	args := m.Called(ctx, counter)
	return args.Int(0), args.Error(1)
}

func (m *CountStore) UpcomingPerformances(ctx context.Context, limit int) ([]domain.UpcomingEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UpcomingEvent), args.Error(1)
}

type SnapshotCache struct {
	mock.Mock
}

func (m *SnapshotCache) GetSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *SnapshotCache) SetSnapshot(ctx context.Context, snap *domain.Snapshot) error {
	return m.Called(ctx, snap).Error(0)
}

func (m *SnapshotCache) InvalidateSnapshot(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type ActivityFeed struct {
	mock.Mock
}

func (m *ActivityFeed) PushActivity(ctx context.Context, event domain.ActivityEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *ActivityFeed) RecentActivity(ctx context.Context, limit int) ([]domain.ActivityEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityEvent), args.Error(1)
}

type StatsInterface struct {
	mock.Mock
}

func (m *StatsInterface) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *StatsInterface) RecentActivity(ctx context.Context, limit int) ([]domain.ActivityEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityEvent), args.Error(1)
}

// MessageReader returns queued errors, then queued messages, and then blocks
// until ctx ends.
type MessageReader struct {
	Errors   []error
	Messages []kafka.Message
	Reads    int
}

func (m *MessageReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	m.Reads++
	if len(m.Errors) > 0 {
		err := m.Errors[0]
		m.Errors = m.Errors[1:]
		return kafka.Message{}, err
	}
	if len(m.Messages) > 0 {
		msg := m.Messages[0]
		m.Messages = m.Messages[1:]
		return msg, nil
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

package storage

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"event-console/stats-svc/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisStore(rdb, time.Minute), mr
}

func TestRedisStore_SnapshotRoundTrip(t *testing.T) {
	store, mr := setupRedis(t)
	ctx := context.Background()

	_, err := store.GetSnapshot(ctx)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	snap := &domain.Snapshot{
		Performances: 3,
		Food:         2,
		Events:       []domain.UpcomingEvent{{Date: "1 July 2025", Name: "Band"}},
		GeneratedAt:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SetSnapshot(ctx, snap))
	assert.Equal(t, time.Minute, mr.TTL(SnapshotKey))

	got, err := store.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	require.NoError(t, store.InvalidateSnapshot(ctx))
	assert.False(t, mr.Exists(SnapshotKey))
}

func TestRedisStore_ActivityFeedIsTrimmed(t *testing.T) {
	store, mr := setupRedis(t)
	ctx := context.Background()

	for i := 1; i <= ActivityKeep+5; i++ {
		require.NoError(t, store.PushActivity(ctx, domain.ActivityEvent{Type: "created", Entity: "venues", ID: i}))
	}
	items, err := mr.List(ActivityKey)
	require.NoError(t, err)
	assert.Len(t, items, ActivityKeep)

	mr.Lpush(ActivityKey, "not json")

	events, err := store.RecentActivity(ctx, 3)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ActivityKeep+5, events[0].ID)
	assert.Equal(t, ActivityKeep+4, events[1].ID)
}

func TestPostgresStore_CountRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := NewPostgresStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM parking_spots")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := store.CountRows(context.Background(), "parking")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = store.CountRows(context.Background(), "users; DROP TABLE venues")
	assert.Error(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM venues")).WillReturnError(fmt.Errorf("boom"))
	_, err = store.CountRows(context.Background(), "venues")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpcomingPerformances(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := NewPostgresStore(db)
	store.now = func() time.Time { return time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC) }

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT s.date, p.artist FROM performance_slots s JOIN performances p ON p.id = s.performance_id WHERE s.date >= $1 ORDER BY s.date, s.start_time, p.id LIMIT 5")).
		WithArgs("2025-07-01").
		WillReturnRows(sqlmock.NewRows([]string{"date", "artist"}).
			AddRow(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), "Band A").
			AddRow(time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC), ""))

	events, err := store.UpcomingPerformances(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []domain.UpcomingEvent{
		{Date: "1 July 2025", Name: "Band A"},
		{Date: "12 July 2025", Name: "Unknown Artist"},
	}, events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

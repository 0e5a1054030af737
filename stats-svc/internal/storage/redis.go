package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"event-console/stats-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	SnapshotKey  = "stats:snapshot"
	ActivityKey  = "activity:recent"
	ActivityKeep = 50
)

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) GetSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	raw, err := s.rdb.Get(ctx, SnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

func (s *RedisStore) SetSnapshot(ctx context.Context, snap *domain.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, SnapshotKey, raw, s.ttl).Err()
}

func (s *RedisStore) InvalidateSnapshot(ctx context.Context) error {
	return s.rdb.Del(ctx, SnapshotKey).Err()
}

// PushActivity prepends event to the feed and trims it to ActivityKeep.
func (s *RedisStore) PushActivity(ctx context.Context, event domain.ActivityEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.LPush(ctx, ActivityKey, raw)
	pipe.LTrim(ctx, ActivityKey, 0, ActivityKeep-1)
	_, err = pipe.Exec(ctx)
	return err
}

// RecentActivity returns up to limit events, newest first. Entries that fail
// to decode are skipped.
func (s *RedisStore) RecentActivity(ctx context.Context, limit int) ([]domain.ActivityEvent, error) {
	if limit <= 0 || limit > ActivityKeep {
		limit = ActivityKeep
	}
	raw, err := s.rdb.LRange(ctx, ActivityKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read activity feed: %w", err)
	}
	events := make([]domain.ActivityEvent, 0, len(raw))
	for _, item := range raw {
		var e domain.ActivityEvent
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"event-console/stats-svc/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"
)

const upcomingLimit = 5

var snapshotLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "stats_snapshot_lookups_total",
	Help: "Dashboard snapshot reads by cache result.",
}, []string{"result"})

type StatsService struct {
	counts   CountStore
	cache    SnapshotCache
	feed     ActivityFeed
	counters []string
	now      func() time.Time
}

func NewStatsService(counts CountStore, cache SnapshotCache, feed ActivityFeed, counters []string) *StatsService {
	return &StatsService{counts: counts, cache: cache, feed: feed, counters: counters, now: time.Now}
}

// Snapshot serves the cached dashboard or rebuilds it from Postgres. Cache
// failures only cost a rebuild.
func (s *StatsService) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	snap, err := s.cache.GetSnapshot(ctx)
	if err == nil {
		snapshotLookups.WithLabelValues("hit").Inc()
		return snap, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		slog.WarnContext(ctx, "snapshot cache unavailable", slog.Any("error", err))
	}
	snapshotLookups.WithLabelValues("miss").Inc()

	snap, err = s.build(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetSnapshot(ctx, snap); err != nil {
		slog.WarnContext(ctx, "store snapshot failed", slog.Any("error", err))
	}
	return snap, nil
}

func (s *StatsService) build(ctx context.Context) (*domain.Snapshot, error) {
	counts := make([]int, len(s.counters))
	var events []domain.UpcomingEvent

	g, gctx := errgroup.WithContext(ctx)
	for i, counter := range s.counters {
		g.Go(func() error {
			n, err := s.counts.CountRows(gctx, counter)
			if err != nil {
				return err
			}
			counts[i] = n
			return nil
		})
	}
	g.Go(func() error {
		var err error
		events, err = s.counts.UpcomingPerformances(gctx, upcomingLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}

	snap := &domain.Snapshot{Events: events, GeneratedAt: s.now().UTC()}
	if snap.Events == nil {
		snap.Events = []domain.UpcomingEvent{}
	}
	for i, counter := range s.counters {
		switch counter {
		case "performances":
			snap.Performances = counts[i]
		case "experiences":
			snap.Experiences = counts[i]
		case "food":
			snap.Food = counts[i]
		case "parking":
			snap.Parking = counts[i]
		case "toilets":
			snap.Toilets = counts[i]
		case "venues":
			snap.Venues = counts[i]
		}
	}
	return snap, nil
}

func (s *StatsService) RecentActivity(ctx context.Context, limit int) ([]domain.ActivityEvent, error) {
	return s.feed.RecentActivity(ctx, limit)
}

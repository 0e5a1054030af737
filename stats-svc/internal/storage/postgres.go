package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"event-console/stats-svc/internal/domain"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// countable maps dashboard counters onto their tables. Nothing outside this
// map is ever interpolated into SQL.
var countable = map[string]string{
	"performances": "performances",
	"experiences":  "experiences",
	"food":         "food_places",
	"parking":      "parking_spots",
	"toilets":      "toilets",
	"venues":       "venues",
}

// Counters lists the keys CountRows accepts.
func Counters() []string {
	return []string{"performances", "experiences", "food", "parking", "toilets", "venues"}
}

type PostgresStore struct {
	DB  *sql.DB
	now func() time.Time
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db, now: time.Now}
}

func (s *PostgresStore) CountRows(ctx context.Context, counter string) (int, error) {
	table, ok := countable[counter]
	if !ok {
		return 0, fmt.Errorf("unknown counter %q", counter)
	}
	query, args, err := psql.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// UpcomingPerformances returns the next slots from today on, earliest first.
func (s *PostgresStore) UpcomingPerformances(ctx context.Context, limit int) ([]domain.UpcomingEvent, error) {
	query, args, err := psql.
		Select("s.date", "p.artist").
		From("performance_slots s").
		Join("performances p ON p.id = s.performance_id").
		Where(sq.GtOrEq{"s.date": s.now().Format("2006-01-02")}).
		OrderBy("s.date", "s.start_time", "p.id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query upcoming performances: %w", err)
	}
	defer rows.Close()

	events := []domain.UpcomingEvent{}
	for rows.Next() {
		var (
			date   time.Time
			artist string
		)
		if err := rows.Scan(&date, &artist); err != nil {
			return nil, err
		}
		if artist == "" {
			artist = "Unknown Artist"
		}
		events = append(events, domain.UpcomingEvent{Date: date.Format("2 January 2006"), Name: artist})
	}
	return events, rows.Err()
}

package storage

import (
	"context"
	"database/sql"
	"fmt"

	"event-console/console-svc/internal/domain"

	sq "github.com/Masterminds/squirrel"
)

const slotColumns = "performance_id, to_char(date, 'YYYY-MM-DD'), to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI')"

func scanPerformance(row rowScanner) (domain.Performance, error) {
	var p domain.Performance
	err := row.Scan(&p.ID, &p.Artist, &p.Description, &p.Venue, &p.Photo)
	return p, err
}

// loadSlots fills DateTimes for the given performances with one query.
func (r *PostgresRepository) loadSlots(ctx context.Context, performances []domain.Performance) error {
	if len(performances) == 0 {
		return nil
	}

	index := make(map[int]int, len(performances))
	ids := make([]int, len(performances))
	for i := range performances {
		performances[i].DateTimes = []domain.DateTimeSlot{}
		index[performances[i].ID] = i
		ids[i] = performances[i].ID
	}

	query, args, err := psql.Select(slotColumns).
		From("performance_slots").
		Where(sq.Eq{"performance_id": ids}).
		OrderBy("performance_id", "date", "start_time").
		ToSql()
	if err != nil {
		return fmt.Errorf("build slot query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			performanceID int
			slot          domain.DateTimeSlot
		)
		if err := rows.Scan(&performanceID, &slot.Date, &slot.StartTime, &slot.EndTime); err != nil {
			return err
		}
		if i, ok := index[performanceID]; ok {
			performances[i].DateTimes = append(performances[i].DateTimes, slot)
		}
	}
	return rows.Err()
}

func (r *PostgresRepository) ListPerformances(ctx context.Context) ([]domain.Performance, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, artist, description, venue, COALESCE(photo, '')
		FROM performances
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	performances := []domain.Performance{}
	for rows.Next() {
		p, err := scanPerformance(rows)
		if err != nil {
			return nil, err
		}
		performances = append(performances, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadSlots(ctx, performances); err != nil {
		return nil, fmt.Errorf("load performance slots: %w", err)
	}
	return performances, nil
}

func (r *PostgresRepository) GetPerformance(ctx context.Context, id int) (*domain.Performance, error) {
	p, err := scanPerformance(r.DB.QueryRowContext(ctx, `
		SELECT id, artist, description, venue, COALESCE(photo, '')
		FROM performances
		WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "performance", id)
	}

	list := []domain.Performance{p}
	if err := r.loadSlots(ctx, list); err != nil {
		return nil, fmt.Errorf("load performance slots: %w", err)
	}
	return &list[0], nil
}

func (r *PostgresRepository) CreatePerformance(ctx context.Context, p *domain.Performance) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx,
			"INSERT INTO performances (artist, description, venue, photo) VALUES ($1, $2, $3, $4) RETURNING id",
			p.Artist, p.Description, p.Venue, nullString(p.Photo),
		).Scan(&p.ID); err != nil {
			return err
		}
		return insertSlots(ctx, tx, []int{p.ID}, [][]domain.DateTimeSlot{p.DateTimes})
	})
}

// UpdatePerformance replaces the mutable fields and the full slot list. The
// stored photo is kept when p.Photo is empty; the previous photo path is
// returned so a replaced file can be removed.
func (r *PostgresRepository) UpdatePerformance(ctx context.Context, p *domain.Performance) (string, error) {
	var previous string
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx,
			"SELECT COALESCE(photo, '') FROM performances WHERE id = $1 FOR UPDATE", p.ID,
		).Scan(&previous); err != nil {
			return notFound(err, "performance", p.ID)
		}

		if err := tx.QueryRowContext(ctx, `
			UPDATE performances
			SET artist=$1, description=$2, venue=$3, photo=COALESCE($4, photo)
			WHERE id=$5
			RETURNING COALESCE(photo, '')`,
			p.Artist, p.Description, p.Venue, nullString(p.Photo), p.ID,
		).Scan(&p.Photo); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM performance_slots WHERE performance_id = $1", p.ID); err != nil {
			return err
		}
		return insertSlots(ctx, tx, []int{p.ID}, [][]domain.DateTimeSlot{p.DateTimes})
	})
	return previous, err
}

// DeletePerformance removes the performance and, via cascade, its slots. The
// photo path is returned for cleanup.
func (r *PostgresRepository) DeletePerformance(ctx context.Context, id int) (string, error) {
	var photo string
	err := r.DB.QueryRowContext(ctx,
		"DELETE FROM performances WHERE id = $1 RETURNING COALESCE(photo, '')", id,
	).Scan(&photo)
	if err != nil {
		return "", notFound(err, "performance", id)
	}
	return photo, nil
}

// BulkInsertPerformances writes performances and their slots in one
// transaction.
func (r *PostgresRepository) BulkInsertPerformances(ctx context.Context, performances []domain.Performance) ([]int, error) {
	slots := make([][]domain.DateTimeSlot, len(performances))
	for i, p := range performances {
		slots[i] = p.DateTimes
	}

	var ids []int
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		reserved, err := reserveIDs(ctx, tx, "performances", len(performances))
		if err != nil {
			return err
		}
		values := make([][]any, len(performances))
		for i, p := range performances {
			values[i] = []any{reserved[i], p.Artist, p.Description, p.Venue}
		}
		if _, err := insertRows(ctx, tx, "performances", []string{"id", "artist", "description", "venue"}, values); err != nil {
			return err
		}
		ids = reserved
		return insertSlots(ctx, tx, ids, slots)
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func insertSlots(ctx context.Context, tx *sql.Tx, performanceIDs []int, slots [][]domain.DateTimeSlot) error {
	var values [][]any
	for i, id := range performanceIDs {
		for _, s := range slots[i] {
			values = append(values, []any{id, s.Date, s.StartTime, s.EndTime})
		}
	}
	if len(values) == 0 {
		return nil
	}
	_, err := insertRows(ctx, tx, "performance_slots", []string{"performance_id", "date", "start_time", "end_time"}, values)
	return err
}

package storage

import (
	"context"
	"database/sql"

	"event-console/console-svc/internal/domain"
)

const experienceColumns = `id, title, description, to_char(date, 'YYYY-MM-DD'),
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), venue, COALESCE(photo, '')`

func scanExperience(row rowScanner) (domain.Experience, error) {
	var e domain.Experience
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.StartTime, &e.EndTime, &e.Venue, &e.Photo)
	return e, err
}

func (r *PostgresRepository) ListExperiences(ctx context.Context) ([]domain.Experience, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+experienceColumns+" FROM experiences ORDER BY date, start_time, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	experiences := []domain.Experience{}
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		experiences = append(experiences, e)
	}
	return experiences, rows.Err()
}

func (r *PostgresRepository) GetExperience(ctx context.Context, id int) (*domain.Experience, error) {
	e, err := scanExperience(r.DB.QueryRowContext(ctx, "SELECT "+experienceColumns+" FROM experiences WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err, "experience", id)
	}
	return &e, nil
}

func (r *PostgresRepository) CreateExperience(ctx context.Context, e *domain.Experience) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO experiences (title, description, date, start_time, end_time, venue, photo)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		e.Title, e.Description, e.Date, e.StartTime, e.EndTime, e.Venue, nullString(e.Photo),
	).Scan(&e.ID)
}

// UpdateExperience keeps the stored photo when e.Photo is empty and returns
// the previous photo path.
func (r *PostgresRepository) UpdateExperience(ctx context.Context, e *domain.Experience) (string, error) {
	var previous string
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx,
			"SELECT COALESCE(photo, '') FROM experiences WHERE id = $1 FOR UPDATE", e.ID,
		).Scan(&previous); err != nil {
			return notFound(err, "experience", e.ID)
		}

		updated, err := scanExperience(tx.QueryRowContext(ctx, `
			UPDATE experiences
			SET title=$1, description=$2, date=$3, start_time=$4, end_time=$5, venue=$6, photo=COALESCE($7, photo)
			WHERE id=$8
			RETURNING `+experienceColumns,
			e.Title, e.Description, e.Date, e.StartTime, e.EndTime, e.Venue, nullString(e.Photo), e.ID))
		if err != nil {
			return err
		}
		*e = updated
		return nil
	})
	return previous, err
}

func (r *PostgresRepository) DeleteExperience(ctx context.Context, id int) (string, error) {
	var photo string
	err := r.DB.QueryRowContext(ctx,
		"DELETE FROM experiences WHERE id = $1 RETURNING COALESCE(photo, '')", id,
	).Scan(&photo)
	if err != nil {
		return "", notFound(err, "experience", id)
	}
	return photo, nil
}

func (r *PostgresRepository) BulkInsertExperiences(ctx context.Context, experiences []domain.Experience) ([]int, error) {
	values := make([][]any, len(experiences))
	for i, e := range experiences {
		values[i] = []any{e.Title, e.Description, e.Date, e.StartTime, e.EndTime, e.Venue}
	}

	var ids []int
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		ids, err = insertRows(ctx, tx, "experiences",
			[]string{"title", "description", "date", "start_time", "end_time", "venue"}, values)
		return err
	})
	return ids, err
}

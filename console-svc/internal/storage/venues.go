package storage

import (
	"context"
	"database/sql"

	"event-console/console-svc/internal/domain"
)

const venueColumns = "id, name, gps, selected"

func scanVenue(row rowScanner) (domain.Venue, error) {
	var v domain.Venue
	err := row.Scan(&v.ID, &v.Name, &v.GPS, &v.Selected)
	return v, err
}

func (r *PostgresRepository) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+venueColumns+" FROM venues ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := []domain.Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *PostgresRepository) GetVenue(ctx context.Context, id int) (*domain.Venue, error) {
	v, err := scanVenue(r.DB.QueryRowContext(ctx, "SELECT "+venueColumns+" FROM venues WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err, "venue", id)
	}
	return &v, nil
}

func (r *PostgresRepository) CreateVenue(ctx context.Context, v *domain.Venue) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO venues (name, gps, selected) VALUES ($1, $2, $3) RETURNING id",
		v.Name, v.GPS, v.Selected,
	).Scan(&v.ID)
}

func (r *PostgresRepository) UpdateVenue(ctx context.Context, v *domain.Venue) error {
	updated, err := scanVenue(r.DB.QueryRowContext(ctx,
		"UPDATE venues SET name=$1, gps=$2 WHERE id=$3 RETURNING "+venueColumns,
		v.Name, v.GPS, v.ID))
	if err != nil {
		return notFound(err, "venue", v.ID)
	}
	*v = updated
	return nil
}

func (r *PostgresRepository) ToggleVenueSelected(ctx context.Context, id int) (*domain.Venue, error) {
	v, err := scanVenue(r.DB.QueryRowContext(ctx,
		"UPDATE venues SET selected = NOT selected WHERE id = $1 RETURNING "+venueColumns, id))
	if err != nil {
		return nil, notFound(err, "venue", id)
	}
	return &v, nil
}

func (r *PostgresRepository) DeleteVenue(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM venues WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) BulkInsertVenues(ctx context.Context, venues []domain.Venue) ([]int, error) {
	values := make([][]any, len(venues))
	for i, v := range venues {
		values[i] = []any{v.Name, v.GPS}
	}

	var ids []int
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		ids, err = insertRows(ctx, tx, "venues", []string{"name", "gps"}, values)
		return err
	})
	return ids, err
}

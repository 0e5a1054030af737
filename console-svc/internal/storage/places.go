package storage

import (
	"context"
	"database/sql"
	"fmt"

	"event-console/console-svc/internal/domain"
)

func placeTable(kind domain.PlaceKind) (string, error) {
	table := kind.Table()
	if table == "" {
		return "", fmt.Errorf("unknown place kind %q", kind)
	}
	return table, nil
}

func scanPlace(row rowScanner) (domain.Place, error) {
	var (
		p         domain.Place
		lat, long sql.NullFloat64
	)
	if err := row.Scan(&p.ID, &p.Name, &lat, &long, &p.Remarks); err != nil {
		return p, err
	}
	if lat.Valid {
		p.Lat = &lat.Float64
	}
	if long.Valid {
		p.Long = &long.Float64
	}
	return p, nil
}

func (r *PostgresRepository) ListPlaces(ctx context.Context, kind domain.PlaceKind) ([]domain.Place, error) {
	table, err := placeTable(kind)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, "SELECT id, name, gps_lat, gps_long, remarks FROM "+table+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	places := []domain.Place{}
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

func (r *PostgresRepository) CreatePlace(ctx context.Context, kind domain.PlaceKind, p *domain.Place) error {
	table, err := placeTable(kind)
	if err != nil {
		return err
	}
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO "+table+" (name, gps_lat, gps_long, remarks) VALUES ($1, $2, $3, $4) RETURNING id",
		p.Name, p.Lat, p.Long, p.Remarks,
	).Scan(&p.ID)
}

func (r *PostgresRepository) UpdatePlace(ctx context.Context, kind domain.PlaceKind, p *domain.Place) error {
	table, err := placeTable(kind)
	if err != nil {
		return err
	}
	row := r.DB.QueryRowContext(ctx,
		"UPDATE "+table+" SET name=$1, gps_lat=$2, gps_long=$3, remarks=$4 WHERE id=$5 RETURNING id, name, gps_lat, gps_long, remarks",
		p.Name, p.Lat, p.Long, p.Remarks, p.ID)
	updated, err := scanPlace(row)
	if err != nil {
		return notFound(err, string(kind), p.ID)
	}
	*p = updated
	return nil
}

func (r *PostgresRepository) DeletePlace(ctx context.Context, kind domain.PlaceKind, id int) (int64, error) {
	table, err := placeTable(kind)
	if err != nil {
		return 0, err
	}
	result, err := r.DB.ExecContext(ctx, "DELETE FROM "+table+" WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// BulkInsertPlaces inserts every place in one transaction and returns the new
// ids in input order.
func (r *PostgresRepository) BulkInsertPlaces(ctx context.Context, kind domain.PlaceKind, places []domain.Place) ([]int, error) {
	table, err := placeTable(kind)
	if err != nil {
		return nil, err
	}

	values := make([][]any, len(places))
	for i, p := range places {
		values[i] = []any{p.Name, p.Lat, p.Long, p.Remarks}
	}

	var ids []int
	err = r.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		ids, err = insertRows(ctx, tx, table, []string{"name", "gps_lat", "gps_long", "remarks"}, values)
		return err
	})
	return ids, err
}

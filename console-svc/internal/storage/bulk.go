package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// maxParams is the Postgres limit on bind parameters per statement.
const maxParams = 65535

// insertRows writes values as multi-row INSERT ... RETURNING id statements on
// tx, splitting into as few statements as the parameter limit allows. The ids
// are in RETURNING order, which Postgres does not guarantee to match the
// VALUES order; callers that pair ids with rows use reserveIDs.
func insertRows(ctx context.Context, tx *sql.Tx, table string, columns []string, values [][]any) ([]int, error) {
	chunk := maxParams / len(columns)
	ids := make([]int, 0, len(values))

	for start := 0; start < len(values); start += chunk {
		end := min(start+chunk, len(values))

		builder := psql.Insert(table).Columns(columns...).Suffix("RETURNING id")
		for _, row := range values[start:end] {
			builder = builder.Values(row...)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("build insert into %s: %w", table, err)
		}

		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("insert into %s: %w", table, err)
		}
		for rows.Next() {
			var id int
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return nil, err
			}
			ids = append(ids, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("insert into %s: %w", table, err)
		}
	}

	if len(ids) != len(values) {
		return nil, fmt.Errorf("insert into %s: expected %d ids, got %d", table, len(values), len(ids))
	}
	return ids, nil
}

// reserveIDs draws n ids from the serial sequence behind table.id so rows can
// be inserted with known keys.
func reserveIDs(ctx context.Context, tx *sql.Tx, table string, n int) ([]int, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT nextval(pg_get_serial_sequence($1, 'id')) FROM generate_series(1, $2)", table, n)
	if err != nil {
		return nil, fmt.Errorf("reserve %s ids: %w", table, err)
	}
	defer rows.Close()

	ids := make([]int, 0, n)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("reserve %s ids: %w", table, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reserve %s ids: %w", table, err)
	}
	if len(ids) != n {
		return nil, fmt.Errorf("reserve %s ids: expected %d, got %d", table, n, len(ids))
	}
	return ids, nil
}

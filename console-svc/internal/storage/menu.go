package storage

import (
	"context"
	"database/sql"
	"fmt"

	"event-console/console-svc/internal/domain"

	sq "github.com/Masterminds/squirrel"
)

func (r *PostgresRepository) ListMenu(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name, position FROM menu_items ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Position); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CreateMenuItem appends the item after the current last position.
func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "LOCK TABLE menu_items IN SHARE ROW EXCLUSIVE MODE"); err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, `
			INSERT INTO menu_items (name, position)
			SELECT $1, COALESCE(MAX(position), 0) + 1 FROM menu_items
			RETURNING id, position`,
			item.Name,
		).Scan(&item.ID, &item.Position)
	})
}

func (r *PostgresRepository) RenameMenuItem(ctx context.Context, item *domain.MenuItem) error {
	err := r.DB.QueryRowContext(ctx,
		"UPDATE menu_items SET name=$1 WHERE id=$2 RETURNING position",
		item.Name, item.ID,
	).Scan(&item.Position)
	return notFound(err, "menu item", item.ID)
}

// DeleteMenuItem removes the item and shifts the following positions up so
// they stay contiguous.
func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, id int) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "LOCK TABLE menu_items IN SHARE ROW EXCLUSIVE MODE"); err != nil {
			return err
		}

		var position int
		if err := tx.QueryRowContext(ctx,
			"DELETE FROM menu_items WHERE id = $1 RETURNING position", id,
		).Scan(&position); err != nil {
			return notFound(err, "menu item", id)
		}

		_, err := tx.ExecContext(ctx,
			"UPDATE menu_items SET position = position - 1 WHERE position > $1", position)
		return err
	})
}

// ReorderMenu assigns every position in a single statement. The caller has
// already checked that positions form a permutation; here the ids are checked
// against the locked table contents.
func (r *PostgresRepository) ReorderMenu(ctx context.Context, positions []domain.MenuPosition) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, "SELECT id FROM menu_items FOR UPDATE")
		if err != nil {
			return err
		}
		existing := make(map[int]bool)
		for rows.Next() {
			var id int
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			existing[id] = true
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		if len(existing) != len(positions) {
			return domain.Invalid("menu has %d items, got %d positions", len(existing), len(positions))
		}

		ids := make([]int, len(positions))
		caseExpr := sq.Case("id")
		for i, p := range positions {
			if !existing[p.ID] {
				return fmt.Errorf("menu item %d: %w", p.ID, domain.ErrNotFound)
			}
			ids[i] = p.ID
			caseExpr = caseExpr.When(sq.Expr("?::int", p.ID), sq.Expr("?::int", p.Position))
		}

		query, args, err := psql.Update("menu_items").
			Set("position", caseExpr).
			Where(sq.Eq{"id": ids}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build reorder: %w", err)
		}

		_, err = tx.ExecContext(ctx, query, args...)
		return err
	})
}

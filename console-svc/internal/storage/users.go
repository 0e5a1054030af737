package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"event-console/console-svc/internal/domain"
)

func (r *PostgresRepository) FindUserByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	var u domain.AdminUser
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash FROM admin_users WHERE username = $1", username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("admin user %q: %w", username, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertUser creates the user or replaces its password hash.
func (r *PostgresRepository) UpsertUser(ctx context.Context, u *domain.AdminUser) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO admin_users (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id`,
		u.Username, u.PasswordHash,
	).Scan(&u.ID)
}

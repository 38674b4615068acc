package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mannerisms/internal/auth"
)

func (s *Store) FindUserByUsername(ctx context.Context, username string) (auth.User, error) {
	var user auth.User
	err := s.db.QueryRowContext(
		ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.User{}, auth.ErrUserNotFound
		}
		return auth.User{}, fmt.Errorf("find user: %w", err)
	}

	user.CreatedAt = user.CreatedAt.UTC()
	return user, nil
}

func (s *Store) CreateUser(ctx context.Context, user auth.User) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.ErrDuplicateUsername
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

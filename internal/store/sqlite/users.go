package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mannerisms/internal/auth"
)

func (s *Store) FindUserByUsername(ctx context.Context, username string) (auth.User, error) {
	var (
		user          auth.User
		createdAtUnix int64
	)
	err := s.db.QueryRowContext(
		ctx,
		`SELECT id, username, password_hash, created_at_unix FROM users WHERE username = ?`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &createdAtUnix)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.User{}, auth.ErrUserNotFound
		}
		return auth.User{}, fmt.Errorf("find user: %w", err)
	}

	user.CreatedAt = time.Unix(0, createdAtUnix).UTC()
	return user, nil
}

func (s *Store) CreateUser(ctx context.Context, user auth.User) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO users (id, username, password_hash, created_at_unix) VALUES (?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.CreatedAt.UnixNano(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.ErrDuplicateUsername
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

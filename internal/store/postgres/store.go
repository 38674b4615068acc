package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NewStore connects to dsn and creates any missing tables.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := NewStoreFromDB(db)
	if err := store.InitSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func NewStoreFromDB(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InitSchema(ctx context.Context) error {
	createUsersTable := `
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			username VARCHAR(255) NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
	`

	createQuestionsTable := `
		CREATE TABLE IF NOT EXISTS questions (
			id VARCHAR(36) PRIMARY KEY,
			question TEXT NOT NULL,
			options TEXT[] NOT NULL,
			correct_answer TEXT NOT NULL,
			explanation TEXT NOT NULL DEFAULT '',
			category VARCHAR(255) NOT NULL,
			difficulty VARCHAR(50) NOT NULL DEFAULT '',
			tag VARCHAR(255) NOT NULL UNIQUE,
			culture VARCHAR(50) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_questions_culture_category ON questions(culture, category);
	`

	createAdvancedQuestionsTable := `
		CREATE TABLE IF NOT EXISTS advanced_questions (
			id VARCHAR(36) PRIMARY KEY,
			question TEXT NOT NULL,
			culture VARCHAR(50) NOT NULL,
			correct_answer TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_advanced_questions_culture ON advanced_questions(culture);
	`

	createProgressTables := `
		CREATE TABLE IF NOT EXISTS progress (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL UNIQUE,
			score INTEGER NOT NULL DEFAULT 0,
			last_activity TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS progress_completions (
			user_id VARCHAR(36) NOT NULL,
			tag VARCHAR(255) NOT NULL,
			completed_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (user_id, tag)
		);
	`

	for _, stmt := range []string{createUsersTable, createQuestionsTable, createAdvancedQuestionsTable, createProgressTables} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

package sqlite

import (
	"context"
)

func (s *Store) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS questions (
			id TEXT PRIMARY KEY,
			question TEXT NOT NULL,
			options_json TEXT NOT NULL,
			correct_answer TEXT NOT NULL,
			explanation TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			tag TEXT NOT NULL UNIQUE,
			culture TEXT NOT NULL,
			created_at_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS advanced_questions (
			id TEXT PRIMARY KEY,
			question TEXT NOT NULL,
			culture TEXT NOT NULL,
			correct_answer TEXT NOT NULL,
			created_at_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS progress (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE,
			score INTEGER NOT NULL DEFAULT 0,
			last_activity_unix INTEGER NOT NULL
		);`,
		// One row per (user, tag) is what keeps a basic question from scoring twice.
		`CREATE TABLE IF NOT EXISTS progress_completions (
			user_id TEXT NOT NULL,
			tag TEXT NOT NULL,
			completed_at_unix INTEGER NOT NULL,
			PRIMARY KEY (user_id, tag)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_questions_culture_category ON questions(culture, category);`,
		`CREATE INDEX IF NOT EXISTS idx_questions_created_at ON questions(created_at_unix, tag);`,
		`CREATE INDEX IF NOT EXISTS idx_advanced_questions_culture ON advanced_questions(culture);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

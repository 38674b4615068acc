package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mannerisms/internal/quiz"
)

func (s *Store) EnsureProgress(ctx context.Context, userID string, now time.Time) (quiz.Progress, error) {
	if _, err := s.db.ExecContext(
		ctx,
		`INSERT INTO progress (id, user_id, score, last_activity_unix) VALUES (?, ?, 0, ?)
		 ON CONFLICT(user_id) DO NOTHING`,
		uuid.NewString(),
		userID,
		now.UnixNano(),
	); err != nil {
		return quiz.Progress{}, fmt.Errorf("ensure progress: %w", err)
	}
	return loadProgress(ctx, s.db, userID)
}

func (s *Store) TouchProgress(ctx context.Context, userID string, now time.Time) (quiz.Progress, error) {
	if err := touchProgress(ctx, s.db, userID, now); err != nil {
		return quiz.Progress{}, err
	}
	return loadProgress(ctx, s.db, userID)
}

func touchProgress(ctx context.Context, q querier, userID string, now time.Time) error {
	_, err := q.ExecContext(
		ctx,
		`INSERT INTO progress (id, user_id, score, last_activity_unix) VALUES (?, ?, 0, ?)
		 ON CONFLICT(user_id) DO UPDATE SET last_activity_unix = excluded.last_activity_unix`,
		uuid.NewString(),
		userID,
		now.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("touch progress: %w", err)
	}
	return nil
}

// CompleteQuestion relies on INSERT OR IGNORE against the (user_id, tag)
// primary key, so concurrent correct answers for the same tag score once.
func (s *Store) CompleteQuestion(ctx context.Context, userID, tag string, now time.Time) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if err := touchProgress(ctx, tx, userID, now); err != nil {
		return false, err
	}

	result, err := tx.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO progress_completions (user_id, tag, completed_at_unix) VALUES (?, ?, ?)`,
		userID,
		tag,
		now.UnixNano(),
	)
	if err != nil {
		return false, fmt.Errorf("record completion: %w", err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	if inserted > 0 {
		if _, err := tx.ExecContext(ctx, `UPDATE progress SET score = score + 1 WHERE user_id = ?`, userID); err != nil {
			return false, fmt.Errorf("increment score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return inserted > 0, nil
}

func (s *Store) AddScore(ctx context.Context, userID string, delta int) (quiz.Progress, error) {
	result, err := s.db.ExecContext(ctx, `UPDATE progress SET score = score + ? WHERE user_id = ?`, delta, userID)
	if err != nil {
		return quiz.Progress{}, fmt.Errorf("add score: %w", err)
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return quiz.Progress{}, err
	}
	if updated == 0 {
		return quiz.Progress{}, fmt.Errorf("add score: no progress for user %s", userID)
	}
	return loadProgress(ctx, s.db, userID)
}

func loadProgress(ctx context.Context, q querier, userID string) (quiz.Progress, error) {
	progress := quiz.Progress{UserID: userID}
	var lastActivityUnix int64
	err := q.QueryRowContext(
		ctx,
		`SELECT id, score, last_activity_unix FROM progress WHERE user_id = ?`,
		userID,
	).Scan(&progress.ID, &progress.Score, &lastActivityUnix)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.Progress{}, fmt.Errorf("load progress: no progress for user %s", userID)
		}
		return quiz.Progress{}, fmt.Errorf("load progress: %w", err)
	}
	progress.LastActivity = time.Unix(0, lastActivityUnix).UTC()

	rows, err := q.QueryContext(
		ctx,
		`SELECT tag FROM progress_completions WHERE user_id = ? ORDER BY completed_at_unix ASC, tag ASC`,
		userID,
	)
	if err != nil {
		return quiz.Progress{}, fmt.Errorf("load completions: %w", err)
	}
	defer rows.Close()

	progress.CompletedQuestions = make([]string, 0)
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return quiz.Progress{}, err
		}
		progress.CompletedQuestions = append(progress.CompletedQuestions, tag)
	}
	return progress, rows.Err()
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"mannerisms/internal/quiz"
)

func (s *Store) EnsureProgress(ctx context.Context, userID string, now time.Time) (quiz.Progress, error) {
	if _, err := s.db.ExecContext(
		ctx,
		`INSERT INTO progress (id, user_id, score, last_activity) VALUES ($1, $2, 0, $3)
		 ON CONFLICT (user_id) DO NOTHING`,
		uuid.NewString(),
		userID,
		now,
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
		`INSERT INTO progress (id, user_id, score, last_activity) VALUES ($1, $2, 0, $3)
		 ON CONFLICT (user_id) DO UPDATE SET last_activity = EXCLUDED.last_activity`,
		uuid.NewString(),
		userID,
		now,
	)
	if err != nil {
		return fmt.Errorf("touch progress: %w", err)
	}
	return nil
}

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
		`INSERT INTO progress_completions (user_id, tag, completed_at) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, tag) DO NOTHING`,
		userID,
		tag,
		now,
	)
	if err != nil {
		return false, fmt.Errorf("record completion: %w", err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	if inserted > 0 {
		if _, err := tx.ExecContext(ctx, `UPDATE progress SET score = score + 1 WHERE user_id = $1`, userID); err != nil {
			return false, fmt.Errorf("increment score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return inserted > 0, nil
}

func (s *Store) AddScore(ctx context.Context, userID string, delta int) (quiz.Progress, error) {
	result, err := s.db.ExecContext(ctx, `UPDATE progress SET score = score + $1 WHERE user_id = $2`, delta, userID)
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
	var tags pq.StringArray
	err := q.QueryRowContext(
		ctx,
		`SELECT p.id, p.score, p.last_activity,
			COALESCE(array_agg(c.tag ORDER BY c.completed_at, c.tag) FILTER (WHERE c.tag IS NOT NULL), '{}')
		 FROM progress p
		 LEFT JOIN progress_completions c ON c.user_id = p.user_id
		 WHERE p.user_id = $1
		 GROUP BY p.id, p.score, p.last_activity`,
		userID,
	).Scan(&progress.ID, &progress.Score, &progress.LastActivity, &tags)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.Progress{}, fmt.Errorf("load progress: no progress for user %s", userID)
		}
		return quiz.Progress{}, fmt.Errorf("load progress: %w", err)
	}

	progress.LastActivity = progress.LastActivity.UTC()
	progress.CompletedQuestions = []string(tags)
	if progress.CompletedQuestions == nil {
		progress.CompletedQuestions = make([]string, 0)
	}
	return progress, nil
}

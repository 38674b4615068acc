package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"mannerisms/internal/quiz"
)

const questionColumns = `id, question, options, correct_answer, explanation, category, difficulty, tag, culture, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (quiz.BasicQuestion, error) {
	var question quiz.BasicQuestion
	if err := row.Scan(
		&question.ID,
		&question.Question,
		pq.Array(&question.Options),
		&question.CorrectAnswer,
		&question.Explanation,
		&question.Category,
		&question.Difficulty,
		&question.Tag,
		&question.Culture,
		&question.CreatedAt,
	); err != nil {
		return quiz.BasicQuestion{}, err
	}
	question.CreatedAt = question.CreatedAt.UTC()
	return question, nil
}

func (s *Store) ListQuestions(ctx context.Context, culture string) ([]quiz.BasicQuestion, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+questionColumns+`
		 FROM questions
		 WHERE $1 = '' OR culture = $1
		 ORDER BY created_at ASC, tag ASC`,
		culture,
	)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	questions := make([]quiz.BasicQuestion, 0)
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}
	return questions, rows.Err()
}

func (s *Store) GetQuestion(ctx context.Context, id string) (quiz.BasicQuestion, error) {
	question, err := scanQuestion(s.db.QueryRowContext(
		ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.BasicQuestion{}, quiz.ErrQuestionNotFound
		}
		return quiz.BasicQuestion{}, fmt.Errorf("get question: %w", err)
	}
	return question, nil
}

func (s *Store) CreateQuestion(ctx context.Context, question quiz.BasicQuestion) error {
	return insertQuestion(ctx, s.db, question)
}

func insertQuestion(ctx context.Context, q querier, question quiz.BasicQuestion) error {
	_, err := q.ExecContext(
		ctx,
		`INSERT INTO questions (`+questionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		question.ID,
		question.Question,
		pq.Array(question.Options),
		question.CorrectAnswer,
		question.Explanation,
		question.Category,
		question.Difficulty,
		question.Tag,
		question.Culture,
		question.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", quiz.ErrDuplicateTag, question.Tag)
		}
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

func (s *Store) CountQuestionsInCategory(ctx context.Context, culture, category string) (int, error) {
	var count int
	err := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM questions WHERE culture = $1 AND category = $2`,
		culture,
		category,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return count, nil
}

func scanAdvancedQuestion(row rowScanner) (quiz.AdvancedQuestion, error) {
	var question quiz.AdvancedQuestion
	if err := row.Scan(&question.ID, &question.Question, &question.Culture, &question.CorrectAnswer, &question.CreatedAt); err != nil {
		return quiz.AdvancedQuestion{}, err
	}
	question.CreatedAt = question.CreatedAt.UTC()
	return question, nil
}

func (s *Store) GetAdvancedQuestion(ctx context.Context, id string) (quiz.AdvancedQuestion, error) {
	question, err := scanAdvancedQuestion(s.db.QueryRowContext(
		ctx,
		`SELECT id, question, culture, correct_answer, created_at FROM advanced_questions WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.AdvancedQuestion{}, quiz.ErrQuestionNotFound
		}
		return quiz.AdvancedQuestion{}, fmt.Errorf("get advanced question: %w", err)
	}
	return question, nil
}

func (s *Store) RandomAdvancedQuestion(ctx context.Context, culture string) (quiz.AdvancedQuestion, error) {
	question, err := scanAdvancedQuestion(s.db.QueryRowContext(
		ctx,
		`SELECT id, question, culture, correct_answer, created_at
		 FROM advanced_questions
		 WHERE $1 = '' OR culture = $1
		 ORDER BY random()
		 LIMIT 1`,
		culture,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.AdvancedQuestion{}, quiz.ErrQuestionNotFound
		}
		return quiz.AdvancedQuestion{}, fmt.Errorf("random advanced question: %w", err)
	}
	return question, nil
}

func (s *Store) CreateAdvancedQuestion(ctx context.Context, question quiz.AdvancedQuestion) error {
	return insertAdvancedQuestion(ctx, s.db, question)
}

func insertAdvancedQuestion(ctx context.Context, q querier, question quiz.AdvancedQuestion) error {
	_, err := q.ExecContext(
		ctx,
		`INSERT INTO advanced_questions (id, question, culture, correct_answer, created_at) VALUES ($1, $2, $3, $4, $5)`,
		question.ID,
		question.Question,
		question.Culture,
		question.CorrectAnswer,
		question.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create advanced question: %w", err)
	}
	return nil
}

func (s *Store) ReplaceQuestionBank(ctx context.Context, basic []quiz.BasicQuestion, advanced []quiz.AdvancedQuestion) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM advanced_questions`); err != nil {
		return err
	}

	for _, question := range basic {
		if err := insertQuestion(ctx, tx, question); err != nil {
			return err
		}
	}
	for _, question := range advanced {
		if err := insertAdvancedQuestion(ctx, tx, question); err != nil {
			return err
		}
	}

	return tx.Commit()
}

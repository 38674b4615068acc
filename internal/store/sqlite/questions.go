package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mannerisms/internal/quiz"
)

const questionColumns = `id, question, options_json, correct_answer, explanation, category, difficulty, tag, culture, created_at_unix`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (quiz.BasicQuestion, error) {
	var (
		question      quiz.BasicQuestion
		optionsJSON   string
		createdAtUnix int64
	)
	if err := row.Scan(
		&question.ID,
		&question.Question,
		&optionsJSON,
		&question.CorrectAnswer,
		&question.Explanation,
		&question.Category,
		&question.Difficulty,
		&question.Tag,
		&question.Culture,
		&createdAtUnix,
	); err != nil {
		return quiz.BasicQuestion{}, err
	}

	if err := json.Unmarshal([]byte(optionsJSON), &question.Options); err != nil {
		return quiz.BasicQuestion{}, fmt.Errorf("decode options of question %s: %w", question.ID, err)
	}
	question.CreatedAt = time.Unix(0, createdAtUnix).UTC()
	return question, nil
}

func (s *Store) ListQuestions(ctx context.Context, culture string) ([]quiz.BasicQuestion, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+questionColumns+`
		 FROM questions
		 WHERE ? = '' OR culture = ?
		 ORDER BY created_at_unix ASC, tag ASC`,
		culture,
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
		`SELECT `+questionColumns+` FROM questions WHERE id = ?`,
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
	optionsJSON, err := json.Marshal(question.Options)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(
		ctx,
		`INSERT INTO questions (`+questionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		question.ID,
		question.Question,
		string(optionsJSON),
		question.CorrectAnswer,
		question.Explanation,
		question.Category,
		question.Difficulty,
		question.Tag,
		question.Culture,
		question.CreatedAt.UnixNano(),
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
		`SELECT COUNT(*) FROM questions WHERE culture = ? AND category = ?`,
		culture,
		category,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return count, nil
}

func scanAdvancedQuestion(row rowScanner) (quiz.AdvancedQuestion, error) {
	var (
		question      quiz.AdvancedQuestion
		createdAtUnix int64
	)
	if err := row.Scan(&question.ID, &question.Question, &question.Culture, &question.CorrectAnswer, &createdAtUnix); err != nil {
		return quiz.AdvancedQuestion{}, err
	}
	question.CreatedAt = time.Unix(0, createdAtUnix).UTC()
	return question, nil
}

func (s *Store) GetAdvancedQuestion(ctx context.Context, id string) (quiz.AdvancedQuestion, error) {
	question, err := scanAdvancedQuestion(s.db.QueryRowContext(
		ctx,
		`SELECT id, question, culture, correct_answer, created_at_unix FROM advanced_questions WHERE id = ?`,
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

// RandomAdvancedQuestion picks uniformly among the culture's questions. An
// empty culture picks among all of them.
func (s *Store) RandomAdvancedQuestion(ctx context.Context, culture string) (quiz.AdvancedQuestion, error) {
	question, err := scanAdvancedQuestion(s.db.QueryRowContext(
		ctx,
		`SELECT id, question, culture, correct_answer, created_at_unix
		 FROM advanced_questions
		 WHERE ? = '' OR culture = ?
		 ORDER BY RANDOM()
		 LIMIT 1`,
		culture,
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
		`INSERT INTO advanced_questions (id, question, culture, correct_answer, created_at_unix) VALUES (?, ?, ?, ?, ?)`,
		question.ID,
		question.Question,
		question.Culture,
		question.CorrectAnswer,
		question.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("create advanced question: %w", err)
	}
	return nil
}

// ReplaceQuestionBank swaps every stored question for the given sets in one
// transaction. Progress and completions are left alone.
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

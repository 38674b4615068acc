package quiz

import (
	"context"
	"errors"
	"time"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrDuplicateTag     = errors.New("question tag already exists")
	ErrInvalidQuestion  = errors.New("invalid question")
	ErrUpstreamFormat   = errors.New("grader returned an unparseable reply")
	ErrUpstreamCall     = errors.New("grader call failed")
)

type Progress struct {
	ID                 string
	UserID             string
	Score              int
	CompletedQuestions []string
	LastActivity       time.Time
}

type QuestionRepository interface {
	ListQuestions(ctx context.Context, culture string) ([]BasicQuestion, error)
	GetQuestion(ctx context.Context, id string) (BasicQuestion, error)
	CreateQuestion(ctx context.Context, question BasicQuestion) error
	CountQuestionsInCategory(ctx context.Context, culture, category string) (int, error)
}

type AdvancedQuestionRepository interface {
	GetAdvancedQuestion(ctx context.Context, id string) (AdvancedQuestion, error)
	RandomAdvancedQuestion(ctx context.Context, culture string) (AdvancedQuestion, error)
	CreateAdvancedQuestion(ctx context.Context, question AdvancedQuestion) error
}

// ProgressRepository owns the per-user progress record. Every method that may
// create the record does so as an atomic get-or-create.
type ProgressRepository interface {
	EnsureProgress(ctx context.Context, userID string, now time.Time) (Progress, error)
	TouchProgress(ctx context.Context, userID string, now time.Time) (Progress, error)
	// CompleteQuestion records tag as completed and increments the score by one,
	// only if the tag was not already completed. last_activity is always set.
	CompleteQuestion(ctx context.Context, userID, tag string, now time.Time) (bool, error)
	AddScore(ctx context.Context, userID string, delta int) (Progress, error)
}

// QuestionBankWriter replaces every stored question in one step.
type QuestionBankWriter interface {
	ReplaceQuestionBank(ctx context.Context, basic []BasicQuestion, advanced []AdvancedQuestion) error
}

package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mannerisms/internal/quiz"
)

var ErrAlreadySeeded = errors.New("question bank already contains questions")

// Target is the store surface seeding writes through.
type Target interface {
	ListQuestions(ctx context.Context, culture string) ([]quiz.BasicQuestion, error)
	quiz.QuestionBankWriter
}

// QuestionBank builds the seeded questions. Tags are numbered per culture and
// category in declaration order, and creation times are one millisecond apart
// so listing preserves that order.
func QuestionBank(now time.Time) ([]quiz.BasicQuestion, []quiz.AdvancedQuestion) {
	counts := make(map[string]map[string]int)
	basic := make([]quiz.BasicQuestion, 0, len(basicSeeds))
	for i, s := range basicSeeds {
		if counts[s.culture] == nil {
			counts[s.culture] = make(map[string]int)
		}
		counts[s.culture][s.category]++

		options := make([]string, len(s.options))
		copy(options, s.options)

		basic = append(basic, quiz.BasicQuestion{
			ID:            uuid.NewString(),
			Question:      s.question,
			Options:       options,
			CorrectAnswer: s.correctAnswer,
			Explanation:   s.explanation,
			Category:      s.category,
			Difficulty:    s.difficulty,
			Tag:           quiz.BuildTag(s.culture, s.category, counts[s.culture][s.category]),
			Culture:       s.culture,
			CreatedAt:     now.Add(time.Duration(i) * time.Millisecond),
		})
	}

	advanced := make([]quiz.AdvancedQuestion, 0, len(advancedSeeds))
	for _, s := range advancedSeeds {
		advanced = append(advanced, quiz.AdvancedQuestion{
			ID:            uuid.NewString(),
			Question:      s.question,
			Culture:       s.culture,
			CorrectAnswer: s.correctAnswer,
			CreatedAt:     now,
		})
	}
	return basic, advanced
}

// Seed loads the question bank. Without reset it refuses to touch a store
// that already has basic questions.
func Seed(ctx context.Context, target Target, reset bool, now time.Time) (int, int, error) {
	if !reset {
		existing, err := target.ListQuestions(ctx, "")
		if err != nil {
			return 0, 0, err
		}
		if len(existing) > 0 {
			return 0, 0, fmt.Errorf("%w: %d found, use reset to replace them", ErrAlreadySeeded, len(existing))
		}
	}

	basic, advanced := QuestionBank(now)
	if err := target.ReplaceQuestionBank(ctx, basic, advanced); err != nil {
		return 0, 0, fmt.Errorf("replace question bank: %w", err)
	}
	return len(basic), len(advanced), nil
}

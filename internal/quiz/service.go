package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// maxTagAttempts bounds retries when a concurrent create took the next tag
// sequence of the same culture and category.
const maxTagAttempts = 3

type Service struct {
	questions QuestionRepository
	advanced  AdvancedQuestionRepository
	progress  ProgressRepository
	grader    Grader
	cache     QuestionCache
	logger    logrus.FieldLogger
	now       func() time.Time

	cacheMu  sync.Mutex
	cacheGen map[string]uint64
}

type Option func(*Service)

func WithCache(cache QuestionCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(questions QuestionRepository, advanced AdvancedQuestionRepository, progress ProgressRepository, grader Grader, opts ...Option) *Service {
	s := &Service{
		questions: questions,
		advanced:  advanced,
		progress:  progress,
		grader:    grader,
		logger:    logrus.StandardLogger(),
		cacheGen:  make(map[string]uint64),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ListQuestions(ctx context.Context, culture string) ([]BasicQuestion, error) {
	culture = strings.TrimSpace(culture)

	if questions, ok := s.cachedQuestions(ctx, culture); ok {
		return questions, nil
	}

	generation := s.cacheGeneration(culture)
	questions, err := s.questions.ListQuestions(ctx, culture)
	if err != nil {
		return nil, err
	}

	s.storeCachedQuestions(ctx, culture, generation, questions)
	return questions, nil
}

func (s *Service) CreateQuestion(ctx context.Context, input NewQuestion) (BasicQuestion, error) {
	if err := input.validate(); err != nil {
		return BasicQuestion{}, err
	}

	count, err := s.questions.CountQuestionsInCategory(ctx, input.Culture, input.Category)
	if err != nil {
		return BasicQuestion{}, err
	}

	now := s.now()
	for attempt := 0; attempt < maxTagAttempts; attempt++ {
		question := input.build(count+1+attempt, now)
		err = s.questions.CreateQuestion(ctx, question)
		if err == nil {
			s.invalidateCachedQuestions(ctx, question.Culture)
			return question, nil
		}
		if !errors.Is(err, ErrDuplicateTag) {
			return BasicQuestion{}, err
		}
	}
	return BasicQuestion{}, err
}

// SubmitAnswer grades a multiple-choice answer by exact string equality and
// records the outcome. Re-answering a completed question correctly never adds
// to the score again, but every submission refreshes last_activity.
func (s *Service) SubmitAnswer(ctx context.Context, userID, questionID, answer string) (AnswerResult, error) {
	question, err := s.questions.GetQuestion(ctx, questionID)
	if err != nil {
		return AnswerResult{}, err
	}

	correct := isCorrectAnswer(question, answer)
	now := s.now()
	if correct {
		if _, err := s.progress.CompleteQuestion(ctx, userID, question.Tag, now); err != nil {
			return AnswerResult{}, err
		}
	} else if _, err := s.progress.TouchProgress(ctx, userID, now); err != nil {
		return AnswerResult{}, err
	}

	return AnswerResult{
		Correct:     correct,
		Explanation: question.Explanation,
	}, nil
}

func (s *Service) RandomAdvancedQuestion(ctx context.Context, culture string) (AdvancedQuestion, error) {
	return s.advanced.RandomAdvancedQuestion(ctx, strings.TrimSpace(culture))
}

// SubmitAdvancedAnswer delegates grading to the external grader. Activity is
// recorded before the grader runs and is kept when grading fails; the returned
// score is added to the running total without an upper clamp, and negative
// scores are rejected as malformed.
func (s *Service) SubmitAdvancedAnswer(ctx context.Context, userID, questionID, answer string) (Grade, error) {
	question, err := s.advanced.GetAdvancedQuestion(ctx, questionID)
	if err != nil {
		return Grade{}, err
	}

	if _, err := s.progress.TouchProgress(ctx, userID, s.now()); err != nil {
		return Grade{}, err
	}

	if s.grader == nil {
		return Grade{}, fmt.Errorf("%w: grader is not configured", ErrUpstreamCall)
	}

	grade, err := s.grader.Grade(ctx, GradeRequest{
		Question:  question.Question,
		Culture:   question.Culture,
		Answer:    answer,
		Reference: question.CorrectAnswer,
	})
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":     userID,
			"question_id": questionID,
		}).Error("advanced answer grading failed")
		return Grade{}, err
	}
	// Scores only accumulate; a negative grade would lower the total.
	if grade.Score < 0 {
		return Grade{}, fmt.Errorf("%w: negative score %d", ErrUpstreamFormat, grade.Score)
	}

	if _, err := s.progress.AddScore(ctx, userID, grade.Score); err != nil {
		return Grade{}, err
	}
	return grade, nil
}

func (s *Service) GetProgress(ctx context.Context, userID string) (Progress, error) {
	return s.progress.EnsureProgress(ctx, userID, s.now())
}

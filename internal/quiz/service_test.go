package quiz

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

type fakeQuestionRepo struct {
	byID map[string]BasicQuestion

	listCalls   int
	createCalls int
	// takenTags simulates tags created concurrently by another request.
	takenTags map[string]bool
	// afterList runs once the list has been read, before it is returned.
	afterList func()
}

func newFakeQuestionRepo(questions ...BasicQuestion) *fakeQuestionRepo {
	repo := &fakeQuestionRepo{
		byID:      make(map[string]BasicQuestion),
		takenTags: make(map[string]bool),
	}
	for _, question := range questions {
		repo.byID[question.ID] = question
	}
	return repo
}

func (f *fakeQuestionRepo) ListQuestions(_ context.Context, culture string) ([]BasicQuestion, error) {
	f.listCalls++
	out := make([]BasicQuestion, 0, len(f.byID))
	for _, question := range f.byID {
		if culture == "" || question.Culture == culture {
			out = append(out, question)
		}
	}
	if hook := f.afterList; hook != nil {
		f.afterList = nil
		hook()
	}
	return out, nil
}

func (f *fakeQuestionRepo) GetQuestion(_ context.Context, id string) (BasicQuestion, error) {
	question, ok := f.byID[id]
	if !ok {
		return BasicQuestion{}, ErrQuestionNotFound
	}
	return question, nil
}

func (f *fakeQuestionRepo) CreateQuestion(_ context.Context, question BasicQuestion) error {
	f.createCalls++
	if f.takenTags[question.Tag] {
		return ErrDuplicateTag
	}
	for _, existing := range f.byID {
		if existing.Tag == question.Tag {
			return ErrDuplicateTag
		}
	}
	f.byID[question.ID] = question
	return nil
}

func (f *fakeQuestionRepo) CountQuestionsInCategory(_ context.Context, culture, category string) (int, error) {
	count := 0
	for _, question := range f.byID {
		if question.Culture == culture && question.Category == category {
			count++
		}
	}
	return count, nil
}

type fakeAdvancedRepo struct {
	byID map[string]AdvancedQuestion
}

func (f *fakeAdvancedRepo) GetAdvancedQuestion(_ context.Context, id string) (AdvancedQuestion, error) {
	question, ok := f.byID[id]
	if !ok {
		return AdvancedQuestion{}, ErrQuestionNotFound
	}
	return question, nil
}

func (f *fakeAdvancedRepo) RandomAdvancedQuestion(_ context.Context, culture string) (AdvancedQuestion, error) {
	for _, question := range f.byID {
		if question.Culture == culture {
			return question, nil
		}
	}
	return AdvancedQuestion{}, ErrQuestionNotFound
}

func (f *fakeAdvancedRepo) CreateAdvancedQuestion(_ context.Context, question AdvancedQuestion) error {
	f.byID[question.ID] = question
	return nil
}

type fakeProgressRepo struct {
	byUser map[string]*Progress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{byUser: make(map[string]*Progress)}
}

func (f *fakeProgressRepo) ensure(userID string, now time.Time) *Progress {
	progress, ok := f.byUser[userID]
	if !ok {
		progress = &Progress{
			ID:                 "progress-" + userID,
			UserID:             userID,
			CompletedQuestions: []string{},
			LastActivity:       now,
		}
		f.byUser[userID] = progress
	}
	return progress
}

func (f *fakeProgressRepo) EnsureProgress(_ context.Context, userID string, now time.Time) (Progress, error) {
	return *f.ensure(userID, now), nil
}

func (f *fakeProgressRepo) TouchProgress(_ context.Context, userID string, now time.Time) (Progress, error) {
	progress := f.ensure(userID, now)
	progress.LastActivity = now
	return *progress, nil
}

func (f *fakeProgressRepo) CompleteQuestion(_ context.Context, userID, tag string, now time.Time) (bool, error) {
	progress := f.ensure(userID, now)
	progress.LastActivity = now
	for _, completed := range progress.CompletedQuestions {
		if completed == tag {
			return false, nil
		}
	}
	progress.CompletedQuestions = append(progress.CompletedQuestions, tag)
	progress.Score++
	return true, nil
}

func (f *fakeProgressRepo) AddScore(_ context.Context, userID string, delta int) (Progress, error) {
	progress := f.ensure(userID, time.Time{})
	progress.Score += delta
	return *progress, nil
}

type fakeGrader struct {
	grades []Grade
	err    error
	calls  []GradeRequest
}

func (f *fakeGrader) Grade(_ context.Context, request GradeRequest) (Grade, error) {
	f.calls = append(f.calls, request)
	if f.err != nil {
		return Grade{}, f.err
	}
	grade := f.grades[0]
	f.grades = f.grades[1:]
	return grade, nil
}

type steppingClock struct {
	current time.Time
}

func (c *steppingClock) now() time.Time {
	c.current = c.current.Add(time.Minute)
	return c.current
}

func greetingQuestion() BasicQuestion {
	return BasicQuestion{
		ID:            "q-greet",
		Question:      "Most appropriate greeting?",
		Options:       []string{"A firm handshake with direct eye contact", "A bow"},
		CorrectAnswer: "A firm handshake with direct eye contact",
		Explanation:   "Handshakes convey confidence.",
		Category:      "Greetings",
		Difficulty:    "Easy",
		Tag:           "Western Greetings - 1",
		Culture:       CultureWestern,
	}
}

func newTestService(questions *fakeQuestionRepo, progress *fakeProgressRepo, grader Grader, clock *steppingClock) *Service {
	advanced := &fakeAdvancedRepo{byID: map[string]AdvancedQuestion{
		"adv-1": {ID: "adv-1", Question: "Describe gift etiquette.", Culture: CultureEastAsian, CorrectAnswer: "Even numbers, both hands."},
	}}
	logger, _ := logtest.NewNullLogger()
	return NewService(questions, advanced, progress, grader, WithClock(clock.now), WithLogger(logger))
}

func TestSubmitAnswerCorrectCountsOncePerTag(t *testing.T) {
	progress := newFakeProgressRepo()
	clock := &steppingClock{current: time.Unix(1700000000, 0).UTC()}
	service := newTestService(newFakeQuestionRepo(greetingQuestion()), progress, nil, clock)

	for idx := 0; idx < 3; idx++ {
		result, err := service.SubmitAnswer(context.Background(), "alice", "q-greet", "A firm handshake with direct eye contact")
		if err != nil {
			t.Fatalf("SubmitAnswer #%d failed: %v", idx, err)
		}
		if !result.Correct || result.Explanation != "Handshakes convey confidence." {
			t.Fatalf("unexpected result: %+v", result)
		}
	}

	got := progress.byUser["alice"]
	if got.Score != 1 {
		t.Fatalf("score = %d, want 1", got.Score)
	}
	if len(got.CompletedQuestions) != 1 || got.CompletedQuestions[0] != "Western Greetings - 1" {
		t.Fatalf("completed questions = %v", got.CompletedQuestions)
	}
	if !got.LastActivity.Equal(clock.current) {
		t.Fatalf("last activity = %v, want %v", got.LastActivity, clock.current)
	}
}

func TestSubmitAnswerIncorrectOnlyTouchesActivity(t *testing.T) {
	progress := newFakeProgressRepo()
	progress.byUser["alice"] = &Progress{UserID: "alice", Score: 4, CompletedQuestions: []string{"old"}}
	clock := &steppingClock{current: time.Unix(1700000000, 0).UTC()}
	service := newTestService(newFakeQuestionRepo(greetingQuestion()), progress, nil, clock)

	result, err := service.SubmitAnswer(context.Background(), "alice", "q-greet", "a firm handshake with direct eye contact")
	if err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}
	if result.Correct {
		t.Fatalf("comparison must be case-sensitive")
	}

	got := progress.byUser["alice"]
	if got.Score != 4 || len(got.CompletedQuestions) != 1 {
		t.Fatalf("progress changed on incorrect answer: %+v", got)
	}
	if !got.LastActivity.Equal(clock.current) {
		t.Fatalf("last activity not updated: %v", got.LastActivity)
	}
}

func TestSubmitAnswerUnknownQuestion(t *testing.T) {
	progress := newFakeProgressRepo()
	service := newTestService(newFakeQuestionRepo(), progress, nil, &steppingClock{})

	_, err := service.SubmitAnswer(context.Background(), "alice", "missing", "x")
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
	if len(progress.byUser) != 0 {
		t.Fatalf("progress must not be created for unknown questions")
	}
}

func TestSubmitAdvancedAnswerAccumulatesScores(t *testing.T) {
	progress := newFakeProgressRepo()
	progress.byUser["alice"] = &Progress{UserID: "alice", Score: 3, CompletedQuestions: []string{}}
	grader := &fakeGrader{grades: []Grade{{Score: 80, Response: "good"}, {Score: 50, Response: "ok"}}}
	service := newTestService(newFakeQuestionRepo(), progress, grader, &steppingClock{})

	for _, want := range []int{80, 50} {
		grade, err := service.SubmitAdvancedAnswer(context.Background(), "alice", "adv-1", "answer")
		if err != nil {
			t.Fatalf("SubmitAdvancedAnswer failed: %v", err)
		}
		if grade.Score != want {
			t.Fatalf("grade score = %d, want %d", grade.Score, want)
		}
	}

	if got := progress.byUser["alice"].Score; got != 133 {
		t.Fatalf("score = %d, want 133", got)
	}
	if len(grader.calls) != 2 || grader.calls[0].Reference != "Even numbers, both hands." || grader.calls[0].Culture != CultureEastAsian {
		t.Fatalf("unexpected grader requests: %+v", grader.calls)
	}
}

func TestSubmitAdvancedAnswerFormatErrorKeepsScoreButRecordsActivity(t *testing.T) {
	progress := newFakeProgressRepo()
	progress.byUser["alice"] = &Progress{UserID: "alice", Score: 7, CompletedQuestions: []string{}}
	grader := &fakeGrader{err: fmt.Errorf("%w: not json", ErrUpstreamFormat)}
	clock := &steppingClock{current: time.Unix(1700000000, 0).UTC()}
	logger, hook := logtest.NewNullLogger()
	service := newTestService(newFakeQuestionRepo(), progress, grader, clock)
	service.logger = logger

	_, err := service.SubmitAdvancedAnswer(context.Background(), "alice", "adv-1", "answer")
	if !errors.Is(err, ErrUpstreamFormat) {
		t.Fatalf("expected ErrUpstreamFormat, got %v", err)
	}

	got := progress.byUser["alice"]
	if got.Score != 7 {
		t.Fatalf("score = %d, want 7", got.Score)
	}
	if !got.LastActivity.Equal(clock.current) {
		t.Fatalf("last activity not recorded before grading")
	}
	if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatalf("expected grading failure to be logged, got %+v", entry)
	}
}

func TestSubmitAdvancedAnswerRejectsNegativeScore(t *testing.T) {
	questions := newFakeQuestionRepo(greetingQuestion())
	progress := newFakeProgressRepo()
	grader := &fakeGrader{grades: []Grade{{Score: -500, Response: "harsh"}}}
	service := newTestService(questions, progress, grader, &steppingClock{})
	ctx := context.Background()

	if _, err := service.SubmitAnswer(ctx, "alice", "q-greet", greetingQuestion().CorrectAnswer); err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}

	_, err := service.SubmitAdvancedAnswer(ctx, "alice", "adv-1", "answer")
	if !errors.Is(err, ErrUpstreamFormat) {
		t.Fatalf("expected ErrUpstreamFormat, got %v", err)
	}
	if got := progress.byUser["alice"].Score; got != 1 {
		t.Fatalf("score = %d, want 1", got)
	}
}

func TestSubmitAdvancedAnswerUnknownQuestion(t *testing.T) {
	progress := newFakeProgressRepo()
	service := newTestService(newFakeQuestionRepo(), progress, &fakeGrader{}, &steppingClock{})

	_, err := service.SubmitAdvancedAnswer(context.Background(), "alice", "nope", "answer")
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestSubmitAdvancedAnswerWithoutGrader(t *testing.T) {
	service := newTestService(newFakeQuestionRepo(), newFakeProgressRepo(), nil, &steppingClock{})

	_, err := service.SubmitAdvancedAnswer(context.Background(), "alice", "adv-1", "answer")
	if !errors.Is(err, ErrUpstreamCall) {
		t.Fatalf("expected ErrUpstreamCall, got %v", err)
	}
}

func TestListQuestionsUsesCacheUntilCreate(t *testing.T) {
	repo := newFakeQuestionRepo(greetingQuestion())
	service := newTestService(repo, newFakeProgressRepo(), nil, &steppingClock{})
	service.cache = NewMemoryQuestionCache(time.Minute)

	for idx := 0; idx < 2; idx++ {
		questions, err := service.ListQuestions(context.Background(), "western")
		if err != nil {
			t.Fatalf("ListQuestions failed: %v", err)
		}
		if len(questions) != 1 {
			t.Fatalf("expected one question, got %d", len(questions))
		}
	}
	if repo.listCalls != 1 {
		t.Fatalf("expected second read to be cache-only, got %d store reads", repo.listCalls)
	}

	_, err := service.CreateQuestion(context.Background(), NewQuestion{
		Question:      "Punctuality?",
		Options:       []string{"Early", "Late"},
		CorrectAnswer: "Early",
		Explanation:   "Be early.",
		Category:      "Punctuality",
		Difficulty:    "Easy",
		Culture:       CultureWestern,
	})
	if err != nil {
		t.Fatalf("CreateQuestion failed: %v", err)
	}

	questions, err := service.ListQuestions(context.Background(), "western")
	if err != nil {
		t.Fatalf("ListQuestions after create failed: %v", err)
	}
	if len(questions) != 2 || repo.listCalls != 2 {
		t.Fatalf("expected cache invalidation after create, got %d questions and %d reads", len(questions), repo.listCalls)
	}
}

func punctualityQuestion() NewQuestion {
	return NewQuestion{
		Question:      "Punctuality?",
		Options:       []string{"Early", "Late"},
		CorrectAnswer: "Early",
		Explanation:   "Be early.",
		Category:      "Punctuality",
		Difficulty:    "Easy",
		Culture:       CultureWestern,
	}
}

func TestListQuestionsDoesNotCacheListReadBeforeCreate(t *testing.T) {
	repo := newFakeQuestionRepo(greetingQuestion())
	service := newTestService(repo, newFakeProgressRepo(), nil, &steppingClock{})
	service.cache = NewMemoryQuestionCache(time.Minute)
	ctx := context.Background()

	repo.afterList = func() {
		if _, err := service.CreateQuestion(ctx, punctualityQuestion()); err != nil {
			t.Fatalf("CreateQuestion failed: %v", err)
		}
	}

	questions, err := service.ListQuestions(ctx, CultureWestern)
	if err != nil {
		t.Fatalf("ListQuestions failed: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("first read returned %d questions, want the pre-create list of 1", len(questions))
	}

	for idx := 0; idx < 3; idx++ {
		questions, err = service.ListQuestions(ctx, CultureWestern)
		if err != nil {
			t.Fatalf("ListQuestions failed: %v", err)
		}
		if len(questions) != 2 {
			t.Fatalf("read %d returned %d questions, want 2", idx, len(questions))
		}
	}
	if repo.listCalls != 2 {
		t.Fatalf("store reads = %d, want 2", repo.listCalls)
	}
}

func TestListQuestionsSkipsCacheForUnknownCulture(t *testing.T) {
	repo := newFakeQuestionRepo(greetingQuestion())
	cache := NewMemoryQuestionCache(time.Minute)
	service := newTestService(repo, newFakeProgressRepo(), nil, &steppingClock{})
	service.cache = cache
	ctx := context.Background()

	for idx := 0; idx < 2; idx++ {
		if _, err := service.ListQuestions(ctx, "atlantis"); err != nil {
			t.Fatalf("ListQuestions failed: %v", err)
		}
	}
	if repo.listCalls != 2 {
		t.Fatalf("store reads = %d, want 2", repo.listCalls)
	}
	if len(cache.byCulture) != 0 {
		t.Fatalf("unknown culture was cached: %v", cache.byCulture)
	}
}

func TestCreateQuestionAssignsNextTag(t *testing.T) {
	repo := newFakeQuestionRepo(greetingQuestion())
	service := newTestService(repo, newFakeProgressRepo(), nil, &steppingClock{})

	created, err := service.CreateQuestion(context.Background(), NewQuestion{
		Question:      "Greeting at a party?",
		Options:       []string{"Wave", "Bow"},
		CorrectAnswer: "Wave",
		Category:      "Greetings",
		Difficulty:    "Easy",
		Culture:       CultureWestern,
	})
	if err != nil {
		t.Fatalf("CreateQuestion failed: %v", err)
	}
	if created.Tag != "Western Greetings - 2" {
		t.Fatalf("tag = %q, want %q", created.Tag, "Western Greetings - 2")
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestCreateQuestionRetriesOnTagCollision(t *testing.T) {
	repo := newFakeQuestionRepo()
	repo.takenTags["East Asian Dining - 1"] = true
	service := newTestService(repo, newFakeProgressRepo(), nil, &steppingClock{})

	created, err := service.CreateQuestion(context.Background(), NewQuestion{
		Question:      "Chopsticks?",
		Options:       []string{"Rest", "Rice"},
		CorrectAnswer: "Rest",
		Category:      "Dining",
		Culture:       CultureEastAsian,
	})
	if err != nil {
		t.Fatalf("CreateQuestion failed: %v", err)
	}
	if created.Tag != "East Asian Dining - 2" || repo.createCalls != 2 {
		t.Fatalf("tag = %q after %d attempts", created.Tag, repo.createCalls)
	}
}

func TestCreateQuestionValidation(t *testing.T) {
	service := newTestService(newFakeQuestionRepo(), newFakeProgressRepo(), nil, &steppingClock{})

	cases := []NewQuestion{
		{Question: "Q", Options: []string{"a", "b"}, CorrectAnswer: "a", Category: "C", Culture: "martian"},
		{Question: "Q", Options: []string{"a", "b"}, CorrectAnswer: "c", Category: "C", Culture: CultureWestern},
		{Question: "Q", Options: []string{"a"}, CorrectAnswer: "a", Category: "C", Culture: CultureWestern},
		{Question: " ", Options: []string{"a", "b"}, CorrectAnswer: "a", Category: "C", Culture: CultureWestern},
	}
	for idx, input := range cases {
		if _, err := service.CreateQuestion(context.Background(), input); !errors.Is(err, ErrInvalidQuestion) {
			t.Fatalf("case %d: expected ErrInvalidQuestion, got %v", idx, err)
		}
	}
}

func TestGetProgressCreatesLazily(t *testing.T) {
	progress := newFakeProgressRepo()
	service := newTestService(newFakeQuestionRepo(), progress, nil, &steppingClock{})

	got, err := service.GetProgress(context.Background(), "bob")
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if got.UserID != "bob" || got.Score != 0 || len(got.CompletedQuestions) != 0 {
		t.Fatalf("unexpected fresh progress: %+v", got)
	}
	if _, ok := progress.byUser["bob"]; !ok {
		t.Fatalf("expected progress record to be created")
	}
}

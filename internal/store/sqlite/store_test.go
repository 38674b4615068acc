package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"mannerisms/internal/auth"
	"mannerisms/internal/quiz"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func sampleQuestion(id, culture, category string, seq int, createdAt time.Time) quiz.BasicQuestion {
	return quiz.BasicQuestion{
		ID:            id,
		Question:      "Question " + id,
		Options:       []string{"right", "wrong"},
		CorrectAnswer: "right",
		Explanation:   "because",
		Category:      category,
		Difficulty:    "easy",
		Tag:           quiz.BuildTag(culture, category, seq),
		Culture:       culture,
		CreatedAt:     createdAt,
	}
}

func TestStoreUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	createdAt := time.Unix(1700000000, 42).UTC()
	user := auth.User{ID: "u1", Username: "alice", PasswordHash: "hash", CreatedAt: createdAt}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := store.FindUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("FindUserByUsername failed: %v", err)
	}
	if got.ID != "u1" || got.PasswordHash != "hash" || !got.CreatedAt.Equal(createdAt) {
		t.Fatalf("unexpected user: %+v", got)
	}

	err = store.CreateUser(ctx, auth.User{ID: "u2", Username: "alice", PasswordHash: "x", CreatedAt: createdAt})
	if !errors.Is(err, auth.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	if _, err := store.FindUserByUsername(ctx, "Alice"); !errors.Is(err, auth.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for different case, got %v", err)
	}
}

func TestStoreQuestions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Unix(1700000000, 0).UTC()
	questions := []quiz.BasicQuestion{
		sampleQuestion("q1", quiz.CultureWestern, "Greetings", 1, base),
		sampleQuestion("q2", quiz.CultureWestern, "Dining", 1, base.Add(time.Second)),
		sampleQuestion("q3", quiz.CultureEastAsian, "Greetings", 1, base.Add(2*time.Second)),
		sampleQuestion("q4", quiz.CultureWestern, "Greetings", 2, base.Add(3*time.Second)),
	}
	for _, question := range questions {
		if err := store.CreateQuestion(ctx, question); err != nil {
			t.Fatalf("CreateQuestion(%s) failed: %v", question.ID, err)
		}
	}

	all, err := store.ListQuestions(ctx, "")
	if err != nil {
		t.Fatalf("ListQuestions failed: %v", err)
	}
	if len(all) != 4 || all[0].ID != "q1" || all[3].ID != "q4" {
		t.Fatalf("unexpected unfiltered list: %+v", all)
	}

	western, err := store.ListQuestions(ctx, quiz.CultureWestern)
	if err != nil {
		t.Fatalf("ListQuestions(western) failed: %v", err)
	}
	if len(western) != 3 {
		t.Fatalf("expected 3 western questions, got %d", len(western))
	}

	none, err := store.ListQuestions(ctx, "atlantis")
	if err != nil || none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil list, got (%v, %v)", none, err)
	}

	got, err := store.GetQuestion(ctx, "q1")
	if err != nil {
		t.Fatalf("GetQuestion failed: %v", err)
	}
	if got.Tag != "Western Greetings - 1" || len(got.Options) != 2 || got.Options[0] != "right" || !got.CreatedAt.Equal(base) {
		t.Fatalf("unexpected question: %+v", got)
	}

	if _, err := store.GetQuestion(ctx, "missing"); !errors.Is(err, quiz.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}

	count, err := store.CountQuestionsInCategory(ctx, quiz.CultureWestern, "Greetings")
	if err != nil || count != 2 {
		t.Fatalf("expected 2 western greetings, got (%d, %v)", count, err)
	}

	duplicate := sampleQuestion("q5", quiz.CultureWestern, "Greetings", 2, base)
	if err := store.CreateQuestion(ctx, duplicate); !errors.Is(err, quiz.ErrDuplicateTag) {
		t.Fatalf("expected ErrDuplicateTag, got %v", err)
	}
}

func TestStoreAdvancedQuestions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.RandomAdvancedQuestion(ctx, quiz.CultureWestern); !errors.Is(err, quiz.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound on empty table, got %v", err)
	}

	now := time.Unix(1700000000, 0).UTC()
	for _, question := range []quiz.AdvancedQuestion{
		{ID: "a1", Question: "Tipping?", Culture: quiz.CultureWestern, CorrectAnswer: "15-20%", CreatedAt: now},
		{ID: "a2", Question: "Business cards?", Culture: quiz.CultureEastAsian, CorrectAnswer: "Both hands", CreatedAt: now},
	} {
		if err := store.CreateAdvancedQuestion(ctx, question); err != nil {
			t.Fatalf("CreateAdvancedQuestion failed: %v", err)
		}
	}

	for i := 0; i < 5; i++ {
		got, err := store.RandomAdvancedQuestion(ctx, quiz.CultureEastAsian)
		if err != nil {
			t.Fatalf("RandomAdvancedQuestion failed: %v", err)
		}
		if got.ID != "a2" {
			t.Fatalf("expected east asian question, got %+v", got)
		}
	}

	if _, err := store.RandomAdvancedQuestion(ctx, ""); err != nil {
		t.Fatalf("RandomAdvancedQuestion without culture failed: %v", err)
	}
	if _, err := store.RandomAdvancedQuestion(ctx, quiz.CultureSouthAsian); !errors.Is(err, quiz.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound for culture without questions, got %v", err)
	}

	got, err := store.GetAdvancedQuestion(ctx, "a1")
	if err != nil || got.CorrectAnswer != "15-20%" {
		t.Fatalf("unexpected advanced question: (%+v, %v)", got, err)
	}
	if _, err := store.GetAdvancedQuestion(ctx, "missing"); !errors.Is(err, quiz.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestStoreReplaceQuestionBank(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Unix(1700000000, 0).UTC()

	if err := store.CreateQuestion(ctx, sampleQuestion("old", quiz.CultureWestern, "Dining", 1, now)); err != nil {
		t.Fatalf("CreateQuestion failed: %v", err)
	}

	basic := []quiz.BasicQuestion{sampleQuestion("new", quiz.CultureWestern, "Dining", 1, now)}
	advanced := []quiz.AdvancedQuestion{{ID: "adv", Question: "Q", Culture: quiz.CultureWestern, CorrectAnswer: "A", CreatedAt: now}}
	if err := store.ReplaceQuestionBank(ctx, basic, advanced); err != nil {
		t.Fatalf("ReplaceQuestionBank failed: %v", err)
	}

	all, err := store.ListQuestions(ctx, "")
	if err != nil || len(all) != 1 || all[0].ID != "new" {
		t.Fatalf("expected only the replacement question, got (%+v, %v)", all, err)
	}

	broken := []quiz.BasicQuestion{
		sampleQuestion("b1", quiz.CultureWestern, "Dining", 1, now),
		sampleQuestion("b2", quiz.CultureWestern, "Dining", 1, now),
	}
	if err := store.ReplaceQuestionBank(ctx, broken, nil); !errors.Is(err, quiz.ErrDuplicateTag) {
		t.Fatalf("expected ErrDuplicateTag, got %v", err)
	}

	all, err = store.ListQuestions(ctx, "")
	if err != nil || len(all) != 1 || all[0].ID != "new" {
		t.Fatalf("failed replacement must roll back, got (%+v, %v)", all, err)
	}
}

func TestStoreProgressLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t0 := time.Unix(1700000000, 0).UTC()
	progress, err := store.EnsureProgress(ctx, "u1", t0)
	if err != nil {
		t.Fatalf("EnsureProgress failed: %v", err)
	}
	if progress.ID == "" || progress.Score != 0 || len(progress.CompletedQuestions) != 0 || !progress.LastActivity.Equal(t0) {
		t.Fatalf("unexpected fresh progress: %+v", progress)
	}

	again, err := store.EnsureProgress(ctx, "u1", t0.Add(time.Hour))
	if err != nil {
		t.Fatalf("EnsureProgress failed: %v", err)
	}
	if again.ID != progress.ID || !again.LastActivity.Equal(t0) {
		t.Fatalf("EnsureProgress must not modify an existing record: %+v", again)
	}

	t1 := t0.Add(time.Minute)
	touched, err := store.TouchProgress(ctx, "u1", t1)
	if err != nil || !touched.LastActivity.Equal(t1) || touched.Score != 0 {
		t.Fatalf("unexpected touched progress: (%+v, %v)", touched, err)
	}

	t2 := t1.Add(time.Minute)
	inserted, err := store.CompleteQuestion(ctx, "u1", "Western Greetings - 1", t2)
	if err != nil || !inserted {
		t.Fatalf("expected first completion to insert, got (%t, %v)", inserted, err)
	}

	t3 := t2.Add(time.Minute)
	inserted, err = store.CompleteQuestion(ctx, "u1", "Western Greetings - 1", t3)
	if err != nil || inserted {
		t.Fatalf("expected repeat completion to be ignored, got (%t, %v)", inserted, err)
	}

	after, err := store.AddScore(ctx, "u1", 80)
	if err != nil {
		t.Fatalf("AddScore failed: %v", err)
	}
	if after.Score != 81 || len(after.CompletedQuestions) != 1 || after.CompletedQuestions[0] != "Western Greetings - 1" {
		t.Fatalf("unexpected progress after scoring: %+v", after)
	}
	if !after.LastActivity.Equal(t3) {
		t.Fatalf("expected last activity %v, got %v", t3, after.LastActivity)
	}

	if _, err := store.AddScore(ctx, "nobody", 5); err == nil {
		t.Fatalf("expected AddScore to fail without a progress record")
	}
}

func TestStoreCompleteQuestionCreatesProgress(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Unix(1700000000, 0).UTC()

	inserted, err := store.CompleteQuestion(ctx, "u2", "East Asian Dining - 1", now)
	if err != nil || !inserted {
		t.Fatalf("CompleteQuestion failed: (%t, %v)", inserted, err)
	}

	progress, err := store.EnsureProgress(ctx, "u2", now.Add(time.Hour))
	if err != nil || progress.Score != 1 || !progress.LastActivity.Equal(now) {
		t.Fatalf("unexpected progress: (%+v, %v)", progress, err)
	}
}

func TestStoreConcurrentCompletionsScoreOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Unix(1700000000, 0).UTC()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		newCount int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inserted, err := store.CompleteQuestion(ctx, "u3", "Western Dining - 1", now)
			if err != nil {
				t.Errorf("CompleteQuestion failed: %v", err)
				return
			}
			if inserted {
				mu.Lock()
				newCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	progress, err := store.EnsureProgress(ctx, "u3", now)
	if err != nil {
		t.Fatalf("EnsureProgress failed: %v", err)
	}
	if newCount != 1 || progress.Score != 1 || len(progress.CompletedQuestions) != 1 {
		t.Fatalf("expected a single scored completion, got inserted=%d progress=%+v", newCount, progress)
	}
}

package quiz

import (
	"context"
	"sync"
	"time"
)

const DefaultQuestionCacheTTL = 5 * time.Minute

// QuestionCache is a read-through cache of question lists keyed by culture.
// The empty culture stands for the unfiltered list.
type QuestionCache interface {
	GetQuestions(ctx context.Context, culture string) ([]BasicQuestion, bool, error)
	SetQuestions(ctx context.Context, culture string, questions []BasicQuestion) error
	InvalidateQuestions(ctx context.Context, cultures ...string) error
}

type memoryEntry struct {
	questions []BasicQuestion
	expiresAt time.Time
}

// MemoryQuestionCache keeps lists in process for ttl. Expiry bounds how long a
// write made elsewhere, such as a reseed, stays invisible.
type MemoryQuestionCache struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	byCulture map[string]memoryEntry
}

func NewMemoryQuestionCache(ttl time.Duration) *MemoryQuestionCache {
	if ttl <= 0 {
		ttl = DefaultQuestionCacheTTL
	}
	return &MemoryQuestionCache{
		ttl:       ttl,
		now:       time.Now,
		byCulture: make(map[string]memoryEntry),
	}
}

func (c *MemoryQuestionCache) GetQuestions(_ context.Context, culture string) ([]BasicQuestion, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.byCulture[culture]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.byCulture, culture)
		return nil, false, nil
	}
	// Return direct cached memory; callers treat the slice as read-only.
	return entry.questions, true, nil
}

func (c *MemoryQuestionCache) SetQuestions(_ context.Context, culture string, questions []BasicQuestion) error {
	if questions == nil {
		questions = make([]BasicQuestion, 0)
	}

	c.mu.Lock()
	c.byCulture[culture] = memoryEntry{
		questions: questions,
		expiresAt: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
	return nil
}

func (c *MemoryQuestionCache) InvalidateQuestions(_ context.Context, cultures ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, culture := range cultures {
		delete(c.byCulture, culture)
	}
	return nil
}

// cacheable limits cache keys to the unfiltered list and known cultures, so
// arbitrary query strings never create entries.
func cacheable(culture string) bool {
	if culture == "" {
		return true
	}
	_, ok := CultureName(culture)
	return ok
}

// cacheGeneration returns the invalidation counter for culture. A list read
// from the store is only cached if the counter has not moved since.
func (s *Service) cacheGeneration(culture string) uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.cacheGen[culture]
}

func (s *Service) cachedQuestions(ctx context.Context, culture string) ([]BasicQuestion, bool) {
	if s.cache == nil || !cacheable(culture) {
		return nil, false
	}

	questions, ok, err := s.cache.GetQuestions(ctx, culture)
	if err != nil {
		// A broken cache degrades to direct store reads.
		s.logger.WithError(err).WithField("culture", culture).Warn("question cache read failed")
		return nil, false
	}
	return questions, ok
}

func (s *Service) storeCachedQuestions(ctx context.Context, culture string, generation uint64, questions []BasicQuestion) {
	if s.cache == nil || !cacheable(culture) {
		return
	}

	// Held across the write so an invalidation cannot land between the
	// generation check and SetQuestions.
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cacheGen[culture] != generation {
		return
	}
	if err := s.cache.SetQuestions(ctx, culture, questions); err != nil {
		s.logger.WithError(err).WithField("culture", culture).Warn("question cache write failed")
	}
}

func (s *Service) invalidateCachedQuestions(ctx context.Context, culture string) {
	if s.cache == nil {
		return
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.cacheGen[""]++
	s.cacheGen[culture]++
	if err := s.cache.InvalidateQuestions(ctx, "", culture); err != nil {
		s.logger.WithError(err).WithField("culture", culture).Warn("question cache invalidation failed")
	}
}

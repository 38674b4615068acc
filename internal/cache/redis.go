package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mannerisms/internal/quiz"
)

const (
	DefaultTTL = 5 * time.Minute

	keyPrefix = "quiz:questions:"
	allKey    = "all"
)

// RedisQuestionCache stores question lists as JSON documents, one key per
// culture plus one for the unfiltered list.
type RedisQuestionCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisQuestionCache(client redis.UniversalClient, ttl time.Duration) *RedisQuestionCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisQuestionCache{
		client: client,
		ttl:    ttl,
	}
}

func questionsKey(culture string) string {
	if culture == "" {
		return keyPrefix + allKey
	}
	return keyPrefix + culture
}

func (c *RedisQuestionCache) GetQuestions(ctx context.Context, culture string) ([]quiz.BasicQuestion, bool, error) {
	raw, err := c.client.Get(ctx, questionsKey(culture)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached questions: %w", err)
	}

	var questions []quiz.BasicQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, false, fmt.Errorf("decode cached questions: %w", err)
	}
	if questions == nil {
		questions = make([]quiz.BasicQuestion, 0)
	}
	return questions, true, nil
}

func (c *RedisQuestionCache) SetQuestions(ctx context.Context, culture string, questions []quiz.BasicQuestion) error {
	if questions == nil {
		questions = make([]quiz.BasicQuestion, 0)
	}

	raw, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	if err := c.client.Set(ctx, questionsKey(culture), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached questions: %w", err)
	}
	return nil
}

func (c *RedisQuestionCache) InvalidateQuestions(ctx context.Context, cultures ...string) error {
	if len(cultures) == 0 {
		return nil
	}

	keys := make([]string, 0, len(cultures))
	for _, culture := range cultures {
		keys = append(keys, questionsKey(culture))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate cached questions: %w", err)
	}
	return nil
}

// Ping reports whether the Redis server is reachable.
func (c *RedisQuestionCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

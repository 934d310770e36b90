package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"mcq-quiz/internal/cache"
	"mcq-quiz/internal/domain"
	"mcq-quiz/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedQuestionSource reuses question sets generated for the same topic and
// count, and collapses concurrent identical requests into one model call.
type CachedQuestionSource struct {
	next    domain.QuestionSource
	cache   domain.Cache
	ttl     time.Duration
	variant string
	sfGroup singleflight.Group
}

// NewCachedQuestionSource returns next unchanged when caching is disabled
// (nil cache or non-positive ttl). variant separates entries per model.
func NewCachedQuestionSource(next domain.QuestionSource, c domain.Cache, ttl time.Duration, variant string) domain.QuestionSource {
	if c == nil || ttl <= 0 {
		return next
	}
	return &CachedQuestionSource{
		next:    next,
		cache:   c,
		ttl:     ttl,
		variant: variant,
	}
}

func (s *CachedQuestionSource) cacheKey(topic string, count int) string {
	return cache.GenerateCacheKey("quizgen", "questions", cache.HashIdentifier(topic), strconv.Itoa(count), s.variant)
}

// Generate serves from the cache when possible. Failures and empty results are never cached.
func (s *CachedQuestionSource) Generate(ctx context.Context, topic string, count int) ([]domain.QuestionRecord, error) {
	l := logger.Get()
	key := s.cacheKey(topic, count)

	cached, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		var questions []domain.QuestionRecord
		if errDecode := json.Unmarshal([]byte(cached), &questions); errDecode == nil && len(questions) > 0 {
			l.Debug("Generated quiz cache hit", zap.String("key", key))
			return questions, nil
		}
		l.Warn("Discarding undecodable generated quiz cache entry", zap.String("key", key))
	case errors.Is(err, domain.ErrCacheMiss):
		l.Debug("Generated quiz cache miss", zap.String("key", key))
	default:
		l.Warn("Failed to read generated quiz cache, generating", zap.Error(err), zap.String("key", key))
	}

	// The shared call outlives any single caller; the wrapped source bounds it
	// with its own timeout.
	genCtx := context.WithoutCancel(ctx)
	ch := s.sfGroup.DoChan(key, func() (interface{}, error) {
		questions, errGen := s.next.Generate(genCtx, topic, count)
		if errGen != nil {
			return nil, errGen
		}
		if len(questions) == 0 {
			return questions, nil
		}

		data, errMarshal := json.Marshal(questions)
		if errMarshal != nil {
			l.Error("Failed to encode generated quiz for caching", zap.Error(errMarshal))
			return questions, nil
		}
		if errSet := s.cache.Set(genCtx, key, string(data), s.ttl); errSet != nil {
			l.Warn("Failed to cache generated quiz", zap.Error(errSet), zap.String("key", key))
		}
		return questions, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		l.Debug("Generated quiz shared between concurrent requests", zap.String("key", key))
	}

	questions, ok := res.Val.([]domain.QuestionRecord)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight for generated quiz: %T", res.Val)
	}
	return slices.Clone(questions), nil
}

var _ domain.QuestionSource = (*CachedQuestionSource)(nil)

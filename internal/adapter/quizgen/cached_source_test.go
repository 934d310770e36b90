package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"mcq-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCache is a minimal domain.Cache for exercising the decorator.
type memoryCache struct {
	mu     sync.Mutex
	items  map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.items[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (m *memoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.items[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *memoryCache) Ping(context.Context) error { return nil }

// countingSource returns a fixed result and counts calls.
type countingSource struct {
	mu        sync.Mutex
	calls     int
	questions []domain.QuestionRecord
	err       error
}

func (s *countingSource) Generate(context.Context, string, int) ([]domain.QuestionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.questions, s.err
}

func parsedSample(t *testing.T) []domain.QuestionRecord {
	t.Helper()
	qs := ParseQuestions(fiveBlockResponse).Questions
	require.Len(t, qs, 3)
	return qs
}

func TestNewCachedQuestionSource_Disabled(t *testing.T) {
	next := &countingSource{}

	assert.Same(t, next, NewCachedQuestionSource(next, nil, time.Hour, "ollama").(*countingSource))
	assert.Same(t, next, NewCachedQuestionSource(next, newMemoryCache(), 0, "ollama").(*countingSource))
}

func TestCachedQuestionSource_MissThenHit(t *testing.T) {
	ctx := context.Background()
	c := newMemoryCache()
	next := &countingSource{questions: parsedSample(t)}
	src := NewCachedQuestionSource(next, c, time.Hour, "ollama_qwen3")

	first, err := src.Generate(ctx, "General Knowledge", 5)
	require.NoError(t, err)
	second, err := src.Generate(ctx, "  general knowledge ", 5)
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, first, second)

	key := src.(*CachedQuestionSource).cacheKey("general knowledge", 5)
	assert.Equal(t, time.Hour, c.ttls[key])
	var stored []domain.QuestionRecord
	require.NoError(t, json.Unmarshal([]byte(c.items[key]), &stored))
	assert.Equal(t, first, stored)
}

func TestCachedQuestionSource_KeyIncludesCount(t *testing.T) {
	ctx := context.Background()
	next := &countingSource{questions: parsedSample(t)}
	src := NewCachedQuestionSource(next, newMemoryCache(), time.Hour, "ollama")

	_, err := src.Generate(ctx, "space", 3)
	require.NoError(t, err)
	_, err = src.Generate(ctx, "space", 10)
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls)
}

func TestCachedQuestionSource_DoesNotCacheEmptyOrErrors(t *testing.T) {
	ctx := context.Background()
	c := newMemoryCache()

	empty := &countingSource{}
	src := NewCachedQuestionSource(empty, c, time.Hour, "ollama")
	for i := 0; i < 2; i++ {
		qs, err := src.Generate(ctx, "nothing", 2)
		require.NoError(t, err)
		assert.Empty(t, qs)
	}
	assert.Equal(t, 2, empty.calls)
	assert.Empty(t, c.items)

	failing := &countingSource{err: domain.NewLLMServiceError(errors.New("down"))}
	src = NewCachedQuestionSource(failing, c, time.Hour, "ollama")
	_, err := src.Generate(ctx, "broken", 2)
	assert.True(t, errors.Is(err, domain.ErrLLMService))
	assert.Empty(t, c.items)
}

func TestCachedQuestionSource_CacheFailuresFallThrough(t *testing.T) {
	ctx := context.Background()
	c := newMemoryCache()
	c.getErr = errors.New("redis down")
	c.setErr = errors.New("redis down")
	next := &countingSource{questions: parsedSample(t)}
	src := NewCachedQuestionSource(next, c, time.Hour, "ollama")

	qs, err := src.Generate(ctx, "space", 3)

	require.NoError(t, err)
	assert.Len(t, qs, 3)
	assert.Equal(t, 1, next.calls)
}

func TestCachedQuestionSource_CorruptEntryRegenerates(t *testing.T) {
	ctx := context.Background()
	c := newMemoryCache()
	next := &countingSource{questions: parsedSample(t)}
	src := NewCachedQuestionSource(next, c, time.Hour, "ollama")
	c.items[src.(*CachedQuestionSource).cacheKey("space", 3)] = "{not json"

	qs, err := src.Generate(ctx, "space", 3)

	require.NoError(t, err)
	assert.Len(t, qs, 3)
	assert.Equal(t, 1, next.calls)
}

func TestCachedQuestionSource_ReturnsIndependentSlices(t *testing.T) {
	ctx := context.Background()
	next := &countingSource{questions: parsedSample(t)}
	src := NewCachedQuestionSource(next, newMemoryCache(), time.Hour, "ollama")

	qs, err := src.Generate(ctx, "space", 3)
	require.NoError(t, err)
	qs[0] = domain.QuestionRecord{Question: "mutated"}

	assert.NotEqual(t, "mutated", next.questions[0].Question)
}

// gatedSource blocks until release is closed or its own context ends.
type gatedSource struct {
	started   chan struct{}
	release   chan struct{}
	startOnce sync.Once
	questions []domain.QuestionRecord
}

func (s *gatedSource) Generate(ctx context.Context, _ string, _ int) ([]domain.QuestionRecord, error) {
	s.startOnce.Do(func() { close(s.started) })
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.release:
		return s.questions, nil
	}
}

func TestCachedQuestionSource_CancelledCallerDoesNotFailOthers(t *testing.T) {
	c := newMemoryCache()
	next := &gatedSource{
		started:   make(chan struct{}),
		release:   make(chan struct{}),
		questions: parsedSample(t),
	}
	src := NewCachedQuestionSource(next, c, time.Hour, "ollama")

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	defer cancelFirst()
	firstErr := make(chan error, 1)
	go func() {
		_, err := src.Generate(firstCtx, "space", 3)
		firstErr <- err
	}()
	<-next.started

	type result struct {
		questions []domain.QuestionRecord
		err       error
	}
	second := make(chan result, 1)
	go func() {
		qs, err := src.Generate(context.Background(), "space", 3)
		second <- result{qs, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(next.release)
	select {
	case res := <-second:
		require.NoError(t, res.err)
		assert.Len(t, res.questions, 3)
	case <-time.After(time.Second):
		t.Fatal("live caller did not return")
	}

	key := src.(*CachedQuestionSource).cacheKey("space", 3)
	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Contains(t, c.items, key)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"mcq-quiz/internal/cache"
	"mcq-quiz/internal/domain"
	"mcq-quiz/internal/logger"

	"go.uber.org/zap"
)

// SessionStore keeps quiz sessions between requests.
type SessionStore interface {
	Put(ctx context.Context, sess domain.QuizSession) error
	Get(ctx context.Context, id string) (domain.QuizSession, error)
	Delete(ctx context.Context, id string) error
}

// cacheSessionStore implements SessionStore using a generic cache.
type cacheSessionStore struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewCacheSessionStore stores sessions as JSON in c. Every Put refreshes the TTL.
func NewCacheSessionStore(c domain.Cache, ttl time.Duration) SessionStore {
	if c == nil {
		logger.Get().Warn("Session store initialized without a cache, falling back to process memory")
		return NewMemorySessionStore()
	}
	return &cacheSessionStore{
		cache: c,
		ttl:   ttl,
	}
}

func (s *cacheSessionStore) generateKey(id string) string {
	return cache.GenerateCacheKey("quiz", "session", id)
}

func (s *cacheSessionStore) Put(ctx context.Context, sess domain.QuizSession) error {
	if sess.ID == "" {
		return domain.NewInvalidInputError("cannot store a session without an id")
	}

	key := s.generateKey(sess.ID)
	data, err := json.Marshal(sess)
	if err != nil {
		logger.Get().Error("Failed to marshal quiz session", zap.Error(err), zap.String("sessionID", sess.ID))
		return domain.NewInternalError("failed to marshal quiz session", err)
	}

	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to store quiz session", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to store quiz session for key %s", key), err)
	}
	logger.Get().Debug("Stored quiz session", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

func (s *cacheSessionStore) Get(ctx context.Context, id string) (domain.QuizSession, error) {
	key := s.generateKey(id)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Quiz session cache miss", zap.String("key", key))
			return domain.QuizSession{}, domain.NewSessionNotFoundError(id)
		}
		logger.Get().Error("Failed to get quiz session", zap.Error(err), zap.String("key", key))
		return domain.QuizSession{}, domain.NewInternalError(fmt.Sprintf("failed to get quiz session for key %s", key), err)
	}
	if data == "" {
		return domain.QuizSession{}, domain.NewSessionNotFoundError(id)
	}

	var sess domain.QuizSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		logger.Get().Error("Failed to unmarshal quiz session", zap.Error(err), zap.String("key", key))
		return domain.QuizSession{}, domain.NewInternalError(fmt.Sprintf("failed to unmarshal quiz session for key %s", key), err)
	}
	if sess.UserAnswers == nil {
		sess.UserAnswers = []string{}
	}
	return sess, nil
}

func (s *cacheSessionStore) Delete(ctx context.Context, id string) error {
	key := s.generateKey(id)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Get().Error("Failed to delete quiz session", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to delete quiz session for key %s", key), err)
	}
	return nil
}

// memorySessionStore is used by the terminal player and when no cache is configured.
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.QuizSession
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[string]domain.QuizSession)}
}

func (s *memorySessionStore) Put(_ context.Context, sess domain.QuizSession) error {
	if sess.ID == "" {
		return domain.NewInvalidInputError("cannot store a session without an id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, id string) (domain.QuizSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domain.QuizSession{}, domain.NewSessionNotFoundError(id)
	}
	return sess, nil
}

func (s *memorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

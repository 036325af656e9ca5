// Package session tracks the page each authenticated session is
// currently on. Page state is ephemeral view state: it is created when
// a session starts, overwritten on every accepted navigation, and
// cleared at logout.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/issue-dashboard/internal/domain"
)

// ErrNoSession is returned when no page state exists for a session.
var ErrNoSession = errors.New("session not found")

// PageStore persists the current page per session.
type PageStore interface {
	SetPage(ctx context.Context, sessionID string, page domain.Page) error
	GetPage(ctx context.Context, sessionID string) (domain.Page, error)
	Clear(ctx context.Context, sessionID string) error
}

const keyPrefix = "session:page:"

// RedisPageStore keeps page state in Redis with a TTL matching the
// access token lifetime.
type RedisPageStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPageStore builds a Redis-backed store.
func NewRedisPageStore(client *redis.Client, ttl time.Duration) *RedisPageStore {
	return &RedisPageStore{client: client, ttl: ttl}
}

var _ PageStore = (*RedisPageStore)(nil)

func (s *RedisPageStore) SetPage(ctx context.Context, sessionID string, page domain.Page) error {
	return s.client.Set(ctx, keyPrefix+sessionID, string(page), s.ttl).Err()
}

func (s *RedisPageStore) GetPage(ctx context.Context, sessionID string) (domain.Page, error) {
	val, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoSession
		}
		return "", err
	}
	return domain.Page(val), nil
}

func (s *RedisPageStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, keyPrefix+sessionID).Err()
}

// MemoryPageStore is the in-process fallback used when Redis is not
// configured, and in tests.
type MemoryPageStore struct {
	mu    sync.Mutex
	pages map[string]domain.Page
}

// NewMemoryPageStore creates an empty store.
func NewMemoryPageStore() *MemoryPageStore {
	return &MemoryPageStore{pages: make(map[string]domain.Page)}
}

var _ PageStore = (*MemoryPageStore)(nil)

func (s *MemoryPageStore) SetPage(_ context.Context, sessionID string, page domain.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[sessionID] = page
	return nil
}

func (s *MemoryPageStore) GetPage(_ context.Context, sessionID string) (domain.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	page, ok := s.pages[sessionID]
	if !ok {
		return "", ErrNoSession
	}
	return page, nil
}

func (s *MemoryPageStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pages, sessionID)
	return nil
}

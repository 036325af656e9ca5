// Package memory provides in-process implementations of the repository
// interfaces. They back the service when no Postgres DSN is configured
// and are the substrate for service-level tests. All implementations
// keep insertion order and hand out copies so callers never alias the
// stored records.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/spec-kit/issue-dashboard/internal/domain"
	"github.com/spec-kit/issue-dashboard/internal/repository"
)

// UserStore is an in-memory repository.UserRepository.
type UserStore struct {
	mu     sync.Mutex
	seq    int64
	order  []string
	users  map[string]domain.User
	byName map[string]string
}

// NewUserStore creates an empty store.
func NewUserStore() *UserStore {
	return &UserStore{
		users:  make(map[string]domain.User),
		byName: make(map[string]string),
	}
}

var _ repository.UserRepository = (*UserStore)(nil)

func (s *UserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[user.Username]; exists {
		return repository.ErrDuplicate
	}

	s.seq++
	user.ID = strconv.FormatInt(s.seq, 10)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.ID] = *user
	s.byName[user.Username] = user.ID
	s.order = append(s.order, user.ID)
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (s *UserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byName[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := s.users[id]
	return &user, nil
}

func (s *UserStore) List(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.User, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.users[id])
	}
	return result, nil
}

package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/spec-kit/issue-dashboard/internal/domain"
	"github.com/spec-kit/issue-dashboard/internal/repository"
)

// WorkerStore is an in-memory repository.WorkerRepository.
type WorkerStore struct {
	mu      sync.Mutex
	seq     int64
	order   []string
	workers map[string]domain.Worker
}

// NewWorkerStore creates an empty store.
func NewWorkerStore() *WorkerStore {
	return &WorkerStore{workers: make(map[string]domain.Worker)}
}

var _ repository.WorkerRepository = (*WorkerStore)(nil)

func (s *WorkerStore) Create(_ context.Context, worker *domain.Worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	worker.ID = strconv.FormatInt(s.seq, 10)
	if worker.CreatedAt.IsZero() {
		worker.CreatedAt = time.Now()
	}
	s.workers[worker.ID] = *worker
	s.order = append(s.order, worker.ID)
	return nil
}

func (s *WorkerStore) GetByID(_ context.Context, id string) (*domain.Worker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	worker, ok := s.workers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &worker, nil
}

func (s *WorkerStore) GetByName(_ context.Context, name string) (*domain.Worker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		if worker := s.workers[id]; worker.Name == name {
			return &worker, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *WorkerStore) List(_ context.Context) ([]domain.Worker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Worker, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.workers[id])
	}
	return result, nil
}

func (s *WorkerStore) AdjustLoad(_ context.Context, id string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	worker, ok := s.workers[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	worker.AssignedIssues += delta
	if worker.AssignedIssues < 0 {
		worker.AssignedIssues = 0
	}
	s.workers[id] = worker
	return worker.AssignedIssues, nil
}

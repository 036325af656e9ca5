package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/issue-dashboard/internal/domain"
	"github.com/spec-kit/issue-dashboard/internal/repository"
	apperrors "github.com/spec-kit/issue-dashboard/pkg/util"
)

// WorkloadService owns the per-worker open-assignment counters. The
// counters move in lockstep with assignment and resolution via the
// WorkflowService; nothing else writes them.
type WorkloadService struct {
	workers repository.WorkerRepository
}

// NewWorkloadService creates the service.
func NewWorkloadService(workers repository.WorkerRepository) *WorkloadService {
	return &WorkloadService{workers: workers}
}

// Increment bumps the worker's open-assignment count. No upper bound.
func (s *WorkloadService) Increment(ctx context.Context, workerID string) (int, error) {
	return s.adjust(ctx, workerID, 1)
}

// Decrement lowers the count, flooring at zero. The floor tolerates
// duplicate or mis-ordered decrements without going negative.
func (s *WorkloadService) Decrement(ctx context.Context, workerID string) (int, error) {
	return s.adjust(ctx, workerID, -1)
}

func (s *WorkloadService) adjust(ctx context.Context, workerID string, delta int) (int, error) {
	count, err := s.workers.AdjustLoad(ctx, workerID, delta)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, apperrors.NewNotFound("worker", map[string]any{"worker_id": workerID})
		}
		return 0, apperrors.NewUnavailable(err)
	}
	return count, nil
}

// GetWorker returns the worker or NotFound. Lookup is by id only; the
// name-based reverse lookup needed at resolution time lives in the
// WorkflowService.
func (s *WorkloadService) GetWorker(ctx context.Context, workerID string) (*domain.Worker, error) {
	worker, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("worker", map[string]any{"worker_id": workerID})
		}
		return nil, apperrors.NewUnavailable(err)
	}
	return worker, nil
}

// ListWorkers returns all workers in insertion order.
func (s *WorkloadService) ListWorkers(ctx context.Context) ([]domain.Worker, error) {
	workers, err := s.workers.List(ctx)
	if err != nil {
		return nil, apperrors.NewUnavailable(err)
	}
	return workers, nil
}

// CreateWorker registers a new worker with a zero open-assignment
// count.
func (s *WorkloadService) CreateWorker(ctx context.Context, name string) (*domain.Worker, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	worker := &domain.Worker{Name: name, AssignedIssues: 0}
	if err := s.workers.Create(ctx, worker); err != nil {
		return nil, apperrors.NewUnavailable(err)
	}
	return worker, nil
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/issue-dashboard/internal/config"
	"github.com/spec-kit/issue-dashboard/internal/domain"
	"github.com/spec-kit/issue-dashboard/internal/events"
	"github.com/spec-kit/issue-dashboard/internal/repository"
	apperrors "github.com/spec-kit/issue-dashboard/pkg/util"
)

// WorkflowService orchestrates the cross-entity operations that must
// leave issues and worker counters consistent: assignment, resolution
// and deletion. It is the only writer of worker counters.
//
// All mutations are write-then-reflect: the authoritative store is
// updated first and returned state is read back from it, so a failed
// write never leaves the caller holding state the store does not have.
type WorkflowService struct {
	issues     *IssueService
	workload   *WorkloadService
	auth       *AuthService
	workers    repository.WorkerRepository
	dispatcher events.Dispatcher
	cfg        config.WorkflowConfig
}

// WorkflowDependencies bundles collaborator services.
type WorkflowDependencies struct {
	IssueService    *IssueService
	WorkloadService *WorkloadService
	AuthService     *AuthService
	WorkerRepo      repository.WorkerRepository
	Dispatcher      events.Dispatcher
}

// NewWorkflowService creates the service.
func NewWorkflowService(cfg config.WorkflowConfig, deps WorkflowDependencies) *WorkflowService {
	return &WorkflowService{
		issues:     deps.IssueService,
		workload:   deps.WorkloadService,
		auth:       deps.AuthService,
		workers:    deps.WorkerRepo,
		dispatcher: deps.Dispatcher,
		cfg:        cfg,
	}
}

// AssignWorker assigns the issue to the worker (by the worker's name,
// the issue side of the reference) and increments the worker's open
// count. Status is untouched: assignment keeps the issue Pending.
//
// When ReleaseOnReassign is off (the default, matching the upstream
// behavior) reassigning an already-assigned issue leaves the previous
// worker's counter untouched until the issue is resolved.
func (s *WorkflowService) AssignWorker(ctx context.Context, actorID, issueID, workerID string) (*domain.Issue, *domain.Worker, error) {
	worker, err := s.lookupWorker(ctx, workerID)
	if err != nil {
		return nil, nil, err
	}

	previous, err := s.issues.Get(ctx, issueID)
	if err != nil {
		return nil, nil, err
	}

	// The previous worker is released first so that each later failure
	// needs at most one compensating write.
	var released *domain.Worker
	if s.cfg.ReleaseOnReassign && previous.Assigned() && previous.AssignedTo != worker.Name {
		released, err = s.release(ctx, previous.AssignedTo)
		if err != nil {
			return nil, nil, err
		}
	}

	issue, err := s.issues.SetAssignee(ctx, issueID, worker.Name)
	if err != nil {
		s.undoRelease(ctx, released)
		return nil, nil, err
	}

	count, err := s.workload.Increment(ctx, workerID)
	if err != nil {
		// A failed counter write discards the assignment; the caller
		// never observes the issue updated without the counter.
		_, _ = s.issues.SetAssignee(ctx, issueID, previous.AssignedTo)
		s.undoRelease(ctx, released)
		return nil, nil, err
	}
	worker.AssignedIssues = count

	s.publish(ctx, actorID, events.EventIssueAssigned, issue.ID, events.IssueAssignedPayload{
		WorkerID:   worker.ID,
		WorkerName: worker.Name,
		OpenCount:  count,
	})
	return issue, worker, nil
}

// ResolveIssue marks the issue Resolved, keeping the assignee on the
// record, and releases the assignee's open slot. The worker is found
// by reverse name lookup; if no worker matches (renamed, deleted) the
// decrement is skipped, a stale back-reference is tolerated rather
// than fatal. Store failures during the release propagate and leave
// the issue untouched.
func (s *WorkflowService) ResolveIssue(ctx context.Context, actorID, issueID string) (*domain.Issue, error) {
	issue, err := s.issues.Get(ctx, issueID)
	if err != nil {
		return nil, err
	}

	var released *domain.Worker
	if issue.Assigned() {
		released, err = s.release(ctx, issue.AssignedTo)
		if err != nil {
			return nil, err
		}
	}

	resolved, err := s.issues.MarkResolved(ctx, issueID)
	if err != nil {
		s.undoRelease(ctx, released)
		return nil, err
	}

	s.publish(ctx, actorID, events.EventIssueResolved, resolved.ID, events.IssueResolvedPayload{
		AssignedTo: resolved.AssignedTo,
	})
	return resolved, nil
}

// DeleteIssue removes the issue. A still-open assignment is released
// first so the assignee's counter does not stay inflated by a record
// that no longer exists.
func (s *WorkflowService) DeleteIssue(ctx context.Context, issueID string) error {
	issue, err := s.issues.Get(ctx, issueID)
	if err != nil {
		return err
	}
	var released *domain.Worker
	if issue.Status == domain.IssueStatusPending && issue.Assigned() {
		released, err = s.release(ctx, issue.AssignedTo)
		if err != nil {
			return err
		}
	}
	if err := s.issues.Delete(ctx, issueID); err != nil {
		s.undoRelease(ctx, released)
		return err
	}
	return nil
}

// AddIssue is a thin pass-through to the issue store.
func (s *WorkflowService) AddIssue(ctx context.Context, actorID string, input IssueCreateInput) (*domain.Issue, error) {
	issue, err := s.issues.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, actorID, events.EventIssueCreated, issue.ID, events.IssueCreatedPayload{
		Title:      issue.Title,
		Brand:      issue.Brand,
		ReportedBy: issue.ReportedBy,
	})
	return issue, nil
}

// RegisterUser is a thin pass-through to the auth service.
func (s *WorkflowService) RegisterUser(ctx context.Context, input RegisterInput) (*domain.User, error) {
	return s.auth.Register(ctx, input)
}

// Login is a thin pass-through to the auth service.
func (s *WorkflowService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	return s.auth.Login(ctx, username, password)
}

func (s *WorkflowService) lookupWorker(ctx context.Context, workerID string) (*domain.Worker, error) {
	worker, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("worker", map[string]any{"worker_id": workerID})
		}
		return nil, apperrors.NewUnavailable(err)
	}
	return worker, nil
}

// release decrements the open count of the worker with the given name
// and returns the worker it decremented. Exactly two conditions are
// absorbed as no-ops (nil, nil): no worker carries the name (a stale
// weak reference) and a counter already at zero. Any other lookup or
// store failure propagates.
func (s *WorkflowService) release(ctx context.Context, name string) (*domain.Worker, error) {
	worker, err := s.workers.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewUnavailable(err)
	}
	if worker.AssignedIssues == 0 {
		return nil, nil
	}
	if _, err := s.workload.Decrement(ctx, worker.ID); err != nil {
		return nil, err
	}
	return worker, nil
}

// undoRelease is the best-effort compensation for a release that was
// followed by a failed write.
func (s *WorkflowService) undoRelease(ctx context.Context, released *domain.Worker) {
	if released != nil {
		_, _ = s.workload.Increment(ctx, released.ID)
	}
}

func (s *WorkflowService) publish(ctx context.Context, actorID string, eventType events.EventType, issueID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		IssueID:   issueID,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	}
	_ = s.dispatcher.Publish(ctx, event)
}

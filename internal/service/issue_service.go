package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/issue-dashboard/internal/domain"
	"github.com/spec-kit/issue-dashboard/internal/repository"
	apperrors "github.com/spec-kit/issue-dashboard/pkg/util"
)

// IssueService owns issue records and their field constraints. Status
// transitions that also touch worker counters go through the
// WorkflowService; this service never mutates worker state.
type IssueService struct {
	issues repository.IssueRepository
}

// NewIssueService creates the service.
func NewIssueService(issues repository.IssueRepository) *IssueService {
	return &IssueService{issues: issues}
}

// IssueCreateInput carries validated-on-entry issue fields.
type IssueCreateInput struct {
	Title       string
	Description string
	Brand       domain.Brand
	ReportedBy  string
}

// IssueContentPatch updates descriptive fields only. Status and
// assignee changes are workflow transitions, not edits.
type IssueContentPatch struct {
	Title       *string
	Description *string
	Brand       *domain.Brand
}

// Create validates input and stores a new issue in Pending state with
// no assignee. Ids are monotonic and never reused.
func (s *IssueService) Create(ctx context.Context, input IssueCreateInput) (*domain.Issue, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	reportedBy := strings.TrimSpace(input.ReportedBy)

	missing := map[string]any{}
	if title == "" {
		missing["title"] = "required"
	}
	if description == "" {
		missing["description"] = "required"
	}
	if reportedBy == "" {
		missing["reported_by"] = "required"
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("title, description, reported_by required", missing)
	}
	if !domain.ValidBrand(input.Brand) {
		return nil, apperrors.NewValidationError("unknown brand", map[string]any{"brand": input.Brand})
	}

	issue := &domain.Issue{
		Title:       title,
		Description: description,
		Brand:       input.Brand,
		Status:      domain.IssueStatusPending,
		ReportedBy:  reportedBy,
		CreatedAt:   today(),
	}
	if err := s.issues.Create(ctx, issue); err != nil {
		return nil, apperrors.NewUnavailable(err)
	}
	return issue, nil
}

// Get returns the issue or NotFound.
func (s *IssueService) Get(ctx context.Context, id string) (*domain.Issue, error) {
	issue, err := s.issues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("issue", map[string]any{"issue_id": id})
		}
		return nil, apperrors.NewUnavailable(err)
	}
	return issue, nil
}

// List returns issues matching the filter in insertion order.
func (s *IssueService) List(ctx context.Context, filter repository.IssueFilter) ([]domain.Issue, error) {
	if filter.Status != nil {
		switch *filter.Status {
		case domain.IssueStatusPending, domain.IssueStatusResolved:
		default:
			return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": *filter.Status})
		}
	}
	if filter.Brand != nil && !domain.ValidBrand(*filter.Brand) {
		return nil, apperrors.NewValidationError("unknown brand", map[string]any{"brand": *filter.Brand})
	}
	issues, err := s.issues.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewUnavailable(err)
	}
	return issues, nil
}

// ListByBrand returns the brand's issues in insertion order.
func (s *IssueService) ListByBrand(ctx context.Context, brand domain.Brand) ([]domain.Issue, error) {
	return s.List(ctx, repository.IssueFilter{Brand: &brand})
}

// SetAssignee records workerName as the issue's assignee without
// touching status. Reassignment over an existing assignee is allowed
// here; the workload bookkeeping for the previous worker is the
// WorkflowService's responsibility.
func (s *IssueService) SetAssignee(ctx context.Context, id, workerName string) (*domain.Issue, error) {
	issue, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	issue.AssignedTo = workerName
	if err := s.update(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

// MarkResolved moves the issue to Resolved. The assignee is preserved
// so the record still shows who handled it. Resolved is terminal.
func (s *IssueService) MarkResolved(ctx context.Context, id string) (*domain.Issue, error) {
	issue, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	issue.Status = domain.IssueStatusResolved
	if err := s.update(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

// UpdateContent edits descriptive fields of an existing issue.
func (s *IssueService) UpdateContent(ctx context.Context, id string, patch IssueContentPatch) (*domain.Issue, error) {
	issue, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title must not be empty", nil)
		}
		issue.Title = title
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if description == "" {
			return nil, apperrors.NewValidationError("description must not be empty", nil)
		}
		issue.Description = description
	}
	if patch.Brand != nil {
		if !domain.ValidBrand(*patch.Brand) {
			return nil, apperrors.NewValidationError("unknown brand", map[string]any{"brand": *patch.Brand})
		}
		issue.Brand = *patch.Brand
	}
	if err := s.update(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

// Delete removes the issue record. Counter bookkeeping for a deleted
// open assignment is handled by the WorkflowService.
func (s *IssueService) Delete(ctx context.Context, id string) error {
	if err := s.issues.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("issue", map[string]any{"issue_id": id})
		}
		return apperrors.NewUnavailable(err)
	}
	return nil
}

func (s *IssueService) update(ctx context.Context, issue *domain.Issue) error {
	if err := s.issues.Update(ctx, issue); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("issue", map[string]any{"issue_id": issue.ID})
		}
		return apperrors.NewUnavailable(err)
	}
	return nil
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

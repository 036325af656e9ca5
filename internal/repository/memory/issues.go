package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/spec-kit/issue-dashboard/internal/domain"
	"github.com/spec-kit/issue-dashboard/internal/repository"
)

// IssueStore is an in-memory repository.IssueRepository. Ids are
// monotonic and never reused, even after deletes.
type IssueStore struct {
	mu     sync.Mutex
	seq    int64
	order  []string
	issues map[string]domain.Issue
}

// NewIssueStore creates an empty store.
func NewIssueStore() *IssueStore {
	return &IssueStore{issues: make(map[string]domain.Issue)}
}

var _ repository.IssueRepository = (*IssueStore)(nil)

func (s *IssueStore) Create(_ context.Context, issue *domain.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	issue.ID = strconv.FormatInt(s.seq, 10)
	s.issues[issue.ID] = *issue
	s.order = append(s.order, issue.ID)
	return nil
}

func (s *IssueStore) Update(_ context.Context, issue *domain.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.issues[issue.ID]; !ok {
		return repository.ErrNotFound
	}
	s.issues[issue.ID] = *issue
	return nil
}

func (s *IssueStore) GetByID(_ context.Context, id string) (*domain.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue, ok := s.issues[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &issue, nil
}

func (s *IssueStore) List(_ context.Context, filter repository.IssueFilter) ([]domain.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []domain.Issue
	for _, id := range s.order {
		issue, ok := s.issues[id]
		if !ok {
			continue
		}
		if filter.Status != nil && issue.Status != *filter.Status {
			continue
		}
		if filter.Brand != nil && issue.Brand != *filter.Brand {
			continue
		}
		result = append(result, issue)
	}
	return result, nil
}

func (s *IssueStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.issues[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.issues, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *IssueStore) CountSummary(_ context.Context) (domain.IssueStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := domain.IssueStats{ByBrand: make(map[domain.Brand]int)}
	for _, issue := range s.issues {
		stats.Total++
		stats.ByBrand[issue.Brand]++
		switch issue.Status {
		case domain.IssueStatusPending:
			stats.Pending++
		case domain.IssueStatusResolved:
			stats.Resolved++
		}
	}
	return stats, nil
}

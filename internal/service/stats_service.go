package service

import (
	"context"

	"github.com/spec-kit/issue-dashboard/internal/domain"
	"github.com/spec-kit/issue-dashboard/internal/repository"
	apperrors "github.com/spec-kit/issue-dashboard/pkg/util"
)

// StatsService aggregates issue counts for the dashboard home page.
type StatsService struct {
	issues repository.IssueRepository
}

// NewStatsService creates the service.
func NewStatsService(issues repository.IssueRepository) *StatsService {
	return &StatsService{issues: issues}
}

// Summary returns totals plus per-brand counts. Brands without issues
// are reported as zero rather than omitted.
func (s *StatsService) Summary(ctx context.Context) (domain.IssueStats, error) {
	stats, err := s.issues.CountSummary(ctx)
	if err != nil {
		return domain.IssueStats{}, apperrors.NewUnavailable(err)
	}
	if stats.ByBrand == nil {
		stats.ByBrand = make(map[domain.Brand]int)
	}
	for _, brand := range domain.Brands() {
		if _, ok := stats.ByBrand[brand]; !ok {
			stats.ByBrand[brand] = 0
		}
	}
	return stats, nil
}

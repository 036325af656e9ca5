package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-dashboard/internal/domain"
	"github.com/spec-kit/issue-dashboard/internal/repository/memory"
)

func TestStatsSummary(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memory.NewIssueStore()
	issues := NewIssueService(store)
	svc := NewStatsService(store)

	// Empty store still reports every brand with a zero count.
	stats, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.Zero(t, stats.Total)
	for _, brand := range domain.Brands() {
		require.Contains(t, stats.ByBrand, brand)
		require.Zero(t, stats.ByBrand[brand])
	}

	seed := []struct {
		brand   domain.Brand
		resolve bool
	}{
		{domain.BrandHP, false},
		{domain.BrandHP, true},
		{domain.BrandDell, false},
		{domain.BrandAsus, false},
	}
	for i, s := range seed {
		issue, err := issues.Create(ctx, IssueCreateInput{
			Title:       "issue",
			Description: "d",
			Brand:       s.brand,
			ReportedBy:  "r",
		})
		require.NoError(t, err, "seed %d", i)
		if s.resolve {
			_, err = issues.MarkResolved(ctx, issue.ID)
			require.NoError(t, err)
		}
	}

	stats, err = svc.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, stats.Total)
	require.Equal(t, 3, stats.Pending)
	require.Equal(t, 1, stats.Resolved)
	require.Equal(t, 2, stats.ByBrand[domain.BrandHP])
	require.Equal(t, 1, stats.ByBrand[domain.BrandDell])
	require.Equal(t, 1, stats.ByBrand[domain.BrandAsus])
}

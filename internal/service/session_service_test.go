package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-dashboard/internal/domain"
	"github.com/spec-kit/issue-dashboard/internal/session"
)

func TestSessionNavigateAllow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	pages := session.NewMemoryPageStore()
	svc := NewSessionService(pages)

	manager := &domain.User{ID: "1", Role: domain.RoleManager}

	result, err := svc.Navigate(ctx, manager, "sess-1", domain.PageAddIssue)
	require.NoError(t, err)
	require.Equal(t, domain.NavigationAllow, result.Decision.Effect)
	require.Equal(t, domain.PageAddIssue, result.CurrentPage)

	page, err := pages.GetPage(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, domain.PageAddIssue, page)
}

func TestSessionNavigateRedirect(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	pages := session.NewMemoryPageStore()
	svc := NewSessionService(pages)

	worker := &domain.User{ID: "2", Role: domain.RoleWorker}

	result, err := svc.Navigate(ctx, worker, "sess-2", domain.PageAssignWorker)
	require.NoError(t, err)
	require.Equal(t, domain.NavigationRedirect, result.Decision.Effect)
	require.Equal(t, domain.PageIssueList, result.CurrentPage, "session lands on the fallback page")

	page, err := pages.GetPage(ctx, "sess-2")
	require.NoError(t, err)
	require.Equal(t, domain.PageIssueList, page)
}

func TestSessionNavigateDenyKeepsPage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	pages := session.NewMemoryPageStore()
	svc := NewSessionService(pages)

	worker := &domain.User{ID: "2", Role: domain.RoleWorker}
	require.NoError(t, pages.SetPage(ctx, "sess-3", domain.PageWorkerPanel))

	result, err := svc.Navigate(ctx, worker, "sess-3", domain.PageAddIssue)
	require.NoError(t, err)
	require.Equal(t, domain.NavigationDeny, result.Decision.Effect)
	require.Equal(t, domain.PageWorkerPanel, result.CurrentPage, "denied navigation leaves the session in place")
}

func TestSessionNavigateAnonymous(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewSessionService(session.NewMemoryPageStore())

	result, err := svc.Navigate(ctx, nil, "", domain.PageHome)
	require.NoError(t, err)
	require.Equal(t, domain.NavigationRedirect, result.Decision.Effect)
	require.Equal(t, domain.PageLogin, result.CurrentPage)

	result, err = svc.Navigate(ctx, nil, "", domain.PageRegister)
	require.NoError(t, err)
	require.Equal(t, domain.NavigationAllow, result.Decision.Effect)
	require.Equal(t, domain.PageRegister, result.CurrentPage)
}

func TestSessionNavigateUnknownPage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewSessionService(session.NewMemoryPageStore())

	_, err := svc.Navigate(ctx, nil, "", domain.Page("settings"))
	requireCode(t, err, "VALIDATION_FAILED")
}

func TestSessionCurrentPageDefaultsToLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewSessionService(session.NewMemoryPageStore())

	page, err := svc.CurrentPage(ctx, "no-such-session")
	require.NoError(t, err)
	require.Equal(t, domain.PageLogin, page)
}

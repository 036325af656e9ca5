package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNavigateAnonymous(t *testing.T) {
	t.Parallel()

	for _, page := range []Page{PageLogin, PageRegister} {
		decision := Navigate(nil, page)
		require.Equal(t, NavigationAllow, decision.Effect, "page %s", page)
		require.Equal(t, page, decision.Target)
	}

	for _, page := range []Page{PageHome, PageAddIssue, PageIssueList, PageAssignWorker,
		PageWorkerPanel, PageHPIssues, PageDellIssues, PageAsusIssues} {
		decision := Navigate(nil, page)
		require.Equal(t, NavigationRedirect, decision.Effect, "page %s", page)
		require.Equal(t, PageLogin, decision.Target, "page %s", page)
	}
}

func TestNavigateWorker(t *testing.T) {
	t.Parallel()

	worker := &User{ID: "2", Username: "mike", Role: RoleWorker}

	decision := Navigate(worker, PageAddIssue)
	require.Equal(t, NavigationDeny, decision.Effect)
	require.Empty(t, decision.Target)

	decision = Navigate(worker, PageAssignWorker)
	require.Equal(t, NavigationRedirect, decision.Effect)
	require.Equal(t, PageIssueList, decision.Target)

	for _, page := range []Page{PageHome, PageIssueList, PageWorkerPanel, PageHPIssues, PageDellIssues, PageAsusIssues} {
		decision := Navigate(worker, page)
		require.Equal(t, NavigationAllow, decision.Effect, "page %s", page)
		require.Equal(t, page, decision.Target)
	}
}

func TestNavigateManager(t *testing.T) {
	t.Parallel()

	manager := &User{ID: "1", Username: "admin", Role: RoleManager}

	for _, page := range []Page{PageHome, PageAddIssue, PageIssueList, PageAssignWorker,
		PageWorkerPanel, PageHPIssues, PageDellIssues, PageAsusIssues} {
		decision := Navigate(manager, page)
		require.Equal(t, NavigationAllow, decision.Effect, "page %s", page)
		require.Equal(t, page, decision.Target)
	}
}

func TestNavigateDeniedUnknownRoleRedirects(t *testing.T) {
	t.Parallel()

	// A role outside the known set gets the non-manager treatment.
	user := &User{ID: "9", Username: "ghost", Role: Role("auditor")}

	decision := Navigate(user, PageAddIssue)
	require.Equal(t, NavigationRedirect, decision.Effect)
	require.Equal(t, PageHome, decision.Target)

	decision = Navigate(user, PageAssignWorker)
	require.Equal(t, NavigationRedirect, decision.Effect)
	require.Equal(t, PageIssueList, decision.Target)
}

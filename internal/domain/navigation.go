package domain

// NavigationEffect is the outcome kind of a navigation check.
type NavigationEffect string

const (
	NavigationAllow    NavigationEffect = "ALLOW"
	NavigationDeny     NavigationEffect = "DENY"
	NavigationRedirect NavigationEffect = "REDIRECT"
)

// NavigationDecision is the result of evaluating a navigation intent.
// Target is the page the session ends up on: the requested page when
// allowed, the fallback page on redirect, and empty on deny (the
// session stays where it was).
type NavigationDecision struct {
	Effect NavigationEffect
	Target Page
}

// Navigate decides whether user may reach target. It is a pure function
// over (user, target) and must be re-evaluated on every navigation
// intent since authentication state changes between calls.
//
// Rules, in order: anonymous callers may only reach login/register and
// are redirected to login otherwise; workers are denied add-issue in
// place; non-managers are redirected away from the manager-only pages
// (home for add-issue, issue-list for assign-worker); everything else
// is allowed.
func Navigate(user *User, target Page) NavigationDecision {
	if user == nil {
		if target == PageLogin || target == PageRegister {
			return NavigationDecision{Effect: NavigationAllow, Target: target}
		}
		return NavigationDecision{Effect: NavigationRedirect, Target: PageLogin}
	}

	if user.Role == RoleWorker && target == PageAddIssue {
		return NavigationDecision{Effect: NavigationDeny}
	}

	if user.Role != RoleManager {
		switch target {
		case PageAddIssue:
			return NavigationDecision{Effect: NavigationRedirect, Target: PageHome}
		case PageAssignWorker:
			return NavigationDecision{Effect: NavigationRedirect, Target: PageIssueList}
		}
	}

	return NavigationDecision{Effect: NavigationAllow, Target: target}
}

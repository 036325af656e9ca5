package domain

// Page enumerates the dashboard views a session can be on.
type Page string

const (
	PageLogin        Page = "login"
	PageRegister     Page = "register"
	PageHome         Page = "home"
	PageAddIssue     Page = "add-issue"
	PageIssueList    Page = "issue-list"
	PageAssignWorker Page = "assign-worker"
	PageWorkerPanel  Page = "worker-panel"
	PageHPIssues     Page = "hp-issues"
	PageDellIssues   Page = "dell-issues"
	PageAsusIssues   Page = "asus-issues"
)

// ValidPage reports whether p is a known page.
func ValidPage(p Page) bool {
	switch p {
	case PageLogin, PageRegister, PageHome, PageAddIssue, PageIssueList,
		PageAssignWorker, PageWorkerPanel, PageHPIssues, PageDellIssues, PageAsusIssues:
		return true
	default:
		return false
	}
}

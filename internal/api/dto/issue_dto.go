package dto

import (
	"github.com/spec-kit/issue-dashboard/internal/domain"
)

const dateLayout = "2006-01-02"

// CreateIssueRequest payload.
type CreateIssueRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Brand       string `json:"brand"`
	ReportedBy  string `json:"reported_by"`
}

// UpdateIssueRequest carries optional descriptive edits. Status and
// assignee are not editable here; those go through the assign and
// resolve endpoints.
type UpdateIssueRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Brand       *string `json:"brand"`
}

// IssueResponse wire shape.
type IssueResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Brand       string `json:"brand"`
	Status      string `json:"status"`
	ReportedBy  string `json:"reported_by"`
	AssignedTo  string `json:"assigned_to,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// IssueFromDomain maps a domain issue to its wire shape. CreatedAt is
// rendered date-only.
func IssueFromDomain(issue *domain.Issue) IssueResponse {
	return IssueResponse{
		ID:          issue.ID,
		Title:       issue.Title,
		Description: issue.Description,
		Brand:       string(issue.Brand),
		Status:      string(issue.Status),
		ReportedBy:  issue.ReportedBy,
		AssignedTo:  issue.AssignedTo,
		CreatedAt:   issue.CreatedAt.Format(dateLayout),
	}
}

// IssuesFromDomain maps a slice preserving order.
func IssuesFromDomain(issues []domain.Issue) []IssueResponse {
	result := make([]IssueResponse, 0, len(issues))
	for i := range issues {
		result = append(result, IssueFromDomain(&issues[i]))
	}
	return result
}

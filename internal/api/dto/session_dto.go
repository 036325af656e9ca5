package dto

import "github.com/spec-kit/issue-dashboard/internal/domain"

// NavigateRequest payload.
type NavigateRequest struct {
	Page string `json:"page"`
}

// NavigateResponse reports the guard's decision and where the session
// ended up.
type NavigateResponse struct {
	Effect      string `json:"effect"`
	Target      string `json:"target,omitempty"`
	CurrentPage string `json:"current_page"`
}

// StatsResponse wire shape for the statistics endpoint.
type StatsResponse struct {
	TotalIssues    int            `json:"total_issues"`
	PendingIssues  int            `json:"pending_issues"`
	ResolvedIssues int            `json:"resolved_issues"`
	BrandStats     map[string]int `json:"brand_stats"`
}

// StatsFromDomain maps aggregate counts to the wire shape.
func StatsFromDomain(stats domain.IssueStats) StatsResponse {
	brands := make(map[string]int, len(stats.ByBrand))
	for brand, count := range stats.ByBrand {
		brands[string(brand)] = count
	}
	return StatsResponse{
		TotalIssues:    stats.Total,
		PendingIssues:  stats.Pending,
		ResolvedIssues: stats.Resolved,
		BrandStats:     brands,
	}
}

package domain

import "time"

// IssueStatus enumerates lifecycle states for issues.
type IssueStatus string

const (
	IssueStatusPending  IssueStatus = "Pending"
	IssueStatusResolved IssueStatus = "Resolved"
)

// Brand enumerates the supported laptop brands.
type Brand string

const (
	BrandHP   Brand = "HP"
	BrandDell Brand = "Dell"
	BrandAsus Brand = "Asus"
)

// Brands lists every supported brand in display order.
func Brands() []Brand {
	return []Brand{BrandHP, BrandDell, BrandAsus}
}

// ValidBrand reports whether b is a known brand.
func ValidBrand(b Brand) bool {
	switch b {
	case BrandHP, BrandDell, BrandAsus:
		return true
	default:
		return false
	}
}

// Issue is a reported hardware defect. AssignedTo holds the assignee's
// display name, not a worker id; resolution keeps the assignee so the
// record still shows who handled it.
type Issue struct {
	ID          string
	Title       string
	Description string
	Brand       Brand
	Status      IssueStatus
	ReportedBy  string
	AssignedTo  string
	CreatedAt   time.Time
}

// Assigned reports whether the issue currently has an assignee.
func (i Issue) Assigned() bool {
	return i.AssignedTo != ""
}

// IssueStats aggregates issue counts for the dashboard.
type IssueStats struct {
	Total    int
	Pending  int
	Resolved int
	ByBrand  map[Brand]int
}

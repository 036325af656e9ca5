package domain

import "time"

// Worker is a person who can be assigned open issues. AssignedIssues
// counts currently open assignments and is maintained incrementally by
// the workflow service; it never goes below zero.
type Worker struct {
	ID             string
	Name           string
	AssignedIssues int
	CreatedAt      time.Time
}

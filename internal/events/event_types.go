package events

import (
	"time"

	"github.com/spec-kit/issue-dashboard/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIssueCreated  EventType = "issue_created"
	EventIssueAssigned EventType = "issue_assigned"
	EventIssueResolved EventType = "issue_resolved"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	IssueID   string      `json:"issue_id"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// IssueCreatedPayload payload.
type IssueCreatedPayload struct {
	Title      string       `json:"title"`
	Brand      domain.Brand `json:"brand"`
	ReportedBy string       `json:"reported_by"`
}

// IssueAssignedPayload payload.
type IssueAssignedPayload struct {
	WorkerID   string `json:"worker_id"`
	WorkerName string `json:"worker_name"`
	OpenCount  int    `json:"open_count"`
}

// IssueResolvedPayload payload.
type IssueResolvedPayload struct {
	AssignedTo string `json:"assigned_to,omitempty"`
}

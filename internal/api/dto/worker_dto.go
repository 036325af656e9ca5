package dto

import "github.com/spec-kit/issue-dashboard/internal/domain"

// CreateWorkerRequest payload.
type CreateWorkerRequest struct {
	Name string `json:"name"`
}

// WorkerResponse wire shape.
type WorkerResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	AssignedIssues int    `json:"assigned_issues"`
}

// WorkerFromDomain maps a domain worker to its wire shape.
func WorkerFromDomain(worker *domain.Worker) WorkerResponse {
	return WorkerResponse{
		ID:             worker.ID,
		Name:           worker.Name,
		AssignedIssues: worker.AssignedIssues,
	}
}

// WorkersFromDomain maps a slice preserving order.
func WorkersFromDomain(workers []domain.Worker) []WorkerResponse {
	result := make([]WorkerResponse, 0, len(workers))
	for i := range workers {
		result = append(result, WorkerFromDomain(&workers[i]))
	}
	return result
}

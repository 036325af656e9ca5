package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/issue-dashboard/internal/domain"
)

// IssueFilter captures list query parameters.
type IssueFilter struct {
	Status *domain.IssueStatus
	Brand  *domain.Brand
}

// IssueRepository encapsulates issue persistence. List results are
// returned in insertion order.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	Update(ctx context.Context, issue *domain.Issue) error
	GetByID(ctx context.Context, id string) (*domain.Issue, error)
	List(ctx context.Context, filter IssueFilter) ([]domain.Issue, error)
	Delete(ctx context.Context, id string) error
	CountSummary(ctx context.Context) (domain.IssueStats, error)
}

type issueRepository struct {
	pool *pgxpool.Pool
}

// NewIssueRepository instantiates the Postgres-backed repository.
func NewIssueRepository(pool *pgxpool.Pool) IssueRepository {
	return &issueRepository{pool: pool}
}

func (r *issueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	const query = `
        INSERT INTO issues (title, description, brand, status, reported_by, assigned_to, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		issue.Title,
		issue.Description,
		issue.Brand,
		issue.Status,
		issue.ReportedBy,
		issue.AssignedTo,
		issue.CreatedAt,
	).Scan(&issue.ID)
}

func (r *issueRepository) Update(ctx context.Context, issue *domain.Issue) error {
	const query = `
        UPDATE issues SET title=$1, description=$2, brand=$3, status=$4, assigned_to=$5
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		issue.Title,
		issue.Description,
		issue.Brand,
		issue.Status,
		issue.AssignedTo,
		issue.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *issueRepository) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	const query = `
        SELECT id, title, description, brand, status, reported_by, assigned_to, created_at
        FROM issues WHERE id=$1`

	var issue domain.Issue
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&issue.ID,
		&issue.Title,
		&issue.Description,
		&issue.Brand,
		&issue.Status,
		&issue.ReportedBy,
		&issue.AssignedTo,
		&issue.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &issue, nil
}

func (r *issueRepository) List(ctx context.Context, filter IssueFilter) ([]domain.Issue, error) {
	base := `SELECT id, title, description, brand, status, reported_by, assigned_to, created_at
             FROM issues`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Brand != nil {
		args = append(args, *filter.Brand)
		clauses = append(clauses, fmt.Sprintf("brand=$%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY id::bigint`, base, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIssues(rows)
}

func (r *issueRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM issues WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *issueRepository) CountSummary(ctx context.Context) (domain.IssueStats, error) {
	stats := domain.IssueStats{ByBrand: make(map[domain.Brand]int)}

	const query = `
        SELECT brand, status, COUNT(*) FROM issues GROUP BY brand, status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			brand  domain.Brand
			status domain.IssueStatus
			count  int
		)
		if err := rows.Scan(&brand, &status, &count); err != nil {
			return stats, err
		}
		stats.Total += count
		stats.ByBrand[brand] += count
		switch status {
		case domain.IssueStatusPending:
			stats.Pending += count
		case domain.IssueStatusResolved:
			stats.Resolved += count
		}
	}
	return stats, rows.Err()
}

func scanIssues(rows pgx.Rows) ([]domain.Issue, error) {
	var result []domain.Issue
	for rows.Next() {
		var issue domain.Issue
		if err := rows.Scan(
			&issue.ID,
			&issue.Title,
			&issue.Description,
			&issue.Brand,
			&issue.Status,
			&issue.ReportedBy,
			&issue.AssignedTo,
			&issue.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, issue)
	}
	return result, rows.Err()
}

package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/issue-dashboard/internal/domain"
)

// WorkerRepository encapsulates worker persistence. AdjustLoad applies
// a delta to the open-assignment counter and clamps the result at zero
// in storage, so the floor invariant holds regardless of call order.
type WorkerRepository interface {
	Create(ctx context.Context, worker *domain.Worker) error
	GetByID(ctx context.Context, id string) (*domain.Worker, error)
	GetByName(ctx context.Context, name string) (*domain.Worker, error)
	List(ctx context.Context) ([]domain.Worker, error)
	AdjustLoad(ctx context.Context, id string, delta int) (int, error)
}

type workerRepository struct {
	pool *pgxpool.Pool
}

// NewWorkerRepository instantiates the Postgres-backed repository.
func NewWorkerRepository(pool *pgxpool.Pool) WorkerRepository {
	return &workerRepository{pool: pool}
}

func (r *workerRepository) Create(ctx context.Context, worker *domain.Worker) error {
	const query = `
        INSERT INTO workers (name, assigned_issues)
        VALUES ($1, $2)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		worker.Name,
		worker.AssignedIssues,
	).Scan(&worker.ID, &worker.CreatedAt)
}

func (r *workerRepository) GetByID(ctx context.Context, id string) (*domain.Worker, error) {
	const query = `
        SELECT id, name, assigned_issues, created_at
        FROM workers WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *workerRepository) GetByName(ctx context.Context, name string) (*domain.Worker, error) {
	const query = `
        SELECT id, name, assigned_issues, created_at
        FROM workers WHERE name=$1`
	return r.fetchSingle(ctx, query, name)
}

func (r *workerRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Worker, error) {
	var worker domain.Worker
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&worker.ID,
		&worker.Name,
		&worker.AssignedIssues,
		&worker.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &worker, nil
}

func (r *workerRepository) List(ctx context.Context) ([]domain.Worker, error) {
	const query = `
        SELECT id, name, assigned_issues, created_at
        FROM workers ORDER BY id::bigint`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Worker
	for rows.Next() {
		var worker domain.Worker
		if err := rows.Scan(
			&worker.ID,
			&worker.Name,
			&worker.AssignedIssues,
			&worker.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, worker)
	}
	return result, rows.Err()
}

func (r *workerRepository) AdjustLoad(ctx context.Context, id string, delta int) (int, error) {
	const query = `
        UPDATE workers SET assigned_issues = GREATEST(assigned_issues + $1, 0)
        WHERE id=$2
        RETURNING assigned_issues`

	var count int
	if err := r.pool.QueryRow(ctx, query, delta, id).Scan(&count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return count, nil
}

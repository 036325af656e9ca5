package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-dashboard/internal/repository/memory"
)

func TestWorkloadCounterFloor(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewWorkloadService(memory.NewWorkerStore())

	worker, err := svc.CreateWorker(ctx, "Tom Anderson")
	require.NoError(t, err)
	require.Equal(t, 0, worker.AssignedIssues)

	// Decrements on an already-zero counter are absorbed.
	count, err := svc.Decrement(ctx, worker.ID)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	count, err = svc.Increment(ctx, worker.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	count, err = svc.Decrement(ctx, worker.ID)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	count, err = svc.Decrement(ctx, worker.ID)
	require.NoError(t, err)
	require.Equal(t, 0, count, "mis-ordered decrements never go negative")
}

func TestWorkloadUnknownWorker(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewWorkloadService(memory.NewWorkerStore())

	_, err := svc.Increment(ctx, "99")
	requireCode(t, err, "NOT_FOUND")

	_, err = svc.GetWorker(ctx, "99")
	requireCode(t, err, "NOT_FOUND")
}

func TestWorkloadCreateWorkerValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewWorkloadService(memory.NewWorkerStore())

	_, err := svc.CreateWorker(ctx, "   ")
	requireCode(t, err, "VALIDATION_FAILED")
}

func TestWorkloadListInsertionOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewWorkloadService(memory.NewWorkerStore())

	names := []string{"Mike Johnson", "Sarah Davis", "Tom Anderson", "Lisa Martinez"}
	for _, name := range names {
		_, err := svc.CreateWorker(ctx, name)
		require.NoError(t, err)
	}

	workers, err := svc.ListWorkers(ctx)
	require.NoError(t, err)
	require.Len(t, workers, len(names))
	for i, name := range names {
		require.Equal(t, name, workers[i].Name)
	}
}

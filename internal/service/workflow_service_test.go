package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-dashboard/internal/config"
	"github.com/spec-kit/issue-dashboard/internal/domain"
	"github.com/spec-kit/issue-dashboard/internal/events"
	"github.com/spec-kit/issue-dashboard/internal/repository"
	"github.com/spec-kit/issue-dashboard/internal/repository/memory"
	"github.com/spec-kit/issue-dashboard/internal/session"
)

type workflowFixture struct {
	workflow *WorkflowService
	issues   *IssueService
	workload *WorkloadService
	workers  repository.WorkerRepository
	events   *[]events.Event
}

// faultyWorkerRepo lets tests inject store failures on the calls the
// workflow depends on.
type faultyWorkerRepo struct {
	repository.WorkerRepository
	adjustErr error
	lookupErr error
}

func (r *faultyWorkerRepo) AdjustLoad(ctx context.Context, id string, delta int) (int, error) {
	if r.adjustErr != nil {
		return 0, r.adjustErr
	}
	return r.WorkerRepository.AdjustLoad(ctx, id, delta)
}

func (r *faultyWorkerRepo) GetByName(ctx context.Context, name string) (*domain.Worker, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	return r.WorkerRepository.GetByName(ctx, name)
}

func newWorkflowFixture(t *testing.T, cfg config.WorkflowConfig) *workflowFixture {
	return newWorkflowFixtureWith(t, cfg, memory.NewWorkerStore())
}

func newWorkflowFixtureWith(t *testing.T, cfg config.WorkflowConfig, workerStore repository.WorkerRepository) *workflowFixture {
	t.Helper()

	issueStore := memory.NewIssueStore()
	userStore := memory.NewUserStore()

	issueService := NewIssueService(issueStore)
	workloadService := NewWorkloadService(workerStore)
	authService := NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		BcryptCost:            4,
	}, userStore, session.NewMemoryPageStore())

	dispatcher := events.NewInMemoryDispatcher()
	published := &[]events.Event{}
	for _, eventType := range []events.EventType{events.EventIssueCreated, events.EventIssueAssigned, events.EventIssueResolved} {
		dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			*published = append(*published, event)
			return nil
		})
	}

	workflow := NewWorkflowService(cfg, WorkflowDependencies{
		IssueService:    issueService,
		WorkloadService: workloadService,
		AuthService:     authService,
		WorkerRepo:      workerStore,
		Dispatcher:      dispatcher,
	})

	return &workflowFixture{
		workflow: workflow,
		issues:   issueService,
		workload: workloadService,
		workers:  workerStore,
		events:   published,
	}
}

func (f *workflowFixture) addWorker(t *testing.T, name string) *domain.Worker {
	t.Helper()
	worker, err := f.workload.CreateWorker(context.Background(), name)
	require.NoError(t, err)
	return worker
}

func (f *workflowFixture) addIssue(t *testing.T, title string, brand domain.Brand, reportedBy string) *domain.Issue {
	t.Helper()
	issue, err := f.workflow.AddIssue(context.Background(), "1", IssueCreateInput{
		Title:       title,
		Description: title + " description",
		Brand:       brand,
		ReportedBy:  reportedBy,
	})
	require.NoError(t, err)
	return issue
}

func TestWorkflowAssignThenResolve(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newWorkflowFixture(t, config.WorkflowConfig{})

	bob := f.addWorker(t, "Bob")
	issue := f.addIssue(t, "Screen flicker", domain.BrandDell, "Alice")
	require.Equal(t, domain.IssueStatusPending, issue.Status)
	require.Empty(t, issue.AssignedTo)

	assigned, worker, err := f.workflow.AssignWorker(ctx, "1", issue.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, "Bob", assigned.AssignedTo)
	require.Equal(t, domain.IssueStatusPending, assigned.Status, "assignment must not change status")
	require.Equal(t, 1, worker.AssignedIssues)

	resolved, err := f.workflow.ResolveIssue(ctx, "1", issue.ID)
	require.NoError(t, err)
	require.Equal(t, domain.IssueStatusResolved, resolved.Status)
	require.Equal(t, "Bob", resolved.AssignedTo, "resolution keeps the assignee on the record")

	after, err := f.workers.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, 0, after.AssignedIssues)

	require.Len(t, *f.events, 3)
	require.Equal(t, events.EventIssueCreated, (*f.events)[0].Type)
	require.Equal(t, events.EventIssueAssigned, (*f.events)[1].Type)
	require.Equal(t, events.EventIssueResolved, (*f.events)[2].Type)
}

func TestWorkflowReassignKeepsPreviousCounter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newWorkflowFixture(t, config.WorkflowConfig{ReleaseOnReassign: false})

	mike := f.addWorker(t, "Mike Johnson")
	sarah := f.addWorker(t, "Sarah Davis")
	issue := f.addIssue(t, "Battery draining quickly", domain.BrandDell, "Jane Smith")

	_, _, err := f.workflow.AssignWorker(ctx, "1", issue.ID, mike.ID)
	require.NoError(t, err)

	reassigned, worker, err := f.workflow.AssignWorker(ctx, "1", issue.ID, sarah.ID)
	require.NoError(t, err)
	require.Equal(t, "Sarah Davis", reassigned.AssignedTo)
	require.Equal(t, 1, worker.AssignedIssues)

	// The previous assignee keeps their slot until the issue resolves.
	prev, err := f.workers.GetByID(ctx, mike.ID)
	require.NoError(t, err)
	require.Equal(t, 1, prev.AssignedIssues)

	// Resolution releases only the current assignee.
	_, err = f.workflow.ResolveIssue(ctx, "1", issue.ID)
	require.NoError(t, err)

	prev, err = f.workers.GetByID(ctx, mike.ID)
	require.NoError(t, err)
	require.Equal(t, 1, prev.AssignedIssues)

	cur, err := f.workers.GetByID(ctx, sarah.ID)
	require.NoError(t, err)
	require.Equal(t, 0, cur.AssignedIssues)
}

func TestWorkflowReassignReleasesWhenConfigured(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newWorkflowFixture(t, config.WorkflowConfig{ReleaseOnReassign: true})

	mike := f.addWorker(t, "Mike Johnson")
	sarah := f.addWorker(t, "Sarah Davis")
	issue := f.addIssue(t, "Touchpad not responsive", domain.BrandAsus, "David Lee")

	_, _, err := f.workflow.AssignWorker(ctx, "1", issue.ID, mike.ID)
	require.NoError(t, err)

	_, worker, err := f.workflow.AssignWorker(ctx, "1", issue.ID, sarah.ID)
	require.NoError(t, err)
	require.Equal(t, 1, worker.AssignedIssues)

	prev, err := f.workers.GetByID(ctx, mike.ID)
	require.NoError(t, err)
	require.Equal(t, 0, prev.AssignedIssues, "configured release frees the previous worker immediately")
}

func TestWorkflowReassignSameWorker(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newWorkflowFixture(t, config.WorkflowConfig{ReleaseOnReassign: true})

	mike := f.addWorker(t, "Mike Johnson")
	issue := f.addIssue(t, "No sound from speakers", domain.BrandHP, "Emma White")

	_, _, err := f.workflow.AssignWorker(ctx, "1", issue.ID, mike.ID)
	require.NoError(t, err)

	_, worker, err := f.workflow.AssignWorker(ctx, "1", issue.ID, mike.ID)
	require.NoError(t, err)
	require.Equal(t, 2, worker.AssignedIssues, "re-assigning the same worker is not a release")
}

func TestWorkflowResolveWithStaleAssigneeName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newWorkflowFixture(t, config.WorkflowConfig{})

	issue := f.addIssue(t, "Blue screen errors", domain.BrandDell, "Frank Miller")
	_, err := f.issues.SetAssignee(ctx, issue.ID, "Nobody Anymore")
	require.NoError(t, err)

	// No worker carries that name; the decrement is skipped, not fatal.
	resolved, err := f.workflow.ResolveIssue(ctx, "1", issue.ID)
	require.NoError(t, err)
	require.Equal(t, domain.IssueStatusResolved, resolved.Status)
}

func TestWorkflowResolveUnassignedIssue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newWorkflowFixture(t, config.WorkflowConfig{})

	bob := f.addWorker(t, "Bob")
	issue := f.addIssue(t, "Keyboard keys not working", domain.BrandAsus, "Bob Wilson")

	resolved, err := f.workflow.ResolveIssue(ctx, "1", issue.ID)
	require.NoError(t, err)
	require.Equal(t, domain.IssueStatusResolved, resolved.Status)
	require.Empty(t, resolved.AssignedTo)

	after, err := f.workers.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, 0, after.AssignedIssues, "no counter moves for an unassigned resolution")
}

func TestWorkflowAssignUnknownWorker(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newWorkflowFixture(t, config.WorkflowConfig{})

	issue := f.addIssue(t, "Overheating problem", domain.BrandHP, "Alice Brown")

	_, _, err := f.workflow.AssignWorker(ctx, "1", issue.ID, "99")
	requireCode(t, err, "NOT_FOUND")

	unchanged, err := f.issues.Get(ctx, issue.ID)
	require.NoError(t, err)
	require.Empty(t, unchanged.AssignedTo, "failed assignment must not touch the issue")
}

func TestWorkflowAssignUnknownIssue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newWorkflowFixture(t, config.WorkflowConfig{})

	bob := f.addWorker(t, "Bob")

	_, _, err := f.workflow.AssignWorker(ctx, "1", "99", bob.ID)
	requireCode(t, err, "NOT_FOUND")

	after, err := f.workers.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, 0, after.AssignedIssues, "failed assignment must not touch the counter")
}

func TestWorkflowAssignRollsBackOnCounterFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	faulty := &faultyWorkerRepo{WorkerRepository: memory.NewWorkerStore()}
	f := newWorkflowFixtureWith(t, config.WorkflowConfig{}, faulty)

	bob := f.addWorker(t, "Bob")
	issue := f.addIssue(t, "Screen flicker", domain.BrandDell, "Alice")

	faulty.adjustErr = errors.New("connection reset")
	_, _, err := f.workflow.AssignWorker(ctx, "1", issue.ID, bob.ID)
	requireCode(t, err, "UNAVAILABLE")

	after, err := f.issues.Get(ctx, issue.ID)
	require.NoError(t, err)
	require.Empty(t, after.AssignedTo, "failed counter write must discard the assignment")
	require.Equal(t, domain.IssueStatusPending, after.Status)
}

func TestWorkflowReassignRollsBackOnCounterFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	faulty := &faultyWorkerRepo{WorkerRepository: memory.NewWorkerStore()}
	f := newWorkflowFixtureWith(t, config.WorkflowConfig{}, faulty)

	mike := f.addWorker(t, "Mike Johnson")
	sarah := f.addWorker(t, "Sarah Davis")
	issue := f.addIssue(t, "Battery draining quickly", domain.BrandDell, "Jane Smith")

	_, _, err := f.workflow.AssignWorker(ctx, "1", issue.ID, mike.ID)
	require.NoError(t, err)

	faulty.adjustErr = errors.New("connection reset")
	_, _, err = f.workflow.AssignWorker(ctx, "1", issue.ID, sarah.ID)
	requireCode(t, err, "UNAVAILABLE")

	after, err := f.issues.Get(ctx, issue.ID)
	require.NoError(t, err)
	require.Equal(t, "Mike Johnson", after.AssignedTo, "failed reassignment must restore the previous assignee")

	prev, err := f.workers.GetByID(ctx, mike.ID)
	require.NoError(t, err)
	require.Equal(t, 1, prev.AssignedIssues)
}

func TestWorkflowResolveSurfacesLookupFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	faulty := &faultyWorkerRepo{WorkerRepository: memory.NewWorkerStore()}
	f := newWorkflowFixtureWith(t, config.WorkflowConfig{}, faulty)

	bob := f.addWorker(t, "Bob")
	issue := f.addIssue(t, "WiFi connectivity issues", domain.BrandDell, "Charlie Green")

	_, _, err := f.workflow.AssignWorker(ctx, "1", issue.ID, bob.ID)
	require.NoError(t, err)

	// A store failure during the reverse lookup is not a stale name;
	// it must surface and the issue must stay untouched.
	faulty.lookupErr = errors.New("connection reset")
	_, err = f.workflow.ResolveIssue(ctx, "1", issue.ID)
	requireCode(t, err, "UNAVAILABLE")

	after, err := f.issues.Get(ctx, issue.ID)
	require.NoError(t, err)
	require.Equal(t, domain.IssueStatusPending, after.Status)
	require.Equal(t, "Bob", after.AssignedTo)

	worker, err := f.workers.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, 1, worker.AssignedIssues)
}

func TestWorkflowResolveSurfacesDecrementFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	faulty := &faultyWorkerRepo{WorkerRepository: memory.NewWorkerStore()}
	f := newWorkflowFixtureWith(t, config.WorkflowConfig{}, faulty)

	bob := f.addWorker(t, "Bob")
	issue := f.addIssue(t, "No sound from speakers", domain.BrandHP, "Emma White")

	_, _, err := f.workflow.AssignWorker(ctx, "1", issue.ID, bob.ID)
	require.NoError(t, err)

	faulty.adjustErr = errors.New("connection reset")
	_, err = f.workflow.ResolveIssue(ctx, "1", issue.ID)
	requireCode(t, err, "UNAVAILABLE")

	after, err := f.issues.Get(ctx, issue.ID)
	require.NoError(t, err)
	require.Equal(t, domain.IssueStatusPending, after.Status, "a failed release leaves the issue unresolved")

	worker, err := f.workers.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, 1, worker.AssignedIssues)
}

func TestWorkflowDeleteReleasesOpenAssignment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newWorkflowFixture(t, config.WorkflowConfig{})

	bob := f.addWorker(t, "Bob")
	issue := f.addIssue(t, "Screen flickering issue", domain.BrandHP, "John Doe")

	_, _, err := f.workflow.AssignWorker(ctx, "1", issue.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, f.workflow.DeleteIssue(ctx, issue.ID))

	after, err := f.workers.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, 0, after.AssignedIssues)

	_, err = f.issues.Get(ctx, issue.ID)
	requireCode(t, err, "NOT_FOUND")
}

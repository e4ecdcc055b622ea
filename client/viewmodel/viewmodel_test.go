package viewmodel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	domain "github.com/abhinxvz/task-mng/domain/task"
	"github.com/abhinxvz/task-mng/modules/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow   = time.Date(2026, time.March, 10, 18, 45, 0, 0, time.UTC)
	today     = domain.DateOf(testNow)
	errServer = errors.New("connection refused")
)

// fakeAPI serves from an in-memory store and can be told to fail or block.
type fakeAPI struct {
	port  task.TaskPort
	fail  atomic.Bool
	calls atomic.Int32
	gate  chan struct{}
}

func newFakeAPI() *fakeAPI {
	store := task.NewMemoryStore(task.WithClock(func() time.Time { return testNow }))
	return &fakeAPI{port: task.NewLocalPort(store)}
}

func (f *fakeAPI) enter() error {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.fail.Load() {
		return errServer
	}
	return nil
}

func (f *fakeAPI) ListTasks(ctx context.Context) ([]domain.Task, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	return f.port.ListTasks(ctx)
}

func (f *fakeAPI) CreateTask(ctx context.Context, draft domain.Draft) (domain.Task, error) {
	if err := f.enter(); err != nil {
		return domain.Task{}, err
	}
	return f.port.CreateTask(ctx, draft)
}

func (f *fakeAPI) UpdateTask(ctx context.Context, id int64, patch domain.Patch) (domain.Task, error) {
	if err := f.enter(); err != nil {
		return domain.Task{}, err
	}
	return f.port.UpdateTask(ctx, id, patch)
}

func (f *fakeAPI) ToggleComplete(ctx context.Context, id int64) (domain.Task, error) {
	if err := f.enter(); err != nil {
		return domain.Task{}, err
	}
	return f.port.ToggleComplete(ctx, id)
}

func (f *fakeAPI) DeleteTask(ctx context.Context, id int64) error {
	if err := f.enter(); err != nil {
		return err
	}
	return f.port.DeleteTask(ctx, id)
}

func newTestViewModel() (*ViewModel, *fakeAPI) {
	api := newFakeAPI()
	return New(api, WithClock(func() time.Time { return testNow })), api
}

func TestRefresh(t *testing.T) {
	vm, api := newTestViewModel()
	ctx := context.Background()

	_, err := api.port.CreateTask(ctx, domain.Draft{Title: "a", Description: "a"})
	require.NoError(t, err)

	require.NoError(t, vm.Refresh(ctx))
	assert.Len(t, vm.Tasks(), 1)
	assert.Empty(t, vm.Err())
	assert.False(t, vm.Loading())
}

func TestRefresh_FailureKeepsList(t *testing.T) {
	vm, api := newTestViewModel()
	ctx := context.Background()

	_, err := vm.Add(ctx, Form{Title: "a", Description: "a"})
	require.NoError(t, err)

	api.fail.Store(true)
	assert.ErrorIs(t, vm.Refresh(ctx), errServer)
	assert.Equal(t, MsgFetchFailed, vm.Err())
	assert.Len(t, vm.Tasks(), 1)
	assert.False(t, vm.Loading())
}

func TestAdd(t *testing.T) {
	vm, _ := newTestViewModel()

	created, err := vm.Add(context.Background(), Form{Title: "  Buy milk ", Description: " 2 liters "})
	require.NoError(t, err)

	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, "2 liters", created.Description)
	assert.Equal(t, today, created.DueDate)
	assert.Equal(t, []domain.Task{created}, vm.Tasks())
}

func TestAdd_KeepsPickedDueDate(t *testing.T) {
	vm, _ := newTestViewModel()
	due := today.AddDays(7)

	created, err := vm.Add(context.Background(), Form{Title: "t", Description: "d", DueDate: due})
	require.NoError(t, err)
	assert.Equal(t, due, created.DueDate)
}

func TestAdd_RequiredFieldsCheckedLocally(t *testing.T) {
	tests := []struct {
		name string
		form Form
	}{
		{name: "blank title", form: Form{Title: "  ", Description: "d"}},
		{name: "blank description", form: Form{Title: "t", Description: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm, api := newTestViewModel()

			_, err := vm.Add(context.Background(), tt.form)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, MsgRequired, vm.Err())
			assert.Zero(t, api.calls.Load())
			assert.Empty(t, vm.Tasks())
		})
	}
}

func TestAdd_Failure(t *testing.T) {
	vm, api := newTestViewModel()
	api.fail.Store(true)

	_, err := vm.Add(context.Background(), Form{Title: "t", Description: "d"})
	assert.Error(t, err)
	assert.Equal(t, MsgAddFailed, vm.Err())
	assert.Empty(t, vm.Tasks())
	assert.False(t, vm.Loading())
}

func TestEdit(t *testing.T) {
	vm, _ := newTestViewModel()
	ctx := context.Background()

	created, err := vm.Add(ctx, Form{Title: "t", Description: "d"})
	require.NoError(t, err)

	form := FormFor(created)
	form.Title = "renamed"
	updated, err := vm.Edit(ctx, created.ID, form)
	require.NoError(t, err)

	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, created.DueDate, updated.DueDate)

	got, ok := vm.Find(created.ID)
	require.True(t, ok)
	assert.Equal(t, updated, got)
}

func TestEdit_Failures(t *testing.T) {
	vm, api := newTestViewModel()
	ctx := context.Background()

	created, err := vm.Add(ctx, Form{Title: "t", Description: "d"})
	require.NoError(t, err)

	_, err = vm.Edit(ctx, created.ID, Form{Title: "", Description: "d"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, MsgRequired, vm.Err())

	_, err = vm.Edit(ctx, 999, Form{Title: "t", Description: "d"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, MsgUpdateFailed, vm.Err())

	api.fail.Store(true)
	_, err = vm.Edit(ctx, created.ID, Form{Title: "x", Description: "y"})
	assert.Error(t, err)
	assert.Equal(t, MsgUpdateFailed, vm.Err())

	got, _ := vm.Find(created.ID)
	assert.Equal(t, created, got)
}

func TestToggle(t *testing.T) {
	vm, api := newTestViewModel()
	ctx := context.Background()

	created, err := vm.Add(ctx, Form{Title: "t", Description: "d"})
	require.NoError(t, err)

	toggled, err := vm.Toggle(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	assert.Equal(t, 0, PendingCount(vm.Tasks()))
	assert.Equal(t, 1, CompletedCount(vm.Tasks()))

	api.fail.Store(true)
	_, err = vm.Toggle(ctx, created.ID)
	assert.Error(t, err)
	assert.Equal(t, MsgUpdateFailed, vm.Err())
	assert.Equal(t, 1, CompletedCount(vm.Tasks()))
}

func TestDelete(t *testing.T) {
	vm, api := newTestViewModel()
	ctx := context.Background()

	first, err := vm.Add(ctx, Form{Title: "a", Description: "a"})
	require.NoError(t, err)
	second, err := vm.Add(ctx, Form{Title: "b", Description: "b"})
	require.NoError(t, err)

	require.NoError(t, vm.Delete(ctx, first.ID))
	assert.Equal(t, []domain.Task{second}, vm.Tasks())

	api.fail.Store(true)
	assert.Error(t, vm.Delete(ctx, second.ID))
	assert.Equal(t, MsgDeleteFailed, vm.Err())
	assert.Equal(t, []domain.Task{second}, vm.Tasks())
}

func TestSuccessClearsMessage(t *testing.T) {
	vm, api := newTestViewModel()
	ctx := context.Background()

	api.fail.Store(true)
	require.Error(t, vm.Refresh(ctx))
	require.Equal(t, MsgFetchFailed, vm.Err())

	api.fail.Store(false)
	require.NoError(t, vm.Refresh(ctx))
	assert.Empty(t, vm.Err())
}

func TestLoadingDuringRequest(t *testing.T) {
	vm, api := newTestViewModel()
	api.gate = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- vm.Refresh(context.Background())
	}()

	assert.Eventually(t, vm.Loading, time.Second, 5*time.Millisecond)

	close(api.gate)
	require.NoError(t, <-done)
	assert.False(t, vm.Loading())
}

func TestCounts(t *testing.T) {
	tasks := []domain.Task{
		{ID: 1, Completed: false},
		{ID: 2, Completed: true},
		{ID: 3, Completed: false},
	}

	assert.Equal(t, 2, PendingCount(tasks))
	assert.Equal(t, 1, CompletedCount(tasks))
	assert.Equal(t, 0, PendingCount(nil))
	assert.Equal(t, 0, CompletedCount(nil))
}

func TestIsOverdue(t *testing.T) {
	tests := []struct {
		name string
		task domain.Task
		want bool
	}{
		{name: "pending due yesterday", task: domain.Task{DueDate: today.AddDays(-1)}, want: true},
		{name: "pending due today", task: domain.Task{DueDate: today}, want: false},
		{name: "pending due tomorrow", task: domain.Task{DueDate: today.AddDays(1)}, want: false},
		{name: "completed due yesterday", task: domain.Task{DueDate: today.AddDays(-1), Completed: true}, want: false},
		{name: "no due date", task: domain.Task{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOverdue(tt.task, today))
		})
	}
}

func TestOverdueClearsAfterToggle(t *testing.T) {
	vm, _ := newTestViewModel()
	ctx := context.Background()

	created, err := vm.Add(ctx, Form{Title: "t", Description: "d", DueDate: today.AddDays(-1)})
	require.NoError(t, err)
	assert.True(t, IsOverdue(created, vm.Today()))

	toggled, err := vm.Toggle(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, IsOverdue(toggled, vm.Today()))
}

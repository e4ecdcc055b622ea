// Package viewmodel holds client-side task state on top of the REST API.
//
// The ViewModel keeps the last list fetched from the server and folds in the
// server's confirmed responses to mutations. Nothing is applied
// optimistically: a failed call leaves the list as it was and records one
// user-facing message for the action.
package viewmodel

import (
	"context"
	"strings"
	"sync"
	"time"

	domain "github.com/abhinxvz/task-mng/domain/task"
)

// User-facing messages, one per action.
const (
	MsgRequired     = "Title and description are required"
	MsgFetchFailed  = "Failed to fetch tasks. Please make sure the server is running."
	MsgAddFailed    = "Failed to add task"
	MsgUpdateFailed = "Failed to update task"
	MsgDeleteFailed = "Failed to delete task"
)

// API is the server surface the ViewModel needs. *client.Client satisfies it.
type API interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, draft domain.Draft) (domain.Task, error)
	UpdateTask(ctx context.Context, id int64, patch domain.Patch) (domain.Task, error)
	ToggleComplete(ctx context.Context, id int64) (domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// Form is the add/edit form. A zero DueDate means none was picked.
type Form struct {
	Title       string
	Description string
	DueDate     domain.Date
}

// FormFor returns a form prefilled from t.
func FormFor(t domain.Task) Form {
	return Form{Title: t.Title, Description: t.Description, DueDate: t.DueDate}
}

func (f Form) validate() error {
	return domain.Draft{Title: f.Title, Description: f.Description}.Validate()
}

// ViewModel is safe for concurrent use.
type ViewModel struct {
	api API
	now func() time.Time

	mu       sync.Mutex
	tasks    []domain.Task
	inflight int
	errMsg   string
}

// Option configures a ViewModel.
type Option func(*ViewModel)

// WithClock overrides the clock used for today's date.
func WithClock(now func() time.Time) Option {
	return func(vm *ViewModel) {
		vm.now = now
	}
}

// New creates an empty ViewModel over api.
func New(api API, opts ...Option) *ViewModel {
	vm := &ViewModel{api: api, now: time.Now}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Refresh replaces the local list with the server's.
func (vm *ViewModel) Refresh(ctx context.Context) error {
	vm.begin()
	defer vm.end()

	tasks, err := vm.api.ListTasks(ctx)
	if err != nil {
		vm.fail(MsgFetchFailed)
		return err
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.tasks = append([]domain.Task(nil), tasks...)
	vm.errMsg = ""
	return nil
}

// Add creates a task and appends the server's copy. The due date defaults
// to today.
func (vm *ViewModel) Add(ctx context.Context, form Form) (domain.Task, error) {
	if err := form.validate(); err != nil {
		vm.fail(MsgRequired)
		return domain.Task{}, err
	}

	due := form.DueDate
	if due.IsZero() {
		due = vm.Today()
	}
	draft := domain.Draft{
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		DueDate:     &due,
	}

	vm.begin()
	defer vm.end()

	created, err := vm.api.CreateTask(ctx, draft)
	if err != nil {
		vm.fail(MsgAddFailed)
		return domain.Task{}, err
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.tasks = append(vm.tasks, created)
	vm.errMsg = ""
	return created, nil
}

// Edit sends the form as an update and replaces the matching task.
func (vm *ViewModel) Edit(ctx context.Context, id int64, form Form) (domain.Task, error) {
	if err := form.validate(); err != nil {
		vm.fail(MsgRequired)
		return domain.Task{}, err
	}

	title := strings.TrimSpace(form.Title)
	description := strings.TrimSpace(form.Description)
	patch := domain.Patch{Title: &title, Description: &description}
	if !form.DueDate.IsZero() {
		due := form.DueDate
		patch.DueDate = &due
	}

	vm.begin()
	defer vm.end()

	updated, err := vm.api.UpdateTask(ctx, id, patch)
	if err != nil {
		vm.fail(MsgUpdateFailed)
		return domain.Task{}, err
	}

	vm.replace(updated)
	return updated, nil
}

// Toggle flips a task's completed flag and replaces the matching task.
func (vm *ViewModel) Toggle(ctx context.Context, id int64) (domain.Task, error) {
	vm.begin()
	defer vm.end()

	toggled, err := vm.api.ToggleComplete(ctx, id)
	if err != nil {
		vm.fail(MsgUpdateFailed)
		return domain.Task{}, err
	}

	vm.replace(toggled)
	return toggled, nil
}

// Delete removes a task on the server and then locally.
func (vm *ViewModel) Delete(ctx context.Context, id int64) error {
	vm.begin()
	defer vm.end()

	if err := vm.api.DeleteTask(ctx, id); err != nil {
		vm.fail(MsgDeleteFailed)
		return err
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	kept := vm.tasks[:0]
	for _, t := range vm.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	vm.tasks = kept
	vm.errMsg = ""
	return nil
}

// Tasks returns a copy of the local list.
func (vm *ViewModel) Tasks() []domain.Task {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]domain.Task{}, vm.tasks...)
}

// Find returns the cached task with the given id.
func (vm *ViewModel) Find(id int64) (domain.Task, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	for _, t := range vm.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

// Loading reports whether a request is in flight.
func (vm *ViewModel) Loading() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.inflight > 0
}

// Err returns the message of the last failed action, or "" after a success.
func (vm *ViewModel) Err() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.errMsg
}

// Today returns the current calendar date in local time.
func (vm *ViewModel) Today() domain.Date {
	return domain.DateOf(vm.now())
}

func (vm *ViewModel) begin() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.inflight++
}

func (vm *ViewModel) end() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.inflight--
}

func (vm *ViewModel) fail(msg string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.errMsg = msg
}

func (vm *ViewModel) replace(t domain.Task) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	for i := range vm.tasks {
		if vm.tasks[i].ID == t.ID {
			vm.tasks[i] = t
			break
		}
	}
	vm.errMsg = ""
}

// PendingCount returns the number of tasks not yet completed.
func PendingCount(tasks []domain.Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// CompletedCount returns the number of completed tasks.
func CompletedCount(tasks []domain.Task) int {
	return len(tasks) - PendingCount(tasks)
}

// IsOverdue reports whether t is pending and due before today.
func IsOverdue(t domain.Task, today domain.Date) bool {
	return t.IsOverdue(today)
}

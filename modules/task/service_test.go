package task

import (
	"context"
	"errors"
	"testing"

	domain "github.com/abhinxvz/task-mng/domain/task"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)          {}
func (m *mockLogger) Info(msg string, args ...any)           {}
func (m *mockLogger) Warn(msg string, args ...any)           {}
func (m *mockLogger) Error(msg string, args ...any)          {}
func (m *mockLogger) With(args ...any) types.Logger          { return m }
func (m *mockLogger) WithError(err error) types.Logger       { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

func newTestModule() *Module {
	return NewModule(NewMemoryStore(WithClock(fixedClock)), "memory", &mockLogger{})
}

func TestModule_Name(t *testing.T) {
	assert.Equal(t, "task", newTestModule().Name())
}

func TestModule_EmitEvents(t *testing.T) {
	defs := newTestModule().EmitEvents()
	assert.Len(t, defs, 4)
}

func TestModule_StartRequiresStore(t *testing.T) {
	m := NewModule(nil, "memory", &mockLogger{})
	assert.Error(t, m.Start(context.Background()))

	assert.NoError(t, newTestModule().Start(context.Background()))
}

func TestService_CreateAndList(t *testing.T) {
	m := newTestModule()
	ctx := context.Background()

	created, err := m.createTask(ctx, CreateTaskRequest{Draft: domain.Draft{Title: "Buy milk", Description: "2 liters"}}, nil)
	require.NoError(t, err)
	require.Nil(t, created.Error)
	require.NotNil(t, created.Task)
	assert.Equal(t, int64(1), created.Task.ID)

	list, err := m.listTasks(ctx, ListTasksRequest{}, nil)
	require.NoError(t, err)
	require.Nil(t, list.Error)
	require.Len(t, list.Tasks, 1)
	assert.Equal(t, "Buy milk", list.Tasks[0].Title)
}

func TestService_CreateValidationError(t *testing.T) {
	m := newTestModule()

	resp, err := m.createTask(context.Background(), CreateTaskRequest{Draft: domain.Draft{Title: " ", Description: "d"}}, nil)
	require.NoError(t, err)
	assert.Nil(t, resp.Task)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeValidation, resp.Error.Code)
	assert.Equal(t, "title", resp.Error.Field)
}

func TestService_NotFound(t *testing.T) {
	m := newTestModule()
	ctx := context.Background()

	updated, err := m.updateTask(ctx, UpdateTaskRequest{TaskID: 42}, nil)
	require.NoError(t, err)
	require.NotNil(t, updated.Error)
	assert.Equal(t, CodeNotFound, updated.Error.Code)

	toggled, err := m.toggleTask(ctx, ToggleTaskRequest{TaskID: 42}, nil)
	require.NoError(t, err)
	require.NotNil(t, toggled.Error)
	assert.Equal(t, CodeNotFound, toggled.Error.Code)

	deleted, err := m.deleteTask(ctx, DeleteTaskRequest{TaskID: 42}, nil)
	require.NoError(t, err)
	assert.False(t, deleted.Deleted)
	require.NotNil(t, deleted.Error)
	assert.Equal(t, CodeNotFound, deleted.Error.Code)
}

func TestService_UpdateToggleDelete(t *testing.T) {
	m := newTestModule()
	ctx := context.Background()

	created, err := m.createTask(ctx, CreateTaskRequest{Draft: domain.Draft{Title: "t", Description: "d"}}, nil)
	require.NoError(t, err)
	id := created.Task.ID

	updated, err := m.updateTask(ctx, UpdateTaskRequest{TaskID: id, Patch: domain.Patch{Title: strPtr("renamed")}}, nil)
	require.NoError(t, err)
	require.Nil(t, updated.Error)
	assert.Equal(t, "renamed", updated.Task.Title)
	assert.Equal(t, "d", updated.Task.Description)

	toggled, err := m.toggleTask(ctx, ToggleTaskRequest{TaskID: id}, nil)
	require.NoError(t, err)
	require.Nil(t, toggled.Error)
	assert.True(t, toggled.Task.Completed)

	deleted, err := m.deleteTask(ctx, DeleteTaskRequest{TaskID: id}, nil)
	require.NoError(t, err)
	assert.True(t, deleted.Deleted)
	assert.Nil(t, deleted.Error)

	list, err := m.listTasks(ctx, ListTasksRequest{}, nil)
	require.NoError(t, err)
	assert.Empty(t, list.Tasks)
}

func TestModule_Health(t *testing.T) {
	m := newTestModule()
	ctx := context.Background()

	_, err := m.createTask(ctx, CreateTaskRequest{Draft: domain.Draft{Title: "t", Description: "d"}}, nil)
	require.NoError(t, err)

	status := m.Health(ctx)
	assert.True(t, status.Healthy)
	assert.Equal(t, "memory", status.Details["backend"])
	assert.Equal(t, 1, status.Details["tasks"])
}

func TestModule_StopClosesSQLiteStore(t *testing.T) {
	db, err := OpenSQLite(":memory:", false)
	require.NoError(t, err)
	store, err := NewSQLiteStore(db)
	require.NoError(t, err)

	m := NewModule(store, "sqlite", &mockLogger{})
	assert.True(t, m.Health(context.Background()).Healthy)

	require.NoError(t, m.Stop(context.Background()))
	assert.False(t, m.Health(context.Background()).Healthy)
}

func TestToServiceError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		code  string
		field string
	}{
		{name: "validation", err: &domain.ValidationError{Field: "description"}, code: CodeValidation, field: "description"},
		{name: "sentinel validation", err: domain.ErrValidation, code: CodeValidation},
		{name: "not found", err: &domain.NotFoundError{ID: 3}, code: CodeNotFound},
		{name: "other", err: errors.New("disk full"), code: CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcErr := toServiceError(tt.err)
			assert.Equal(t, tt.code, svcErr.Code)
			assert.Equal(t, tt.field, svcErr.Field)
			assert.Equal(t, tt.err.Error(), svcErr.Message)
		})
	}
}

func TestServiceError_ToDomain(t *testing.T) {
	err := (&ServiceError{Code: CodeValidation, Field: "title"}).toDomain(0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = (&ServiceError{Code: CodeNotFound}).toDomain(7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(7), notFound.ID)

	err = (&ServiceError{Code: CodeInternal, Message: "boom"}).toDomain(0)
	assert.EqualError(t, err, "boom")
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskResponse_Task(t *testing.T) {
	_, err := TaskResponse{}.task(1)
	assert.Error(t, err)

	tk := domain.Task{ID: 1, Title: "t"}
	got, err := TaskResponse{Task: &tk}.task(1)
	require.NoError(t, err)
	assert.Equal(t, tk, got)

	_, err = TaskResponse{Error: &ServiceError{Code: CodeNotFound}}.task(1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

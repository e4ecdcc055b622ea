package task

import (
	"context"

	domain "github.com/abhinxvz/task-mng/domain/task"
)

// Service names registered by the task module.
const (
	ServiceListTasks  = "list-tasks"
	ServiceCreateTask = "create-task"
	ServiceUpdateTask = "update-task"
	ServiceToggleTask = "toggle-task"
	ServiceDeleteTask = "delete-task"
)

// Error codes carried in service replies.
const (
	CodeValidation = "validation"
	CodeNotFound   = "not_found"
	CodeInternal   = "internal"
)

// ServiceError describes a failed operation inside a reply. Domain failures
// travel this way so the caller can tell them apart after the round trip.
type ServiceError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ListTasksRequest is the request for listing tasks.
type ListTasksRequest struct{}

// ListTasksResponse is the response for listing tasks.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Error *ServiceError `json:"error,omitempty"`
}

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	Draft domain.Draft `json:"draft"`
}

// UpdateTaskRequest is the request for merging a patch into a task.
type UpdateTaskRequest struct {
	TaskID int64        `json:"task_id"`
	Patch  domain.Patch `json:"patch"`
}

// ToggleTaskRequest is the request for flipping a task's completed flag.
type ToggleTaskRequest struct {
	TaskID int64 `json:"task_id"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	TaskID int64 `json:"task_id"`
}

// TaskResponse is the response for operations returning a single task.
type TaskResponse struct {
	Task  *domain.Task  `json:"task,omitempty"`
	Error *ServiceError `json:"error,omitempty"`
}

// DeleteTaskResponse is the response for deleting a task.
type DeleteTaskResponse struct {
	Deleted bool          `json:"deleted"`
	Error   *ServiceError `json:"error,omitempty"`
}

// TaskPort defines the task operations available to driving adapters such
// as the HTTP API. Implementations return errors matching
// domain.ErrValidation and domain.ErrNotFound.
type TaskPort interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, draft domain.Draft) (domain.Task, error)
	UpdateTask(ctx context.Context, id int64, patch domain.Patch) (domain.Task, error)
	ToggleComplete(ctx context.Context, id int64) (domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

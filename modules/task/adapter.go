package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/abhinxvz/task-mng/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter implements TaskPort over the task module's services.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a TaskPort backed by the service container received
// via SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// ListTasks lists all tasks via the list-tasks service.
func (a *taskAdapter) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var resp ListTasksResponse
	if err := call(ctx, a.container, ServiceListTasks, &ListTasksRequest{}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error.toDomain(0)
	}
	return resp.Tasks, nil
}

// CreateTask creates a task via the create-task service.
func (a *taskAdapter) CreateTask(ctx context.Context, draft domain.Draft) (domain.Task, error) {
	var resp TaskResponse
	if err := call(ctx, a.container, ServiceCreateTask, &CreateTaskRequest{Draft: draft}, &resp); err != nil {
		return domain.Task{}, err
	}
	return resp.task(0)
}

// UpdateTask merges a patch via the update-task service.
func (a *taskAdapter) UpdateTask(ctx context.Context, id int64, patch domain.Patch) (domain.Task, error) {
	var resp TaskResponse
	if err := call(ctx, a.container, ServiceUpdateTask, &UpdateTaskRequest{TaskID: id, Patch: patch}, &resp); err != nil {
		return domain.Task{}, err
	}
	return resp.task(id)
}

// ToggleComplete flips a task's completed flag via the toggle-task service.
func (a *taskAdapter) ToggleComplete(ctx context.Context, id int64) (domain.Task, error) {
	var resp TaskResponse
	if err := call(ctx, a.container, ServiceToggleTask, &ToggleTaskRequest{TaskID: id}, &resp); err != nil {
		return domain.Task{}, err
	}
	return resp.task(id)
}

// DeleteTask deletes a task via the delete-task service.
func (a *taskAdapter) DeleteTask(ctx context.Context, id int64) error {
	var resp DeleteTaskResponse
	if err := call(ctx, a.container, ServiceDeleteTask, &DeleteTaskRequest{TaskID: id}, &resp); err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error.toDomain(id)
	}
	if !resp.Deleted {
		return fmt.Errorf("task not deleted: %d", id)
	}
	return nil
}

func call[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}

func (r TaskResponse) task(id int64) (domain.Task, error) {
	if r.Error != nil {
		return domain.Task{}, r.Error.toDomain(id)
	}
	if r.Task == nil {
		return domain.Task{}, errors.New("empty task reply")
	}
	return *r.Task, nil
}

// toDomain restores the domain error a reply carries.
func (e *ServiceError) toDomain(id int64) error {
	switch e.Code {
	case CodeValidation:
		return &domain.ValidationError{Field: e.Field}
	case CodeNotFound:
		return &domain.NotFoundError{ID: id}
	default:
		return errors.New(e.Message)
	}
}

package task

import (
	"context"
	"errors"
	"time"

	domain "github.com/abhinxvz/task-mng/domain/task"
	"github.com/abhinxvz/task-mng/events"
	"github.com/go-monolith/mono"
)

// listTasks handles the list-tasks service request.
func (m *Module) listTasks(ctx context.Context, _ ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.store.List(ctx)
	if err != nil {
		m.logger.Error("Failed to list tasks", "error", err)
		return ListTasksResponse{Error: toServiceError(err)}, nil
	}
	return ListTasksResponse{Tasks: tasks}, nil
}

// createTask handles the create-task service request.
func (m *Module) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	created, err := m.store.Create(ctx, req.Draft)
	if err != nil {
		return m.failed("create", 0, err), nil
	}

	if m.eventBus != nil {
		m.publish(events.TaskCreatedV1.Publish(m.eventBus, events.TaskCreatedEvent{
			TaskID:    created.ID,
			Title:     created.Title,
			DueDate:   created.DueDate.String(),
			CreatedAt: created.CreatedAt,
		}, nil), "TaskCreated", created.ID)
	}

	return TaskResponse{Task: &created}, nil
}

// updateTask handles the update-task service request.
func (m *Module) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	updated, err := m.store.Update(ctx, req.TaskID, req.Patch)
	if err != nil {
		return m.failed("update", req.TaskID, err), nil
	}

	// A patch with nothing to apply leaves the task as it was.
	if m.eventBus != nil && !req.Patch.IsEmpty() {
		m.publish(events.TaskUpdatedV1.Publish(m.eventBus, events.TaskUpdatedEvent{
			TaskID:    updated.ID,
			Title:     updated.Title,
			DueDate:   updated.DueDate.String(),
			Completed: updated.Completed,
			UpdatedAt: time.Now(),
		}, nil), "TaskUpdated", updated.ID)
	}

	return TaskResponse{Task: &updated}, nil
}

// toggleTask handles the toggle-task service request.
func (m *Module) toggleTask(ctx context.Context, req ToggleTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	toggled, err := m.store.ToggleComplete(ctx, req.TaskID)
	if err != nil {
		return m.failed("toggle", req.TaskID, err), nil
	}

	if m.eventBus != nil {
		m.publish(events.TaskCompletionToggledV1.Publish(m.eventBus, events.TaskCompletionToggledEvent{
			TaskID:    toggled.ID,
			Completed: toggled.Completed,
			ToggledAt: time.Now(),
		}, nil), "TaskCompletionToggled", toggled.ID)
	}

	return TaskResponse{Task: &toggled}, nil
}

// deleteTask handles the delete-task service request.
func (m *Module) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.store.Delete(ctx, req.TaskID); err != nil {
		resp := m.failed("delete", req.TaskID, err)
		return DeleteTaskResponse{Deleted: false, Error: resp.Error}, nil
	}

	if m.eventBus != nil {
		m.publish(events.TaskDeletedV1.Publish(m.eventBus, events.TaskDeletedEvent{
			TaskID:    req.TaskID,
			DeletedAt: time.Now(),
		}, nil), "TaskDeleted", req.TaskID)
	}

	return DeleteTaskResponse{Deleted: true}, nil
}

// failed logs unexpected store errors and wraps err for the reply.
func (m *Module) failed(op string, id int64, err error) TaskResponse {
	svcErr := toServiceError(err)
	if svcErr.Code == CodeInternal {
		m.logger.Error("Task operation failed", "op", op, "taskID", id, "error", err)
	}
	return TaskResponse{Error: svcErr}
}

// publish logs a failed event publication. Events are best-effort.
func (m *Module) publish(err error, event string, id int64) {
	if err != nil {
		m.logger.Warn("Failed to publish event", "event", event, "taskID", id, "error", err)
	}
}

func toServiceError(err error) *ServiceError {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return &ServiceError{Code: CodeValidation, Message: err.Error(), Field: validationErr.Field}
	case errors.Is(err, domain.ErrValidation):
		return &ServiceError{Code: CodeValidation, Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return &ServiceError{Code: CodeNotFound, Message: err.Error()}
	default:
		return &ServiceError{Code: CodeInternal, Message: err.Error()}
	}
}

package notification

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/abhinxvz/task-mng/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Module reacts to task lifecycle events as a driven adapter. Every event
// becomes one structured log line; nothing is retained.
type Module struct {
	delivered atomic.Int64
	logger    types.Logger
}

var _ mono.Module = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the notification module.
func NewModule(logger types.Logger) *Module {
	return &Module{logger: logger.WithModule("notification")}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "notification"
}

// RegisterEventConsumers subscribes to the task lifecycle events.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.handleTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCompletionToggledV1, m.handleTaskCompletionToggled, m); err != nil {
		return fmt.Errorf("failed to register TaskCompletionToggled consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	m.logger.Info("Registered event consumers",
		"events", []string{"TaskCreated", "TaskUpdated", "TaskCompletionToggled", "TaskDeleted"})
	return nil
}

func (m *Module) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.delivered.Add(1)
	m.logger.Info("Task created", "taskID", event.TaskID, "title", event.Title, "dueDate", event.DueDate)
	return nil
}

func (m *Module) handleTaskUpdated(_ context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	m.delivered.Add(1)
	m.logger.Info("Task updated", "taskID", event.TaskID, "title", event.Title, "completed", event.Completed)
	return nil
}

func (m *Module) handleTaskCompletionToggled(_ context.Context, event events.TaskCompletionToggledEvent, _ *mono.Msg) error {
	m.delivered.Add(1)
	if event.Completed {
		m.logger.Info("Task completed", "taskID", event.TaskID)
	} else {
		m.logger.Info("Task reopened", "taskID", event.TaskID)
	}
	return nil
}

func (m *Module) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.delivered.Add(1)
	m.logger.Info("Task deleted", "taskID", event.TaskID)
	return nil
}

// Delivered returns the number of events handled since start.
func (m *Module) Delivered() int64 {
	return m.delivered.Load()
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Module started, listening for task events")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Module stopped", "delivered", m.Delivered())
	return nil
}

// Health reports the delivered-events counter.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"delivered": m.Delivered(),
		},
	}
}

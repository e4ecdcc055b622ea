package api

import (
	"errors"
	"strconv"

	domain "github.com/abhinxvz/task-mng/domain/task"
	"github.com/abhinxvz/task-mng/modules/task"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

// Handlers translates HTTP requests into TaskPort calls.
type Handlers struct {
	tasks  task.TaskPort
	logger types.Logger
}

// NewHandlers creates the task handlers.
func NewHandlers(tasks task.TaskPort, logger types.Logger) *Handlers {
	return &Handlers{tasks: tasks, logger: logger}
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "healthy", Module: "api"})
}

// ListTasks handles GET /tasks.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.tasks.ListTasks(c.UserContext())
	if err != nil {
		return h.fail(c, "list", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return c.JSON(tasks)
}

// CreateTask handles POST /tasks.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := decodeBody(c, &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, MsgInvalidBody)
	}

	draft := req.toDraft()
	if err := draft.Validate(); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, MsgValidation)
	}

	created, err := h.tasks.CreateTask(c.UserContext(), draft)
	if err != nil {
		return h.fail(c, "create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateTask handles PUT /tasks/:id.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	id, ok := taskID(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, MsgNotFound)
	}

	var patch UpdateTaskRequest
	if err := decodeBody(c, &patch); err != nil {
		// An unknown id is reported before a bad body.
		if _, lookupErr := h.tasks.UpdateTask(c.UserContext(), id, domain.Patch{}); lookupErr != nil {
			return h.fail(c, "update", lookupErr)
		}
		return errorJSON(c, fiber.StatusBadRequest, MsgInvalidBody)
	}

	updated, err := h.tasks.UpdateTask(c.UserContext(), id, patch)
	if err != nil {
		return h.fail(c, "update", err)
	}
	return c.JSON(updated)
}

// ToggleComplete handles PUT /tasks/:id/complete.
func (h *Handlers) ToggleComplete(c *fiber.Ctx) error {
	id, ok := taskID(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, MsgNotFound)
	}

	toggled, err := h.tasks.ToggleComplete(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "toggle", err)
	}
	return c.JSON(toggled)
}

// DeleteTask handles DELETE /tasks/:id.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	id, ok := taskID(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, MsgNotFound)
	}

	if err := h.tasks.DeleteTask(c.UserContext(), id); err != nil {
		return h.fail(c, "delete", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// fail maps a TaskPort error onto a status code. Unknown errors go to the
// app's error handler, which answers 500.
func (h *Handlers) fail(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return errorJSON(c, fiber.StatusBadRequest, MsgValidation)
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, MsgNotFound)
	}
	h.logger.Error("Task operation failed", "op", op, "path", c.Path(), "error", err)
	return err
}

// taskID parses the :id route parameter. Ids are positive integers written
// as plain digits; anything else cannot name a task.
func taskID(c *fiber.Ctx) (int64, bool) {
	raw := c.Params("id")
	if raw == "" || raw[0] < '0' || raw[0] > '9' {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodeBody decodes a JSON body into v. An empty body leaves v untouched.
func decodeBody(c *fiber.Ctx, v any) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	return c.App().Config().JSONDecoder(body, v)
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{Error: message})
}

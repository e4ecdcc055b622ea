package api

import domain "github.com/abhinxvz/task-mng/domain/task"

// Error messages returned in ErrorResponse bodies.
const (
	MsgValidation     = "Title and description are required"
	MsgNotFound       = "Task not found"
	MsgInvalidBody    = "Invalid request body"
	MsgInternalServer = "Internal Server Error"
)

// CreateTaskRequest is the HTTP request for creating a task.
type CreateTaskRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     *domain.Date `json:"dueDate,omitempty"`
}

func (r CreateTaskRequest) toDraft() domain.Draft {
	return domain.Draft{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
	}
}

// UpdateTaskRequest is the HTTP request for a partial update. Absent fields
// keep their stored value.
type UpdateTaskRequest = domain.Patch

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Module string `json:"module"`
}

package task

import (
	"strings"
	"time"
)

// Task is the core domain entity representing a to-do item.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     Date      `json:"dueDate"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsOverdue reports whether the task is still pending and its due date is
// strictly before today. Only the calendar date is compared.
func (t Task) IsOverdue(today Date) bool {
	if t.Completed || t.DueDate.IsZero() {
		return false
	}
	return t.DueDate.Before(today)
}

// Draft carries the fields accepted when creating a task.
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     *Date  `json:"dueDate,omitempty"`
}

// Validate checks the required fields of a draft.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(d.Description) == "" {
		return &ValidationError{Field: "description"}
	}
	return nil
}

// Build turns a validated draft into a task. The id is left for the store
// to assign. Without a due date the task is due on its UTC creation day.
func (d Draft) Build(now time.Time) Task {
	now = now.UTC()
	due := DateOf(now)
	if d.DueDate != nil && !d.DueDate.IsZero() {
		due = *d.DueDate
	}
	return Task{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		DueDate:     due,
		Completed:   false,
		CreatedAt:   now,
	}
}

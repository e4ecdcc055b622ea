package task

import "strings"

// Patch is a partial update. A nil field is absent.
//
// Text fields that are empty or whitespace-only and a zero due date count as
// absent too, so an update can never clear title, description or due date.
// Completed is applied whenever it is present.
type Patch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *Date   `json:"dueDate,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// IsEmpty reports whether applying the patch would change nothing.
func (p Patch) IsEmpty() bool {
	return textOf(p.Title) == "" &&
		textOf(p.Description) == "" &&
		(p.DueDate == nil || p.DueDate.IsZero()) &&
		p.Completed == nil
}

// Apply merges the patch into t field by field.
func (p Patch) Apply(t *Task) {
	if v := textOf(p.Title); v != "" {
		t.Title = v
	}
	if v := textOf(p.Description); v != "" {
		t.Description = v
	}
	if p.DueDate != nil && !p.DueDate.IsZero() {
		t.DueDate = *p.DueDate
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}

func textOf(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

package main

import (
	"fmt"
	"io"

	"github.com/abhinxvz/task-mng/client/viewmodel"
	domain "github.com/abhinxvz/task-mng/domain/task"
	"github.com/charmbracelet/lipgloss"
)

var colors = struct {
	Muted   lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Title   lipgloss.Color
}{
	Muted:   lipgloss.Color("#636E72"),
	Success: lipgloss.Color("#00B894"),
	Error:   lipgloss.Color("#D63031"),
	Title:   lipgloss.Color("#DFE6E9"),
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colors.Title)
	doneTitleStyle = lipgloss.NewStyle().Strikethrough(true).Foreground(colors.Muted)
	mutedStyle     = lipgloss.NewStyle().Foreground(colors.Muted)
	completedBadge = lipgloss.NewStyle().Bold(true).Foreground(colors.Success).Render("[Completed]")
	overdueBadge   = lipgloss.NewStyle().Bold(true).Foreground(colors.Error).Render("[Overdue]")
)

// renderList writes the counts header followed by every task.
func renderList(w io.Writer, tasks []domain.Task, today domain.Date) {
	_, _ = fmt.Fprintf(w, "%s %d pending, %d completed\n",
		titleStyle.Render("Tasks:"),
		viewmodel.PendingCount(tasks),
		viewmodel.CompletedCount(tasks))

	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(w, mutedStyle.Render("No tasks yet."))
		return
	}
	for _, t := range tasks {
		renderTask(w, t, today)
	}
}

// renderTask writes one task as a headline and an indented description.
func renderTask(w io.Writer, t domain.Task, today domain.Date) {
	title := titleStyle.Render(t.Title)
	if t.Completed {
		title = doneTitleStyle.Render(t.Title)
	}

	line := fmt.Sprintf("#%-4d %s  %s", t.ID, title, mutedStyle.Render("due "+t.DueDate.String()))
	switch {
	case t.Completed:
		line += " " + completedBadge
	case viewmodel.IsOverdue(t, today):
		line += " " + overdueBadge
	}

	_, _ = fmt.Fprintln(w, line)
	_, _ = fmt.Fprintln(w, "      "+t.Description)
}

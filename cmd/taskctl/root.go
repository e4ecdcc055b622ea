package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/abhinxvz/task-mng/client"
	"github.com/abhinxvz/task-mng/client/viewmodel"
	domain "github.com/abhinxvz/task-mng/domain/task"
	"github.com/spf13/cobra"
)

// envServer overrides the default server address.
const envServer = "TASKS_API_URL"

// viewModelFactory builds a ViewModel for the server at the given address.
type viewModelFactory func(server string) *viewmodel.ViewModel

// newRootCommand creates the taskctl root command.
func newRootCommand(newViewModel viewModelFactory) *cobra.Command {
	var server string

	root := &cobra.Command{
		Use:   "taskctl",
		Short: "Manage tasks on a task manager server",
		Long: `taskctl lists, creates, edits, completes and deletes tasks on a
task manager server. The server address comes from --server or the
` + envServer + ` environment variable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultServer := os.Getenv(envServer)
	if defaultServer == "" {
		defaultServer = client.DefaultBaseURL
	}
	root.PersistentFlags().StringVar(&server, "server", defaultServer, "task manager server URL")

	vm := func() *viewmodel.ViewModel {
		return newViewModel(server)
	}

	root.AddCommand(
		newListCommand(vm),
		newAddCommand(vm),
		newEditCommand(vm),
		newToggleCommand(vm),
		newDeleteCommand(vm),
	)
	return root
}

func newListCommand(vm func() *viewmodel.ViewModel) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := vm()
			if err := m.Refresh(cmd.Context()); err != nil {
				return failure(m, err)
			}
			renderList(cmd.OutOrStdout(), m.Tasks(), m.Today())
			return nil
		},
	}
}

func newAddCommand(vm func() *viewmodel.ViewModel) *cobra.Command {
	var title, description, due string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Long:  "Create a task. The due date defaults to today.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form := viewmodel.Form{Title: title, Description: description}
			if due != "" {
				d, err := domain.ParseDate(due)
				if err != nil {
					return err
				}
				form.DueDate = d
			}

			m := vm()
			created, err := m.Add(cmd.Context(), form)
			if err != nil {
				return failure(m, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d\n", created.ID)
			renderTask(cmd.OutOrStdout(), created, m.Today())
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "task title (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description (required)")
	cmd.Flags().StringVar(&due, "due", "", "due date as YYYY-MM-DD")
	return cmd
}

func newEditCommand(vm func() *viewmodel.ViewModel) *cobra.Command {
	var title, description, due string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long:  "Edit a task. Fields without a flag keep their current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			m := vm()
			if err := m.Refresh(cmd.Context()); err != nil {
				return failure(m, err)
			}

			var form viewmodel.Form
			if current, ok := m.Find(id); ok {
				form = viewmodel.FormFor(current)
			}
			if cmd.Flags().Changed("title") {
				form.Title = title
			}
			if cmd.Flags().Changed("description") {
				form.Description = description
			}
			if cmd.Flags().Changed("due") {
				d, err := domain.ParseDate(due)
				if err != nil {
					return err
				}
				form.DueDate = d
			}

			updated, err := m.Edit(cmd.Context(), id, form)
			if err != nil {
				return failure(m, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%d\n", updated.ID)
			renderTask(cmd.OutOrStdout(), updated, m.Today())
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&due, "due", "", "new due date as YYYY-MM-DD")
	return cmd
}

func newToggleCommand(vm func() *viewmodel.ViewModel) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between pending and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			m := vm()
			toggled, err := m.Toggle(cmd.Context(), id)
			if err != nil {
				return failure(m, err)
			}
			state := "pending"
			if toggled.Completed {
				state = "completed"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task #%d marked %s\n", toggled.ID, state)
			return nil
		},
	}
}

func newDeleteCommand(vm func() *viewmodel.ViewModel) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			m := vm()
			if err := m.Delete(cmd.Context(), id); err != nil {
				return failure(m, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d\n", id)
			return nil
		},
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

// failure returns the ViewModel's message for the failed action.
func failure(m *viewmodel.ViewModel, err error) error {
	if msg := m.Err(); msg != "" {
		return errors.New(msg)
	}
	return err
}

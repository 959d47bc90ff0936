package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mmynk/stride/internal/models"
)

func (c *cli) todoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Task list",
	}
	cmd.AddCommand(c.todoAddCmd(), c.todoListCmd(), c.todoDoneCmd(), c.todoDeleteCmd())
	return cmd
}

func (c *cli) todoAddCmd() *cobra.Command {
	var title, description, deadline, recurrence string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.mount(cmd, c.app.Todos); err != nil {
				return err
			}
			todo := &models.Todo{
				Title:       title,
				Description: description,
			}
			if recurrence != "" {
				r, err := models.ParseRecurrence(recurrence)
				if err != nil {
					return err
				}
				todo.Recurrent, todo.Recurrence = true, r
			}
			if deadline != "" {
				clock := c.app.Clock()
				d, err := parseWhen(deadline, clock.Time(), clock.Location)
				if err != nil {
					return err
				}
				todo.HasDeadline, todo.Deadline = true, d
			}
			stored, err := c.app.Todos.Add(cmd.Context(), todo)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Added %q (%s).\n", stored.Title, stored.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "task title")
	cmd.Flags().StringVar(&description, "description", "", "details")
	cmd.Flags().StringVar(&deadline, "deadline", "", "due date")
	cmd.Flags().StringVar(&recurrence, "repeat", "", "daily, weekly, bi-weekly, monthly or yearly")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (c *cli) todoListCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pending tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.mount(cmd, c.app.Todos); err != nil {
				return err
			}
			w := out(cmd)
			pending := c.app.Todos.Pending()
			if len(pending) == 0 && !all {
				fmt.Fprintln(w, "Nothing to do.")
				return nil
			}
			for _, t := range pending {
				printTodo(w, t)
			}
			if all {
				for _, t := range c.app.Todos.Completed() {
					printTodo(w, t)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include completed tasks")
	return cmd
}

func printTodo(w io.Writer, t models.Todo) {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	line := fmt.Sprintf("%s %s", box, t.Title)
	if t.HasDeadline {
		line += " (due " + t.Deadline.Format("2006-01-02") + ")"
	}
	if t.Recurrent {
		line += " (" + string(t.Recurrence) + ")"
	}
	fmt.Fprintf(w, "%s  [%s]\n", line, t.ID)
}

func (c *cli) todoDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <task-id>",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.mount(cmd, c.app.Todos); err != nil {
				return err
			}
			t, err := c.app.Todos.ToggleComplete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			state := "pending"
			if t.Completed {
				state = "completed"
			}
			fmt.Fprintf(out(cmd), "%q is %s.\n", t.Title, state)
			return nil
		},
	}
}

func (c *cli) todoDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.mount(cmd, c.app.Todos); err != nil {
				return err
			}
			if err := c.app.Todos.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Deleted %s.\n", args[0])
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/dayscribe/internal/client/models"
	"github.com/dmitrijs2005/dayscribe/internal/common"
)

// Add adds a task from args, or prompts for the text when args are empty.
func (a *App) Add(ctx context.Context, args []string) error {
	return a.addTask(ctx, args, false)
}

func (a *App) addTask(ctx context.Context, args []string, recurring bool) error {
	text := strings.Join(args, " ")
	if text == "" {
		var err error
		if text, err = getSimpleText(a.reader, "Enter task", a.out); err != nil {
			return err
		}
	}

	t, err := a.tasks.Add(ctx, a.user.ID, text, recurring)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added: %s\n", t.Text)
	return nil
}

func (a *App) List(ctx context.Context) error {
	list, err := a.tasks.List(a.user.ID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No tasks yet. Add one with: add <text>")
		return nil
	}
	printTasks(a.out, list)
	return nil
}

// Done toggles the completion of the task given by list number or id.
func (a *App) Done(ctx context.Context, args []string) error {
	list, err := a.tasks.List(a.user.ID)
	if err != nil {
		return err
	}
	id, err := resolveTask(list, args)
	if err != nil {
		return err
	}

	t, err := a.tasks.ToggleComplete(ctx, a.user.ID, id)
	if err != nil {
		return err
	}
	if t == nil {
		return notFound(args[0])
	}
	if t.Completed {
		fmt.Fprintf(a.out, "Completed: %s\n", t.Text)
	} else {
		fmt.Fprintf(a.out, "Reopened: %s\n", t.Text)
	}
	return nil
}

// Delete removes the task given by list number or id.
func (a *App) Delete(ctx context.Context, args []string) error {
	list, err := a.tasks.List(a.user.ID)
	if err != nil {
		return err
	}
	return a.remove(ctx, list, args)
}

func (a *App) remove(ctx context.Context, list []models.Task, args []string) error {
	id, err := resolveTask(list, args)
	if err != nil {
		return err
	}

	t, err := a.tasks.Remove(ctx, a.user.ID, id)
	if err != nil {
		return err
	}
	if t == nil {
		return notFound(args[0])
	}
	fmt.Fprintf(a.out, "Deleted: %s\n", t.Text)
	return nil
}

// resolveTask maps a 1-based list number or a task id from list to a task id.
func resolveTask(list []models.Task, args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: usage: <command> <n|id>", common.ErrValidation)
	}
	ref := args[0]
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(list) {
			return "", notFound(ref)
		}
		return list[n-1].ID, nil
	}
	for _, t := range list {
		if t.ID == ref {
			return ref, nil
		}
	}
	return "", notFound(ref)
}

func notFound(ref string) error {
	return fmt.Errorf("task %s: %w", ref, common.ErrorNotFound)
}

func printTasks(w io.Writer, list []models.Task) {
	for i, t := range list {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		daily := ""
		if t.IsRecurring {
			daily = " (daily)"
		}
		fmt.Fprintf(w, "%2d. [%s] %s%s\n", i+1, mark, t.Text, daily)
	}
}

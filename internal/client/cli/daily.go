package cli

import (
	"context"
	"fmt"
)

// Daily lists the recurring tasks.
func (a *App) Daily(ctx context.Context) error {
	list, err := a.tasks.ListRecurring(a.user.ID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No daily tasks. Add one with: adddaily <text>")
		return nil
	}
	printTasks(a.out, list)
	return nil
}

func (a *App) AddDaily(ctx context.Context, args []string) error {
	return a.addTask(ctx, args, true)
}

// DelDaily removes a recurring task by its number in the daily list or id.
func (a *App) DelDaily(ctx context.Context, args []string) error {
	list, err := a.tasks.ListRecurring(a.user.ID)
	if err != nil {
		return err
	}
	return a.remove(ctx, list, args)
}

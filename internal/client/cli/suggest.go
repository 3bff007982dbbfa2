package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/dayscribe/internal/client/suggest"
)

// getMultiline is swapped in tests like getSimpleText.
var getMultiline = GetMultiline

// Suggest asks for today's schedule and goals, shows up to five suggested
// tasks and lets the user add them by number.
func (a *App) Suggest(ctx context.Context) error {
	if !a.config.SuggestionsEnabled() {
		return suggest.ErrUnavailable
	}

	schedule, err := getMultiline(a.reader, "Today's schedule (e.g. 9am meeting, 1pm lunch)", a.out)
	if err != nil {
		return err
	}
	goals, err := getSimpleText(a.reader, "Today's goals (e.g. finish project report, exercise)", a.out)
	if err != nil {
		return err
	}

	completed, err := a.tasks.CompletedTexts(a.user.ID)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Thinking...")
	var (
		rctx   context.Context
		cancel context.CancelFunc
	)
	if a.config.SuggestTimeout > 0 {
		rctx, cancel = context.WithTimeout(ctx, a.config.SuggestTimeout)
	} else {
		rctx, cancel = context.WithCancel(ctx)
	}
	out, err := a.suggester.Suggest(rctx, suggest.Input{
		Schedule:       schedule,
		CompletedTasks: completed,
		UserGoals:      goals,
	})
	cancel()
	if errors.Is(err, suggest.ErrStaleResponse) {
		return nil
	}
	if err != nil {
		return err
	}

	suggestions := suggest.ExcludeCompleted(out.SuggestedTasks, completed)
	if len(suggestions) == 0 {
		fmt.Fprintln(a.out, "No new suggestions. Try refining your goals or schedule.")
		return nil
	}

	for len(suggestions) > 0 {
		fmt.Fprintln(a.out, "Suggested tasks:")
		for i, s := range suggestions {
			fmt.Fprintf(a.out, "%2d. %s\n", i+1, s)
		}

		choice, err := getSimpleText(a.reader, "Number to add (empty line to finish)", a.out)
		if err != nil || choice == "" {
			return err
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(suggestions) {
			fmt.Fprintf(a.out, "Pick a number between 1 and %d.\n", len(suggestions))
			continue
		}

		text := suggestions[n-1]
		if err := a.addTask(ctx, []string{text}, false); err != nil {
			return err
		}
		suggestions = suggest.Remove(suggestions, text)
	}
	return nil
}

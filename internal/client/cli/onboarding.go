package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Onboard runs the first-run setup: the user enters daily tasks one per line
// until an empty line, "skip" skips setup, "undo" drops the last draft.
func (a *App) Onboard(ctx context.Context) error {
	fmt.Fprintf(a.out, "Let's set up your daily tasks, %s.\n", a.user.DisplayName())
	fmt.Fprintln(a.out, "Enter one task per line. Empty line to finish, 'undo' to remove the last one, 'skip' to skip.")

	for {
		line, err := getSimpleText(a.reader, fmt.Sprintf("Daily task #%d", len(a.setup.Drafts())+1), a.out)
		if err != nil {
			return err
		}

		switch strings.ToLower(line) {
		case "":
			return a.finishOnboarding(ctx)
		case "skip":
			u, err := a.setup.Skip(ctx, a.user)
			if err != nil {
				return err
			}
			a.user = u
			fmt.Fprintln(a.out, "Skipped. You can add daily tasks later with: adddaily <text>")
			return nil
		case "undo":
			if n := len(a.setup.Drafts()); n > 0 {
				_ = a.setup.Remove(n - 1)
			}
			a.printDrafts()
			continue
		}

		if err := a.setup.Add(line); err != nil {
			fmt.Fprintln(a.out, userMessage(err))
		}
	}
}

func (a *App) finishOnboarding(ctx context.Context) error {
	n := len(a.setup.Drafts())
	u, err := a.setup.Finish(ctx, a.user)
	if err != nil {
		return err
	}
	a.user = u
	fmt.Fprintf(a.out, "Saved %s. You're all set!\n", plural(n, "daily task"))
	return nil
}

func (a *App) printDrafts() {
	drafts := a.setup.Drafts()
	if len(drafts) == 0 {
		fmt.Fprintln(a.out, "(no daily tasks yet)")
		return
	}
	for i, d := range drafts {
		fmt.Fprintf(a.out, "%2d. %s\n", i+1, d)
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/dayscribe/internal/client/onboarding"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	target() onboarding.Target
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Onboard(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Done(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Daily(ctx context.Context) error
	AddDaily(ctx context.Context, args []string) error
	DelDaily(ctx context.Context, args []string) error
	Suggest(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: add, (l)ist, done <n|id>, delete <n|id>, daily, adddaily, deldaily <n|id>, suggest, whoami, logout, exit"
)

// runREPL starts a simple read-eval-print loop for the Dayscribe CLI.
//
// Before every prompt the onboarding gate is consulted: a user whose
// onboarding is pending is taken through the daily task setup first. The
// first token of each line is the command, the rest are its arguments.
//
//	Not logged in:
//	  - help           show available commands
//	  - register       create an account
//	  - login          sign in
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - add <text>         add a task
//	  - list | l           list tasks
//	  - done <n|id>        toggle completion
//	  - delete <n|id>      delete a task
//	  - daily              list daily tasks
//	  - adddaily <text>    add a daily task
//	  - deldaily <n|id>    delete a daily task
//	  - suggest            ask for task ideas
//	  - whoami             show the current user
//	  - logout             log out and forget local tasks
//	  - exit | quit        leave the program
//
// Handler errors are reported and the loop continues. The loop exits on EOF
// or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		if a.target() == onboarding.TargetOnboarding {
			if err := a.Onboard(ctx); err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				report(err)
				continue
			}
		}

		printlnFn(fmt.Sprintf("dayscribe%s> ", prefixSpace(statusFn())))
		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		loggedIn := a.target() == onboarding.TargetTasks
		report(dispatch(ctx, a, cmd, args, loggedIn))

		if err != nil {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, loggedIn bool) error {
	if cmd == "help" {
		if loggedIn {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return nil
	}

	if !loggedIn {
		switch cmd {
		case "register":
			return a.Register(ctx)
		case "login":
			return a.Login(ctx)
		case "add", "list", "l", "done", "delete", "daily", "adddaily", "deldaily", "suggest", "whoami", "logout":
			printlnFn("Please login or register first.")
			return nil
		}
		printlnFn("Unknown command:", cmd)
		return nil
	}

	switch cmd {
	case "register", "login":
		printlnFn("Already logged in. Use logout first.")
		return nil
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.Whoami(ctx)
	case "add":
		return a.Add(ctx, args)
	case "l", "list":
		return a.List(ctx)
	case "done":
		return a.Done(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "daily":
		return a.Daily(ctx)
	case "adddaily":
		return a.AddDaily(ctx, args)
	case "deldaily":
		return a.DelDaily(ctx, args)
	case "suggest":
		return a.Suggest(ctx)
	}
	printlnFn("Unknown command:", cmd)
	return nil
}

func report(err error) {
	if err == nil || errors.Is(err, io.EOF) {
		return
	}
	printlnFn("Error:", userMessage(err))
}

func prefixSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}

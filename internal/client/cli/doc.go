// Package cli provides the interactive Dayscribe command-line client.
//
// It wires configuration, the local SQLite store, the session and task
// services and the suggestion client into a read-eval-print loop. After every
// command the onboarding gate decides what the user sees next: the sign-in
// commands, the first-run daily task setup, or the task commands.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/dayscribe/internal/client/config"
	"github.com/dmitrijs2005/dayscribe/internal/client/repositories/kvstore"
	"github.com/dmitrijs2005/dayscribe/internal/client/services"
	"github.com/dmitrijs2005/dayscribe/internal/client/suggest"
	"github.com/dmitrijs2005/dayscribe/internal/logging"
)

// ------------ helpers ------------

type testEnv struct {
	app  *App
	repo *kvstore.MemoryRepository
	out  *bytes.Buffer
}

// newTestEnv builds an App over an in-memory store that reads lines as
// user input. Passwords are read from the same input.
func newTestEnv(t *testing.T, s suggest.Suggester, lines ...string) *testEnv {
	t.Helper()
	return newTestEnvWithRepo(t, kvstore.NewMemoryRepository(), s, lines...)
}

func newTestEnvWithRepo(t *testing.T, repo *kvstore.MemoryRepository, s suggest.Suggester, lines ...string) *testEnv {
	t.Helper()

	out := &bytes.Buffer{}
	origPrint, origTerm := printlnFn, isTerminal
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(out, a...) }
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { printlnFn, isTerminal = origPrint, origTerm })

	cfg := &config.Config{SuggestTimeout: time.Second}
	if s != nil {
		cfg.AnthropicAPIKey = "test-key"
	} else {
		s = suggest.Unavailable{}
	}

	log := logging.NewNop()
	app := newApp(cfg, log,
		services.NewSessionServiceWithRepo(repo, 0, log),
		services.NewTaskStore(repo, log),
		s,
		readerFromLines(lines...), out)

	return &testEnv{app: app, repo: repo, out: out}
}

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

type fakeSuggester struct {
	out   suggest.Output
	err   error
	calls []suggest.Input
}

func (f *fakeSuggester) Suggest(ctx context.Context, in suggest.Input) (suggest.Output, error) {
	f.calls = append(f.calls, in)
	return f.out, f.err
}

package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/dayscribe/internal/client/config"
	"github.com/dmitrijs2005/dayscribe/internal/client/models"
	"github.com/dmitrijs2005/dayscribe/internal/client/onboarding"
	"github.com/dmitrijs2005/dayscribe/internal/client/repositories/kvstore"
	"github.com/dmitrijs2005/dayscribe/internal/client/services"
	"github.com/dmitrijs2005/dayscribe/internal/client/storage"
	"github.com/dmitrijs2005/dayscribe/internal/client/suggest"
	"github.com/dmitrijs2005/dayscribe/internal/common"
	"github.com/dmitrijs2005/dayscribe/internal/filex"
	"github.com/dmitrijs2005/dayscribe/internal/logging"
)

type App struct {
	config    *config.Config
	db        *sql.DB
	log       logging.Logger
	sessions  services.SessionService
	tasks     *services.TaskStore
	setup     *onboarding.Setup
	suggester *suggest.Requester

	user    *models.User
	loading bool

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the database under the configured data directory and wires
// the services. The caller must Close the App.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	dir, err := filex.EnsureDataDir(c.DataDir)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, c.DBFile)
	db, err := storage.Open(ctx, storage.FileDSN(path))
	if err != nil {
		log.Error(ctx, "error initializing database", "path", path, "error", err)
		return nil, err
	}
	log.Debug(ctx, "database ready", "path", path)

	var s suggest.Suggester = suggest.Unavailable{}
	if c.SuggestionsEnabled() {
		s = suggest.NewAnthropicClient(suggest.AnthropicConfig{
			APIKey:     c.AnthropicAPIKey,
			Model:      c.AnthropicModel,
			BaseURL:    c.AnthropicBaseURL,
			HTTPClient: &http.Client{},
		}, log)
	}

	a := newApp(c, log,
		services.NewSessionService(db, c.SimulatedLatency, log),
		services.NewTaskStore(kvstore.NewSQLiteRepository(db), log),
		s,
		bufio.NewReader(os.Stdin), os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, sessions services.SessionService, tasks *services.TaskStore, s suggest.Suggester, r *bufio.Reader, w io.Writer) *App {
	return &App{
		config:    c,
		log:       log,
		sessions:  sessions,
		tasks:     tasks,
		setup:     onboarding.NewSetup(tasks, sessions, log),
		suggester: suggest.NewRequester(s),
		reader:    r,
		out:       w,
	}
}

// Run restores the previous session and runs the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Dayscribe (type 'help' for commands)")
	a.restore(ctx)
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) Close() error {
	a.suggester.Invalidate()
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) target() onboarding.Target {
	return onboarding.Decide(onboarding.State{Loading: a.loading, User: a.user})
}

func (a *App) status() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.user.Email)
}

// restore loads the persisted session, if any, and its tasks.
func (a *App) restore(ctx context.Context) {
	a.loading = true
	defer func() { a.loading = false }()

	u, err := a.sessions.Restore(ctx)
	if errors.Is(err, common.ErrCorruptedState) {
		fmt.Fprintln(a.out, "Saved session was unreadable and has been cleared. Please log in again.")
	} else if err != nil {
		a.log.Error(ctx, "restore session", "error", err)
	}
	if u == nil {
		return
	}

	a.user = u
	a.loadTasks(ctx)
	fmt.Fprintf(a.out, "Welcome back, %s!\n", u.DisplayName())
}

func (a *App) loadTasks(ctx context.Context) {
	_, err := a.tasks.Load(ctx, a.user.ID)
	switch {
	case errors.Is(err, common.ErrCorruptedState):
		fmt.Fprintln(a.out, "Saved tasks were unreadable; starting with an empty list.")
	case err != nil:
		a.log.Error(ctx, "load tasks", "user_id", a.user.ID, "error", err)
	}
}

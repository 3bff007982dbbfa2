package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dayscribe/internal/client/models"
	"github.com/dmitrijs2005/dayscribe/internal/client/repositories/kvstore"
	"github.com/dmitrijs2005/dayscribe/internal/client/schema"
	"github.com/dmitrijs2005/dayscribe/internal/common"
	"github.com/dmitrijs2005/dayscribe/internal/dbx"
	"github.com/dmitrijs2005/dayscribe/internal/logging"
	"github.com/google/uuid"
)

// SessionService owns "who is logged in".
//
// The returned *models.User is the session handle: callers pass it on to
// the task store and the onboarding flow. The service itself keeps no
// current-user state, so several handles can coexist (tests, future
// multi-account support).
//
// Contract:
//   - Restore: read the persisted session; corrupt data is treated as logged out.
//   - Login: reuse the persisted user when the email matches, else fabricate one.
//   - Register: always create a fresh user that still needs onboarding.
//   - Logout: drop the session and the user's task collection.
//   - UpdateOnboardingStatus: flip the onboarding flag and persist it.
//
// Login, Register and Logout wait for the configured latency first; a
// cancelled context aborts them before anything is written.
type SessionService interface {
	Restore(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, email string) (*models.User, error)
	Register(ctx context.Context, email, firstName, lastName string) (*models.User, error)
	Logout(ctx context.Context, user *models.User) error
	UpdateOnboardingStatus(ctx context.Context, user *models.User, done bool) (*models.User, error)
}

// RepoFactory binds a kvstore.Repository to a DBTX. It lets the session
// service run multi-key writes inside one transaction.
type RepoFactory func(db dbx.DBTX) kvstore.Repository

type sessionService struct {
	db      *sql.DB
	repo    kvstore.Repository
	newRepo RepoFactory
	latency time.Duration
	log     logging.Logger
	newID   func() (string, error)
}

// NewSessionService constructs a SessionService over the SQLite database.
func NewSessionService(db *sql.DB, latency time.Duration, log logging.Logger) SessionService {
	factory := func(tx dbx.DBTX) kvstore.Repository { return kvstore.NewSQLiteRepository(tx) }
	return &sessionService{
		db:      db,
		repo:    factory(db),
		newRepo: factory,
		latency: latency,
		log:     log.With("component", "session"),
		newID:   newUserID,
	}
}

// NewSessionServiceWithRepo constructs a SessionService over any
// kvstore.Repository that is not backed by *sql.DB, such as the in-memory
// store. Logout then deletes its two keys one after the other rather than in
// a transaction.
func NewSessionServiceWithRepo(repo kvstore.Repository, latency time.Duration, log logging.Logger) SessionService {
	return &sessionService{
		repo:    repo,
		latency: latency,
		log:     log.With("component", "session"),
		newID:   newUserID,
	}
}

func newUserID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate user id: %w", err)
	}
	return "mock-user-" + id.String(), nil
}

// Restore returns the persisted session user, or nil when logged out. A
// record that fails schema validation is logged, removed and reported as
// common.ErrCorruptedState together with a nil user.
func (s *sessionService) Restore(ctx context.Context) (*models.User, error) {
	u, err := s.current(ctx)
	if err == nil || !errors.Is(err, common.ErrCorruptedState) {
		return u, err
	}

	s.log.Warn(ctx, "discarding corrupt session record", "error", err)
	if derr := s.repo.Delete(ctx, UserKey); derr != nil {
		return nil, fmt.Errorf("remove corrupt session: %w", derr)
	}
	return nil, err
}

// current reads the persisted user without side effects.
func (s *sessionService) current(ctx context.Context) (*models.User, error) {
	data, err := s.repo.Get(ctx, UserKey)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	u, err := schema.DecodeUser(data)
	if err != nil {
		return nil, fmt.Errorf("session record: %w: %w", common.ErrCorruptedState, err)
	}
	return u, nil
}

// Login reuses the persisted user when its email matches, keeping its
// onboarding flag. Otherwise it fabricates a user with placeholder names and
// no onboarding flag, which the gate treats as onboarded.
func (s *sessionService) Login(ctx context.Context, email string) (*models.User, error) {
	email, err := models.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := wait(ctx, s.latency); err != nil {
		return nil, err
	}

	existing, err := s.current(ctx)
	if err != nil && !errors.Is(err, common.ErrCorruptedState) {
		return nil, err
	}
	if err != nil {
		s.log.Warn(ctx, "overwriting corrupt session record on login", "error", err)
	}

	if existing != nil && existing.SameEmail(email) {
		s.log.Info(ctx, "session resumed", "user_id", existing.ID)
		return existing, nil
	}

	id, err := s.newID()
	if err != nil {
		return nil, err
	}
	u := &models.User{ID: id, Email: email, FirstName: "Demo", LastName: "User"}
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "logged in", "user_id", u.ID)
	return u, nil
}

// Register creates a new user with HasCompletedOnboarding=false.
func (s *sessionService) Register(ctx context.Context, email, firstName, lastName string) (*models.User, error) {
	email, err := models.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	firstName, lastName, err = models.NormalizeName(firstName, lastName)
	if err != nil {
		return nil, err
	}
	if err := wait(ctx, s.latency); err != nil {
		return nil, err
	}

	id, err := s.newID()
	if err != nil {
		return nil, err
	}
	u := (&models.User{ID: id, Email: email, FirstName: firstName, LastName: lastName}).WithOnboarding(false)
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "registered", "user_id", u.ID)
	return u, nil
}

// Logout removes the session record and the user's task collection.
func (s *sessionService) Logout(ctx context.Context, user *models.User) error {
	if err := wait(ctx, s.latency); err != nil {
		return err
	}

	drop := func(ctx context.Context, repo kvstore.Repository) error {
		if err := repo.Delete(ctx, UserKey); err != nil {
			return err
		}
		if user != nil {
			return repo.Delete(ctx, TasksKey(user.ID))
		}
		return nil
	}

	var err error
	if s.db != nil {
		err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return drop(ctx, s.newRepo(tx))
		})
	} else {
		err = drop(ctx, s.repo)
	}
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	if user != nil {
		s.log.Info(ctx, "logged out", "user_id", user.ID)
	}
	return nil
}

// UpdateOnboardingStatus persists a copy of user with the flag set.
func (s *sessionService) UpdateOnboardingStatus(ctx context.Context, user *models.User, done bool) (*models.User, error) {
	if user == nil {
		return nil, common.ErrNotLoggedIn
	}

	updated := user.WithOnboarding(done)
	if err := s.save(ctx, updated); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "onboarding status updated", "user_id", updated.ID, "done", done)
	return updated, nil
}

func (s *sessionService) save(ctx context.Context, u *models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.repo.Set(ctx, UserKey, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

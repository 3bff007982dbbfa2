package onboarding

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/dayscribe/internal/client/models"
	"github.com/dmitrijs2005/dayscribe/internal/common"
	"github.com/dmitrijs2005/dayscribe/internal/logging"
)

var ErrAlreadyOnboarded = errors.New("onboarding already completed")

// TaskLoader is the part of the task store the setup flow needs.
type TaskLoader interface {
	Load(ctx context.Context, userID string) ([]models.Task, error)
	AddRecurring(ctx context.Context, userID string, texts []string) ([]models.Task, error)
}

// StatusUpdater is the part of the session service the setup flow needs.
type StatusUpdater interface {
	UpdateOnboardingStatus(ctx context.Context, user *models.User, done bool) (*models.User, error)
}

// Setup collects draft recurring tasks and completes onboarding.
// A Setup is used by one goroutine at a time.
type Setup struct {
	tasks    TaskLoader
	sessions StatusUpdater
	log      logging.Logger
	drafts   []string
}

func NewSetup(tasks TaskLoader, sessions StatusUpdater, log logging.Logger) *Setup {
	return &Setup{tasks: tasks, sessions: sessions, log: log.With("component", "onboarding")}
}

// Add validates text and appends it to the drafts.
func (s *Setup) Add(text string) error {
	text, err := models.NormalizeTaskText(text)
	if err != nil {
		return err
	}
	s.drafts = append(s.drafts, text)
	return nil
}

// Remove drops the draft at index i (zero-based).
func (s *Setup) Remove(i int) error {
	if i < 0 || i >= len(s.drafts) {
		return fmt.Errorf("%w: no draft #%d", common.ErrValidation, i+1)
	}
	s.drafts = slices.Delete(s.drafts, i, i+1)
	return nil
}

func (s *Setup) Drafts() []string {
	return slices.Clone(s.drafts)
}

// Finish saves the drafts as recurring tasks and marks the user onboarded.
// It returns the updated session handle. Drafts are dropped once they are
// saved, so a retry after a failed status update only flips the flag.
func (s *Setup) Finish(ctx context.Context, user *models.User) (*models.User, error) {
	if err := checkPending(user); err != nil {
		return nil, err
	}

	_, err := s.tasks.Load(ctx, user.ID)
	if err != nil && !errors.Is(err, common.ErrCorruptedState) {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	saved := len(s.drafts)
	if _, err := s.tasks.AddRecurring(ctx, user.ID, s.drafts); err != nil {
		return nil, fmt.Errorf("save daily tasks: %w", err)
	}
	s.drafts = nil

	updated, err := s.sessions.UpdateOnboardingStatus(ctx, user, true)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "onboarding finished", "user_id", user.ID, "daily_tasks", saved)
	return updated, nil
}

// Skip marks the user onboarded without adding tasks.
func (s *Setup) Skip(ctx context.Context, user *models.User) (*models.User, error) {
	if err := checkPending(user); err != nil {
		return nil, err
	}

	updated, err := s.sessions.UpdateOnboardingStatus(ctx, user, true)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "onboarding skipped", "user_id", user.ID)
	s.drafts = nil
	return updated, nil
}

func checkPending(user *models.User) error {
	if user == nil {
		return common.ErrNotLoggedIn
	}
	if !user.NeedsOnboarding() {
		return ErrAlreadyOnboarded
	}
	return nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/dayscribe/internal/client/models"
	"github.com/dmitrijs2005/dayscribe/internal/client/repositories/kvstore"
	"github.com/dmitrijs2005/dayscribe/internal/client/schema"
	"github.com/dmitrijs2005/dayscribe/internal/common"
	"github.com/dmitrijs2005/dayscribe/internal/logging"
	"github.com/google/uuid"
)

// TaskStore holds the task collection of one owner at a time.
//
// Mutations change the in-memory collection first and then persist the whole
// collection. When persisting fails the change is undone and the error is
// returned, so memory and storage never disagree for long.
type TaskStore struct {
	mu     sync.Mutex
	repo   kvstore.Repository
	log    logging.Logger
	newID  func() (string, error)
	owner  string
	loaded bool
	tasks  []models.Task
}

func NewTaskStore(repo kvstore.Repository, log logging.Logger) *TaskStore {
	return &TaskStore{
		repo:  repo,
		log:   log.With("component", "tasks"),
		newID: newTaskID,
	}
}

func newTaskID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate task id: %w", err)
	}
	return id.String(), nil
}

// Load replaces the owner and collection with userID's persisted tasks.
//
// A missing key yields an empty collection. Corrupt data, or tasks owned by
// someone else, also yield an empty collection plus an error wrapping
// common.ErrCorruptedState; the stored value is overwritten by the next
// mutation.
func (s *TaskStore) Load(ctx context.Context, userID string) ([]models.Task, error) {
	if userID == "" {
		return nil, common.ErrNotLoggedIn
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, loadErr := s.read(ctx, userID)
	if loadErr != nil && !errors.Is(loadErr, common.ErrCorruptedState) {
		return nil, loadErr
	}
	if loadErr != nil {
		s.log.Warn(ctx, "task collection reset", "user_id", userID, "error", loadErr)
		tasks = []models.Task{}
	}

	s.owner, s.loaded, s.tasks = userID, true, tasks

	s.log.Debug(ctx, "tasks loaded", "user_id", userID, "count", len(tasks))
	return slices.Clone(tasks), loadErr
}

func (s *TaskStore) read(ctx context.Context, userID string) ([]models.Task, error) {
	data, err := s.repo.Get(ctx, TasksKey(userID))
	if errors.Is(err, common.ErrorNotFound) {
		return []models.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}

	tasks, err := schema.DecodeTasks(data)
	if err != nil {
		return nil, fmt.Errorf("task collection: %w: %w", common.ErrCorruptedState, err)
	}
	for _, t := range tasks {
		if t.UserID != userID {
			return nil, fmt.Errorf("task %s: %w: %w", t.ID, common.ErrCorruptedState, common.ErrForeignOwner)
		}
	}
	return tasks, nil
}

// Reset forgets the loaded owner and collection. Every operation fails with
// common.ErrForeignOwner until the next Load.
func (s *TaskStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.owner, s.loaded, s.tasks = "", false, nil
}

// Add validates text and prepends a new incomplete task.
func (s *TaskStore) Add(ctx context.Context, userID, text string, recurring bool) (*models.Task, error) {
	text, err := models.NormalizeTaskText(text)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOwner(userID); err != nil {
		return nil, err
	}

	id, err := s.newID()
	if err != nil {
		return nil, err
	}
	t := models.Task{ID: id, Text: text, UserID: userID, IsRecurring: recurring}

	next := make([]models.Task, 0, len(s.tasks)+1)
	next = append(next, t)
	next = append(next, s.tasks...)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "task added", "task_id", t.ID, "recurring", recurring)
	return &t, nil
}

// AddRecurring prepends one recurring task per text, keeping the given
// order, and persists once. All texts are validated before anything changes.
func (s *TaskStore) AddRecurring(ctx context.Context, userID string, texts []string) ([]models.Task, error) {
	clean := make([]string, 0, len(texts))
	for _, text := range texts {
		text, err := models.NormalizeTaskText(text)
		if err != nil {
			return nil, err
		}
		clean = append(clean, text)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOwner(userID); err != nil {
		return nil, err
	}
	if len(clean) == 0 {
		return []models.Task{}, nil
	}

	added := make([]models.Task, 0, len(clean))
	for _, text := range clean {
		id, err := s.newID()
		if err != nil {
			return nil, err
		}
		added = append(added, models.Task{ID: id, Text: text, UserID: userID, IsRecurring: true})
	}

	next := make([]models.Task, 0, len(added)+len(s.tasks))
	next = append(next, added...)
	next = append(next, s.tasks...)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "recurring tasks added", "count", len(added))
	return slices.Clone(added), nil
}

// ToggleComplete flips the completed flag of task id. An unknown id returns
// nil, nil and writes nothing.
func (s *TaskStore) ToggleComplete(ctx context.Context, userID, id string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOwner(userID); err != nil {
		return nil, err
	}

	i := s.index(id)
	if i < 0 {
		return nil, nil
	}

	next := slices.Clone(s.tasks)
	next[i].Completed = !next[i].Completed
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	t := next[i]
	s.log.Debug(ctx, "task toggled", "task_id", t.ID, "completed", t.Completed)
	return &t, nil
}

// Remove deletes task id and returns it, or nil, nil when absent.
func (s *TaskStore) Remove(ctx context.Context, userID, id string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOwner(userID); err != nil {
		return nil, err
	}

	i := s.index(id)
	if i < 0 {
		return nil, nil
	}

	removed := s.tasks[i]
	next := slices.Delete(slices.Clone(s.tasks), i, i+1)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "task removed", "task_id", removed.ID)
	return &removed, nil
}

// List returns a copy of the collection, newest first.
func (s *TaskStore) List(userID string) ([]models.Task, error) {
	return s.snapshot(userID, nil)
}

func (s *TaskStore) ListRecurring(userID string) ([]models.Task, error) {
	return s.snapshot(userID, func(t models.Task) bool { return t.IsRecurring })
}

func (s *TaskStore) Completed(userID string) ([]models.Task, error) {
	return s.snapshot(userID, func(t models.Task) bool { return t.Completed })
}

// CompletedTexts returns the texts of completed tasks.
func (s *TaskStore) CompletedTexts(userID string) ([]string, error) {
	done, err := s.Completed(userID)
	if err != nil {
		return nil, err
	}
	return models.Texts(done), nil
}

func (s *TaskStore) snapshot(userID string, keep func(models.Task) bool) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOwner(userID); err != nil {
		return nil, err
	}
	if keep == nil {
		return slices.Clone(s.tasks), nil
	}
	return models.Filter(s.tasks, keep), nil
}

// checkOwner must be called with mu held.
func (s *TaskStore) checkOwner(userID string) error {
	if !s.loaded || s.owner != userID {
		return fmt.Errorf("user %q: %w", userID, common.ErrForeignOwner)
	}
	return nil
}

func (s *TaskStore) index(id string) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
}

// commit persists next and installs it; on failure the previous collection
// stays in place. Must be called with mu held.
func (s *TaskStore) commit(ctx context.Context, next []models.Task) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.repo.Set(ctx, TasksKey(s.owner), data); err != nil {
		s.log.Error(ctx, "persisting tasks failed, change rolled back", "user_id", s.owner, "error", err)
		return fmt.Errorf("save tasks: %w", err)
	}
	s.tasks = next
	return nil
}

// Package services contains the Dayscribe client services: the session
// store (login, register, logout, onboarding flag) and the task store
// (the current user's to-do collection). Both persist through a
// kvstore.Repository using the key layout below.
package services

import (
	"context"
	"time"
)

const (
	// UserKey holds the current session user as JSON.
	UserKey = "dayscribe-user"
	// tasksKeyPrefix is followed by the owning user's id.
	tasksKeyPrefix = "dayscribe-tasks-"
)

// TasksKey returns the storage key of userID's task collection.
func TasksKey(userID string) string {
	return tasksKeyPrefix + userID
}

// wait blocks for d or until ctx is done, whichever comes first.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

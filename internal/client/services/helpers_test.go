package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/dayscribe/internal/client/repositories/kvstore"
	"github.com/dmitrijs2005/dayscribe/internal/client/storage"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// flakyRepo wraps a repository and fails Set/Delete on demand.
type flakyRepo struct {
	kvstore.Repository
	SetErr    error
	DeleteErr error
	Sets      int
}

var errDisk = errors.New("disk full")

func (r *flakyRepo) Set(ctx context.Context, key string, value []byte) error {
	r.Sets++
	if r.SetErr != nil {
		return r.SetErr
	}
	return r.Repository.Set(ctx, key, value)
}

func (r *flakyRepo) Delete(ctx context.Context, key string) error {
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	return r.Repository.Delete(ctx, key)
}

// gatedRepo blocks the first Get after armed is set until release is closed.
type gatedRepo struct {
	kvstore.Repository
	armed   bool
	started chan struct{}
	release chan struct{}
}

func (r *gatedRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if r.armed {
		r.armed = false
		close(r.started)
		<-r.release
	}
	return r.Repository.Get(ctx, key)
}

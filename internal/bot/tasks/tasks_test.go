package tasks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/slactionbot/internal/config"
	"github.com/edgard/slactionbot/internal/database"
)

type fakeStore struct {
	database.Store

	vacuums int
	cutoff  time.Time
	err     error
}

func (f *fakeStore) RunSQLMaintenance(context.Context) error {
	f.vacuums++
	return f.err
}

func (f *fakeStore) PruneTallies(_ context.Context, before time.Time) (int64, error) {
	f.cutoff = before
	return 3, f.err
}

func newTestDeps(store database.Store) TaskDeps {
	return TaskDeps{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Store:  store,
		Config: &config.Config{Stats: config.StatsConfig{Retention: 48 * time.Hour}},
	}
}

func TestRegisterAllTasks(t *testing.T) {
	t.Parallel()

	tasks := RegisterAllTasks(newTestDeps(&fakeStore{}))
	assert.Len(t, tasks, 2)
	assert.Contains(t, tasks, TaskSQLMaintenance)
	assert.Contains(t, tasks, TaskPruneTallies)
}

func TestSQLMaintenanceTask(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	require.NoError(t, newSQLMaintenanceTask(newTestDeps(store))(context.Background()))
	assert.Equal(t, 1, store.vacuums)

	store.err = errors.New("disk I/O error")
	assert.ErrorIs(t, newSQLMaintenanceTask(newTestDeps(store))(context.Background()), store.err)
}

func TestPruneTalliesTask(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	before := time.Now().UTC().Add(-48 * time.Hour)
	require.NoError(t, newPruneTalliesTask(newTestDeps(store))(context.Background()))
	assert.WithinDuration(t, before, store.cutoff, time.Minute)

	store.err = errors.New("locked")
	assert.ErrorIs(t, newPruneTalliesTask(newTestDeps(store))(context.Background()), store.err)
}

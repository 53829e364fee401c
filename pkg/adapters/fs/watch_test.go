package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jupypod/pkg/adapters/fs"
	"github.com/aretw0/jupypod/pkg/core"
)

func waitForEvent(t *testing.T, events <-chan core.Event, timeout time.Duration) (core.Event, bool) {
	t.Helper()
	select {
	case e, ok := <-events:
		return e, ok
	case <-time.After(timeout):
		return core.Event{}, false
	}
}

func TestWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	repo := fs.NewRepository(fs.Config{Path: dir, Debounce: 20 * time.Millisecond})
	require.NoError(t, repo.Initialize(ctx))

	events, err := repo.Watch(ctx, "")
	require.NoError(t, err)
	assert.True(t, repo.State().(fs.RepositoryState).WatcherActive)

	t.Run("External Write", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "nb.ipynb"), []byte(`{"cells":[]}`), 0644))

		e, ok := waitForEvent(t, events, 2*time.Second)
		require.True(t, ok, "expected an event")
		assert.Equal(t, "nb", e.ID)
		assert.Equal(t, core.EventCreate, e.Type, "create and write collapse into one create")
	})

	t.Run("Atomic Put", func(t *testing.T) {
		require.NoError(t, repo.Put(ctx, "nb", []byte(`{"cells":[{}]}`)))

		e, ok := waitForEvent(t, events, 2*time.Second)
		require.True(t, ok)
		assert.Equal(t, "nb", e.ID, "temp files are not reported")
	})

	t.Run("Other Files Ignored", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

		_, ok := waitForEvent(t, events, 200*time.Millisecond)
		assert.False(t, ok)
	})

	t.Run("New Sub Directory", func(t *testing.T) {
		sub := filepath.Join(dir, "drafts")
		require.NoError(t, os.Mkdir(sub, 0755))
		time.Sleep(50 * time.Millisecond)
		require.NoError(t, os.WriteFile(filepath.Join(sub, "idea.ipynb"), []byte("{}"), 0644))

		e, ok := waitForEvent(t, events, 2*time.Second)
		require.True(t, ok)
		assert.Equal(t, "drafts/idea", e.ID)
	})

	cancel()
	for range events {
	}
	assert.False(t, repo.State().(fs.RepositoryState).WatcherActive)
}

func TestWatch_Pattern(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0755))
	repo := fs.NewRepository(fs.Config{Path: dir, Debounce: 20 * time.Millisecond})

	events, err := repo.Watch(ctx, "archive/*.ipynb")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.ipynb"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "archive", "old.ipynb"), []byte("{}"), 0644))

	e, ok := waitForEvent(t, events, 2*time.Second)
	require.True(t, ok)
	assert.Equal(t, "archive/old", e.ID)
}

func TestWatch_InvalidPattern(t *testing.T) {
	repo := fs.NewRepository(fs.Config{Path: t.TempDir()})
	_, err := repo.Watch(context.Background(), "[unclosed")
	assert.Error(t, err)
}

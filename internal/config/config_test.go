package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("YAML", func(t *testing.T) {
		path := writeConfig(t, "jupypod.yaml", `
adapter: bolt
store: data
log_level: debug
watch:
  pattern: "drafts/**/*.ipynb"
  debounce: 200ms
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "bolt", cfg.Adapter)
		assert.Equal(t, "data", cfg.Store)
		assert.Equal(t, defaultKey, cfg.Key, "missing fields keep their default")
		assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
		assert.Equal(t, "drafts/**/*.ipynb", cfg.Watch.Pattern)
		assert.Equal(t, 200*time.Millisecond, cfg.DebounceDuration())
	})

	t.Run("TOML", func(t *testing.T) {
		path := writeConfig(t, "jupypod.toml", `
adapter = "memory"
key = "ideas"

[watch]
debounce = "1s"
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "memory", cfg.Adapter)
		assert.Equal(t, "ideas", cfg.Key)
		assert.Equal(t, defaultPattern, cfg.Watch.Pattern)
		assert.Equal(t, time.Second, cfg.DebounceDuration())
	})

	t.Run("Unknown Adapter", func(t *testing.T) {
		_, err := Load(writeConfig(t, "jupypod.yml", "adapter: s3\n"))
		assert.ErrorContains(t, err, "unknown adapter")
	})

	t.Run("Bad Values", func(t *testing.T) {
		_, err := Load(writeConfig(t, "jupypod.yaml", "log_level: loud\nwatch:\n  debounce: soon\n"))
		require.Error(t, err)
		assert.ErrorContains(t, err, "log_level")
		assert.ErrorContains(t, err, "watch.debounce")
	})

	t.Run("Syntax Error", func(t *testing.T) {
		_, err := Load(writeConfig(t, "jupypod.toml", "adapter = \n"))
		assert.Error(t, err)
	})

	t.Run("Unsupported Extension", func(t *testing.T) {
		_, err := Load(writeConfig(t, "jupypod.ini", "adapter=fs"))
		assert.ErrorContains(t, err, "unsupported")
	})
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	cfg, path, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "jupypod.toml"), []byte(`store = "nb"`), 0644))
	cfg, path, err = LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "jupypod.toml"), path)
	assert.Equal(t, filepath.Join(dir, "nb"), cfg.StorePath(dir))
}

func TestStorePath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("/work", ".jupypod"), cfg.StorePath("/work"))
	assert.Equal(t, ".jupypod", cfg.StorePath(""))

	cfg.Store = "/abs/store"
	assert.Equal(t, "/abs/store", cfg.StorePath("/work"))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, []string{"console"}, cfg.Reporters)
	assert.Equal(t, 5, cfg.Concurrency)
	assert.False(t, cfg.GetParallel())
	assert.False(t, cfg.GetBail())
	assert.False(t, cfg.GetVerbose())
	assert.False(t, cfg.GetNoColor())
}

func TestLoadConfig(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("verbose: true\nconcurrency: 12\n"), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.True(t, cfg.GetVerbose())
		assert.Equal(t, 12, cfg.Concurrency)
		// Untouched fields keep their defaults.
		assert.Equal(t, []string{"console"}, cfg.Reporters)
	})

	t.Run("missing explicit path", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("reporters: [\n"), 0o644))

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestFindAndLoadConfig(t *testing.T) {
	t.Run("finds dotfile", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".matchspec.yaml"), []byte("bail: true\n"), 0o644))

		cfg, err := FindAndLoadConfig(dir)
		require.NoError(t, err)
		assert.True(t, cfg.GetBail())
	})

	t.Run("defaults when no file", func(t *testing.T) {
		cfg, err := FindAndLoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.Concurrency)
	})
}

func TestConfig_Merge(t *testing.T) {
	base := DefaultConfig()

	t.Run("nil other returns base", func(t *testing.T) {
		assert.Equal(t, base, base.Merge(nil))
	})

	t.Run("other takes precedence", func(t *testing.T) {
		merged := base.Merge(&Config{
			Verbose:     BoolPtr(true),
			Concurrency: 20,
			Reporters:   []string{"json", "junit"},
			NameFilter:  "simple-*",
		})

		assert.True(t, merged.GetVerbose())
		assert.Equal(t, 20, merged.Concurrency)
		assert.Equal(t, []string{"json", "junit"}, merged.Reporters)
		assert.Equal(t, "simple-*", merged.NameFilter)
		// Unset booleans do not override.
		assert.False(t, merged.GetBail())
	})

	t.Run("base is not mutated", func(t *testing.T) {
		base.Merge(&Config{Concurrency: 99})
		assert.Equal(t, 5, base.Concurrency)
	})
}

func TestConfig_RunnerConfig(t *testing.T) {
	cfg := &Config{
		Verbose:     BoolPtr(true),
		Bail:        BoolPtr(true),
		NameFilter:  "x-*",
		Parallel:    BoolPtr(true),
		Concurrency: 8,
	}

	rc := cfg.RunnerConfig()
	assert.True(t, rc.Verbose)
	assert.True(t, rc.Bail)
	assert.True(t, rc.Parallel)
	assert.Equal(t, "x-*", rc.NameFilter)
	assert.Equal(t, 8, rc.Concurrency)
}

func TestConfig_SaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.NameFilter = "saved-*"

	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "saved-*", loaded.NameFilter)
}

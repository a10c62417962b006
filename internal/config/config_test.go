package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dedene/flipboard-cli/internal/config"
	"github.com/dedene/flipboard-cli/internal/history"
)

func TestLoadMissing(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nonexistent", "config.json"))
	require.NoError(t, err)
	assert.Equal(t, &config.Config{}, cfg)
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	tr := true
	fa := false
	original := &config.Config{
		Origin:         "https://flip.example.com",
		Theme:          "dark",
		AutoCopy:       &tr,
		AutoOpen:       &fa,
		HistoryBackend: "badger",
	}

	require.NoError(t, config.Save(path, original))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, original.Origin, loaded.Origin)
	assert.Equal(t, original.Theme, loaded.Theme)
	assert.Equal(t, original.HistoryBackend, loaded.HistoryBackend)
	require.NotNil(t, loaded.AutoCopy)
	assert.True(t, *loaded.AutoCopy)
	require.NotNil(t, loaded.AutoOpen)
	assert.False(t, *loaded.AutoOpen)
	assert.Nil(t, loaded.Animate)
}

func TestLoadJSON5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	json5Content := `{
		// User preferences
		"origin": "https://flip.example.com",
		"animate": false,  // trailing comma OK
	}`

	require.NoError(t, os.WriteFile(path, []byte(json5Content), 0o644))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://flip.example.com", loaded.Origin)
	require.NotNil(t, loaded.Animate)
	assert.False(t, *loaded.Animate)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"theme", `{"theme": "neon"}`},
		{"backend", `{"history_backend": "sqlite"}`},
		{"origin", `{"origin": "not a url"}`},
		{"redis", `{"redis_url": "http://localhost:6379"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := config.Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestGetSet(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"origin", "https://flip.example.com"},
		{"theme", "light"},
		{"auto_copy", "false"},
		{"auto_open", "true"},
		{"animate", "true"},
		{"history_backend", "redis"},
		{"redis_url", "redis://localhost:6379/0"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := &config.Config{}
			require.NoError(t, cfg.Set(tt.key, tt.value))

			got, ok := cfg.Get(tt.key)
			assert.True(t, ok)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestSetValidation(t *testing.T) {
	tests := []struct {
		key   string
		value string
		errRe string
	}{
		{"theme", "sepia", "must be one of"},
		{"history_backend", "sqlite", "must be one of"},
		{"auto_copy", "yes", "must be true or false"},
		{"animate", "1", "must be true or false"},
		{"origin", "ftp://x", "invalid origin"},
		{"redis_url", "localhost:6379", "must start with redis://"},
		{"unknown_key", "foo", "unknown config key"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := &config.Config{}
			err := cfg.Set(tt.key, tt.value)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errRe)
		})
	}
}

func TestUnset(t *testing.T) {
	cfg := &config.Config{}
	require.NoError(t, cfg.Set("theme", "dark"))
	require.NoError(t, cfg.Set("animate", "false"))

	require.NoError(t, cfg.Unset("theme"))
	require.NoError(t, cfg.Unset("animate"))

	_, ok := cfg.Get("theme")
	assert.False(t, ok)
	assert.Nil(t, cfg.Animate)

	err := cfg.Unset("nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
}

func TestKnownKeys(t *testing.T) {
	expected := []string{
		"animate", "auto_copy", "auto_open",
		"history_backend", "origin", "redis_url", "theme",
	}
	assert.Equal(t, expected, config.KnownKeys())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("FLIPBOARD_ORIGIN", "https://env.example.com")
	t.Setenv("FLIPBOARD_THEME", "light")
	t.Setenv("FLIPBOARD_HISTORY_BACKEND", "")

	cfg := &config.Config{Origin: "https://file.example.com", Theme: "dark", HistoryBackend: "badger"}
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "https://env.example.com", cfg.Origin)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "badger", cfg.HistoryBackend, "empty env var leaves the file value")
}

func TestApplyEnv_Invalid(t *testing.T) {
	t.Setenv("FLIPBOARD_THEME", "neon")

	cfg := &config.Config{}
	assert.Error(t, cfg.ApplyEnv())
}

func TestApplyEnv_InvalidLeavesConfig(t *testing.T) {
	t.Setenv("FLIPBOARD_ORIGIN", "https://env.example.com")
	t.Setenv("FLIPBOARD_HISTORY_BACKEND", "bogus")

	cfg := &config.Config{Origin: "https://file.example.com", HistoryBackend: "badger"}
	want := *cfg

	err := cfg.ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HistoryBackend")
	assert.Equal(t, want, *cfg, "no partial overlay")
	assert.Equal(t, "badger", cfg.HistoryBackend)
}

func TestSave_CreatesPrivateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "flipboard")
	path := filepath.Join(dir, "config.json")

	require.NoError(t, config.Save(path, &config.Config{Theme: "dark"}))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o750), info.Mode().Perm())

	leftovers, err := filepath.Glob(filepath.Join(dir, ".tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfgPath, err := config.ConfigPath()
	require.NoError(t, err)
	assert.Contains(t, cfgPath, "flipboard")
	assert.Contains(t, cfgPath, "config.json")

	histDir, err := config.HistoryDir()
	require.NoError(t, err)
	assert.Contains(t, histDir, filepath.Join("flipboard", "history"))
}

func TestPathsDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")

	cfgPath, err := config.ConfigPath()
	require.NoError(t, err)
	assert.Contains(t, cfgPath, ".config")

	dataDir, err := config.DataDir()
	require.NoError(t, err)
	assert.Contains(t, dataDir, filepath.Join(".local", "share", "flipboard"))
}

func TestHistoryOptions(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	opts, err := (&config.Config{}).HistoryOptions()
	require.NoError(t, err)
	assert.Equal(t, history.BackendFile, opts.Backend)
	assert.Contains(t, opts.Dir, filepath.Join("history", "file"))

	opts, err = (&config.Config{HistoryBackend: "badger"}).HistoryOptions()
	require.NoError(t, err)
	assert.Contains(t, opts.Dir, filepath.Join("history", "badger"))

	opts, err = (&config.Config{HistoryBackend: "redis", RedisURL: "redis://r:6379"}).HistoryOptions()
	require.NoError(t, err)
	assert.Empty(t, opts.Dir)
	assert.Equal(t, "redis://r:6379", opts.RedisURL)
}

func TestWithConfig_FromContext(t *testing.T) {
	cfg := &config.Config{Theme: "dark"}
	ctx := config.WithConfig(context.Background(), cfg)

	got := config.FromContext(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "dark", got.Theme)

	assert.Nil(t, config.FromContext(context.Background()))
}

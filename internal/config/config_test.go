package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CINELIST_DATA_DIR", dir)

	cfg, err := LoadWith(viper.New())
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.Equal(t, "en-US", cfg.TMDB.Language)
	assert.Equal(t, 10*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, uint(2), cfg.TMDB.Retries)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.False(t, cfg.Watchlist.ScopeByMediaType)
	assert.Equal(t, filepath.Join(dir, "cinelist.db"), cfg.DBPath())
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CINELIST_DATA_DIR", dir)
	t.Setenv("TMDB_API_KEY", "from-env")

	yaml := "storage:\n  backend: file\nwatchlist:\n  scope_by_media_type: true\ntmdb:\n  language: tr-TR\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := LoadWith(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.TMDB.APIKey)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.True(t, cfg.Watchlist.ScopeByMediaType)
	assert.Equal(t, "tr-TR", cfg.TMDB.Language)
}

func TestNestedKeysFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CINELIST_DATA_DIR", dir)
	t.Setenv("CINELIST_TMDB_RETRIES", "5")
	t.Setenv("CINELIST_TMDB_TIMEOUT", "3s")
	t.Setenv("CINELIST_WATCHLIST_SCOPE_BY_MEDIA_TYPE", "true")
	t.Setenv("CINELIST_LOG_MAX_BACKUPS", "7")

	cfg, err := LoadWith(viper.New())
	require.NoError(t, err)

	assert.Equal(t, uint(5), cfg.TMDB.Retries)
	assert.Equal(t, 3*time.Second, cfg.TMDB.Timeout)
	assert.True(t, cfg.Watchlist.ScopeByMediaType)
	assert.Equal(t, 7, cfg.Log.MaxBackups)
}

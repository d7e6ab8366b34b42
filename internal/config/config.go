package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DataDir   string          `mapstructure:"data_dir"`
	TMDB      TMDBConfig      `mapstructure:"tmdb"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Watchlist WatchlistConfig `mapstructure:"watchlist"`
	Log       LogConfig       `mapstructure:"log"`
}

type TMDBConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	Language     string        `mapstructure:"language"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Retries      uint          `mapstructure:"retries"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend"` // sqlite, file
}

type WatchlistConfig struct {
	// ScopeByMediaType makes contains/remove/toggle match on (id, media type)
	// instead of the numeric id alone.
	ScopeByMediaType bool `mapstructure:"scope_by_media_type"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Load reads configuration from defaults, .env, CINELIST_* variables and
// <data_dir>/config.yaml, in increasing order of precedence for the file.
func Load() (*Config, error) {
	return LoadWith(viper.New())
}

func LoadWith(v *viper.Viper) (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	// A missing .env is the common case.
	_ = godotenv.Load()

	defaultDataDir := filepath.Join(homeDir, ".cinelist")

	v.SetDefault("data_dir", defaultDataDir)
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.image_base_url", "https://image.tmdb.org/t/p")
	v.SetDefault("tmdb.language", "en-US")
	v.SetDefault("tmdb.timeout", 10*time.Second)
	v.SetDefault("tmdb.retries", 2)
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("watchlist.scope_by_media_type", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 5)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	// Environment variable overrides
	v.SetEnvPrefix("CINELIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("data_dir", "CINELIST_DATA_DIR")
	v.BindEnv("tmdb.api_key", "CINELIST_TMDB_API_KEY", "TMDB_API_KEY")
	v.BindEnv("tmdb.language", "CINELIST_TMDB_LANGUAGE")
	v.BindEnv("storage.backend", "CINELIST_STORAGE_BACKEND")
	v.BindEnv("log.level", "CINELIST_LOG_LEVEL")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(v.GetString("data_dir"))

	// Read config file if exists (ignore error if not found)
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "cinelist.db")
}

func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "cinelist.log")
}

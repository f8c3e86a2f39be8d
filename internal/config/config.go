package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/tides/internal/kv"
	"github.com/llehouerou/tides/internal/library"
)

const (
	appName = "tides"

	defaultCatalogURL     = "https://saavn.sumit.co"
	defaultCatalogTimeout = 10
	defaultPageSize       = 20
	defaultStatusInterval = 500
	defaultLogLevel       = "info"
	defaultLogMaxSizeMB   = 10
	defaultLogMaxBackups  = 3
	defaultLogMaxAgeDays  = 28
	defaultIcons          = "unicode"
)

type Config struct {
	DataDir string `koanf:"data_dir"`

	Storage  StorageConfig  `koanf:"storage"`
	Playback PlaybackConfig `koanf:"playback"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Download DownloadConfig `koanf:"download"`
	Log      LogConfig      `koanf:"log"`

	// Last.fm scrobbling (enabled when api key and secret are set)
	Lastfm LastfmConfig `koanf:"lastfm"`

	MPRIS  MPRISConfig  `koanf:"mpris"`
	Notify NotifyConfig `koanf:"notify"`

	UI UIConfig `koanf:"ui"`
}

// StorageConfig selects the key-value backend holding the library.
type StorageConfig struct {
	Backend   string      `koanf:"backend"` // "sqlite", "bolt", "redis" or "memory"
	Path      string      `koanf:"path"`    // database file for sqlite and bolt
	KeyPrefix string      `koanf:"key_prefix"`
	Redis     RedisConfig `koanf:"redis"`
}

// RedisConfig holds the redis backend connection.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// PlaybackConfig tunes the audio bridge.
type PlaybackConfig struct {
	StatusIntervalMS int `koanf:"status_interval_ms"`
}

// CatalogConfig configures the search API client.
type CatalogConfig struct {
	BaseURL        string `koanf:"base_url"`
	TimeoutSeconds int    `koanf:"timeout_seconds"`
	PageSize       int    `koanf:"page_size"`
}

// DownloadConfig holds offline download settings.
type DownloadConfig struct {
	Dir string `koanf:"dir"`
}

// LogConfig configures the rotating log file.
type LogConfig struct {
	Level      string `koanf:"level"` // debug, info, warn or error
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
}

// LastfmConfig holds Last.fm scrobbling configuration.
type LastfmConfig struct {
	APIKey     string `koanf:"api_key"`
	APISecret  string `koanf:"api_secret"`
	SessionKey string `koanf:"session_key"`
}

// MPRISConfig toggles the D-Bus media player interface.
type MPRISConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// NotifyConfig toggles desktop notifications on track change.
type NotifyConfig struct {
	Enabled bool `koanf:"enabled"` // default: false
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	Icons string `koanf:"icons"` // "nerd", "unicode" or "none"
}

// Load reads the config files, then .env and TIDES_* environment overrides.
func Load() (*Config, error) {
	// A missing .env is not an error; existing variables are never overridden.
	_ = godotenv.Load()
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given TOML files in order (last wins), skipping
// missing ones, and applies environment overrides and defaults.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.DataDir = getEnv("TIDES_DATA_DIR", c.DataDir)
	c.Storage.Backend = getEnv("TIDES_STORAGE_BACKEND", c.Storage.Backend)
	c.Storage.Redis.Addr = getEnv("TIDES_REDIS_ADDR", c.Storage.Redis.Addr)
	c.Log.Level = getEnv("TIDES_LOG_LEVEL", c.Log.Level)
	c.UI.Icons = getEnv("TIDES_ICONS", c.UI.Icons)
	c.Catalog.BaseURL = getEnv("TIDES_CATALOG_URL", c.Catalog.BaseURL)
	c.Lastfm.APIKey = getEnv("TIDES_LASTFM_API_KEY", c.Lastfm.APIKey)
	c.Lastfm.APISecret = getEnv("TIDES_LASTFM_API_SECRET", c.Lastfm.APISecret)
	c.Lastfm.SessionKey = getEnv("TIDES_LASTFM_SESSION_KEY", c.Lastfm.SessionKey)
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = filepath.Join(xdg.DataHome, appName)
	}
	c.DataDir = expandPath(c.DataDir)

	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = kv.BackendSQLite
	}
	if c.Storage.Path == "" {
		switch c.Storage.Backend {
		case kv.BackendBolt:
			c.Storage.Path = filepath.Join(c.DataDir, appName+".bolt")
		default:
			c.Storage.Path = filepath.Join(c.DataDir, appName+".db")
		}
	}
	c.Storage.Path = expandPath(c.Storage.Path)
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = library.DefaultPrefix
	}
	if c.Storage.Redis.Addr == "" {
		c.Storage.Redis.Addr = "127.0.0.1:6379"
	}

	if c.Playback.StatusIntervalMS <= 0 {
		c.Playback.StatusIntervalMS = defaultStatusInterval
	}

	c.Catalog.BaseURL = strings.TrimSuffix(c.Catalog.BaseURL, "/")
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = defaultCatalogURL
	}
	if c.Catalog.TimeoutSeconds <= 0 {
		c.Catalog.TimeoutSeconds = defaultCatalogTimeout
	}
	if c.Catalog.PageSize <= 0 {
		c.Catalog.PageSize = defaultPageSize
	}

	if c.Download.Dir == "" {
		c.Download.Dir = filepath.Join(c.DataDir, "downloads")
	}
	c.Download.Dir = expandPath(c.Download.Dir)

	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(c.DataDir, appName+".log")
	}
	c.Log.File = expandPath(c.Log.File)
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = defaultLogMaxBackups
	}
	if c.Log.MaxAgeDays <= 0 {
		c.Log.MaxAgeDays = defaultLogMaxAgeDays
	}

	c.UI.Icons = strings.ToLower(strings.TrimSpace(c.UI.Icons))
	if c.UI.Icons == "" {
		c.UI.Icons = defaultIcons
	}
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/tides/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasLastfmConfig returns true if Last.fm scrobbling is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}

// MPRISEnabled reports whether the MPRIS adapter should start.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS.Enabled == nil || *c.MPRIS.Enabled
}

// StatusInterval is the bridge polling period.
func (c *Config) StatusInterval() time.Duration {
	return time.Duration(c.Playback.StatusIntervalMS) * time.Millisecond
}

// CatalogTimeout is the per-request catalog timeout.
func (c *Config) CatalogTimeout() time.Duration {
	return time.Duration(c.Catalog.TimeoutSeconds) * time.Second
}

// StoreOptions converts the storage section for kv.Open.
func (c *Config) StoreOptions() kv.Options {
	return kv.Options{
		Backend: c.Storage.Backend,
		Path:    c.Storage.Path,
		Redis: kv.RedisOptions{
			Addr:     c.Storage.Redis.Addr,
			Password: c.Storage.Redis.Password,
			DB:       c.Storage.Redis.DB,
		},
	}
}

// String summarises the effective settings for logs, without secrets.
func (c *Config) String() string {
	return "data_dir=" + c.DataDir +
		" storage=" + c.Storage.Backend +
		" catalog=" + c.Catalog.BaseURL +
		" page_size=" + strconv.Itoa(c.Catalog.PageSize) +
		" lastfm=" + strconv.FormatBool(c.HasLastfmConfig())
}

package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const appName = "romshelf"

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
	Search  SearchConfig  `mapstructure:"search" yaml:"search"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ServerConfig holds archive API configuration
type ServerConfig struct {
	URL     string        `mapstructure:"url" yaml:"url"` // API root including /api/v1
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme   string `mapstructure:"theme" yaml:"theme"` // "dark" or "light"
	Sidebar bool   `mapstructure:"sidebar" yaml:"sidebar"`
}

// SearchConfig holds command palette configuration
type SearchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
	MinQuery int           `mapstructure:"min_query" yaml:"min_query"`
	PageSize int           `mapstructure:"page_size" yaml:"page_size"`
}

// CacheConfig holds query cache configuration
type CacheConfig struct {
	Dir            string        `mapstructure:"dir" yaml:"dir"`
	PersistLookups bool          `mapstructure:"persist_lookups" yaml:"persist_lookups"`
	StaleAfter     time.Duration `mapstructure:"stale_after" yaml:"stale_after"`
	HealthInterval time.Duration `mapstructure:"health_interval" yaml:"health_interval"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File   string `mapstructure:"file" yaml:"file"`
	Level  string `mapstructure:"level" yaml:"level"`
	Remote bool   `mapstructure:"remote" yaml:"remote"` // forward warnings and errors to the archive
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     "http://localhost:8000/api/v1",
			Timeout: 15 * time.Second,
		},
		UI: UIConfig{
			Theme:   "dark",
			Sidebar: true,
		},
		Search: SearchConfig{
			Debounce: 300 * time.Millisecond,
			MinQuery: 2,
			PageSize: 5,
		},
		Cache: CacheConfig{
			Dir:            defaultCachePath(),
			PersistLookups: true,
			StaleAfter:     30 * time.Second,
			HealthInterval: 30 * time.Second,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName, appName+".log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName, appName+".log")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName, "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName, "cache")
	}
}

// setDefaults registers every key so environment overrides resolve even
// when no config file mentions them
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.timeout", cfg.Server.Timeout)
	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("ui.sidebar", cfg.UI.Sidebar)
	v.SetDefault("search.debounce", cfg.Search.Debounce)
	v.SetDefault("search.min_query", cfg.Search.MinQuery)
	v.SetDefault("search.page_size", cfg.Search.PageSize)
	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("cache.persist_lookups", cfg.Cache.PersistLookups)
	v.SetDefault("cache.stale_after", cfg.Cache.StaleAfter)
	v.SetDefault("cache.health_interval", cfg.Cache.HealthInterval)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.remote", cfg.Logging.Remote)
}

// LoadConfig loads configuration from file and environment. configDir
// overrides the OS default location when non-empty.
func LoadConfig(configDir string) (*Config, error) {
	cfg := DefaultConfig()
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	setDefaults(v, cfg)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Environment variable overrides, e.g. ROMSHELF_SERVER_URL
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize clamps values the rest of the program relies on
func (c *Config) normalize() {
	c.Server.URL = strings.TrimRight(c.Server.URL, "/")
	if c.UI.Theme != "light" {
		c.UI.Theme = "dark"
	}
	if c.Search.MinQuery < 1 {
		c.Search.MinQuery = 2
	}
	if c.Search.PageSize < 1 {
		c.Search.PageSize = 5
	}
	if c.Search.Debounce < 0 {
		c.Search.Debounce = 0
	}
}

// SaveConfig writes the configuration to config.yaml in configDir (or the
// OS default when empty)
func SaveConfig(cfg *Config, configDir string) error {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("server.url", cfg.Server.URL)
	v.Set("server.timeout", cfg.Server.Timeout.String())
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.sidebar", cfg.UI.Sidebar)
	v.Set("search.debounce", cfg.Search.Debounce.String())
	v.Set("search.min_query", cfg.Search.MinQuery)
	v.Set("search.page_size", cfg.Search.PageSize)
	v.Set("cache.dir", cfg.Cache.Dir)
	v.Set("cache.persist_lookups", cfg.Cache.PersistLookups)
	v.Set("cache.stale_after", cfg.Cache.StaleAfter.String())
	v.Set("cache.health_interval", cfg.Cache.HealthInterval.String())
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.remote", cfg.Logging.Remote)

	configFile := filepath.Join(configDir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// YAML renders the effective configuration
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// ClearCache removes the on-disk cache directory
func ClearCache(cacheDir string) error {
	if cacheDir == "" {
		cacheDir = defaultCachePath()
	}
	if err := os.RemoveAll(cacheDir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

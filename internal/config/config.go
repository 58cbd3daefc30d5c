// Package config provides configuration management for akina-halo using Viper.
// It supports configuration from files, environment variables, and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Default configuration values.
const (
	defaultServerPort        = 8090
	defaultServerTimeout     = 30 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
	defaultMaxOpenConns      = 10
	defaultMaxIdleConns      = 5
	defaultConnMaxIdleTime   = 30 * time.Minute
	defaultSaveDelay         = time.Second
	defaultFileSaveDelay     = 500 * time.Millisecond
	defaultPreviewDelay      = time.Second
	defaultMaxFileSize       = 10 * Megabyte
	defaultRemoteTimeout     = 30 * time.Second
	defaultRemoteRetries     = 2
	defaultAutosaveSchedule  = "*/5 * * * * *"
	defaultSnapshotRetention = 7 * 24 * time.Hour
	defaultNotifyBuffer      = 200
)

// Content provider names accepted by theme.provider.
const (
	ProviderFixture   = "fixture"
	ProviderRemote    = "remote"
	ProviderDirectory = "directory"
	ProviderDatabase  = "database"
)

// Config holds all configuration for the application.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Theme         ThemeConfig         `mapstructure:"theme"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// DatabaseConfig holds database connection configuration.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // sqlite, postgres, mysql
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	LogLevel        string        `mapstructure:"log_level"` // silent, error, warn, info
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level     string `mapstructure:"level"`  // debug, info, warn, error
	Format    string `mapstructure:"format"` // json, text
	AddSource bool   `mapstructure:"add_source"`
}

// ThemeConfig holds the theme development session configuration.
type ThemeConfig struct {
	// Name is the theme the session edits. Used in preview URLs until a config is saved.
	Name string `mapstructure:"name"`
	// Provider selects where file content comes from: fixture, remote, directory or database.
	Provider string `mapstructure:"provider"`
	// WorkspaceDir is the theme root used by the directory provider.
	WorkspaceDir string `mapstructure:"workspace_dir"`
	// AssetsDir holds uploaded logos and their metadata.
	AssetsDir string       `mapstructure:"assets_dir"`
	Remote    RemoteConfig `mapstructure:"remote"`

	// Simulated backend latency for the action layer. Zero disables the wait.
	SaveDelay     time.Duration `mapstructure:"save_delay"`
	FileSaveDelay time.Duration `mapstructure:"file_save_delay"`
	PreviewDelay  time.Duration `mapstructure:"preview_delay"`

	// MaxFileSize caps saved file content and uploaded logos.
	// Supports human-readable values like "10MB".
	MaxFileSize ByteSize `mapstructure:"max_file_size"`

	Autosave AutosaveConfig `mapstructure:"autosave"`

	// Watch enables fsnotify change events for the directory provider.
	Watch bool `mapstructure:"watch"`

	// PlatformVersion is checked against spec.requires in theme.yaml.
	PlatformVersion string `mapstructure:"platform_version"`
}

// RemoteConfig configures the HTTP content provider.
type RemoteConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retries int           `mapstructure:"retries"`
}

// AutosaveConfig configures periodic snapshots of dirty files.
type AutosaveConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"` // 6-field cron expression
	// Retention prunes snapshots older than this. Zero keeps them all.
	Retention time.Duration `mapstructure:"retention"`
}

// NotificationsConfig holds notification buffering and localisation settings.
type NotificationsConfig struct {
	BufferSize int    `mapstructure:"buffer_size"`
	Locale     string `mapstructure:"locale"` // en, zh
}

// Load reads configuration from file and environment variables.
// Environment variables take precedence over file configuration.
// Environment variables are prefixed with AKINA_ and use underscores for nesting.
// Example: AKINA_SERVER_PORT=8090.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/akina-halo")
		v.AddConfigPath("$HOME/.akina-halo")
	}

	v.SetEnvPrefix("AKINA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return Decode(v)
}

// Decode unmarshals and validates the configuration held by v.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.read_timeout", defaultServerTimeout)
	v.SetDefault("server.write_timeout", defaultServerTimeout)
	v.SetDefault("server.shutdown_timeout", defaultShutdownTimeout)
	v.SetDefault("server.cors_origins", []string{"*"})

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "akina-halo.db")
	v.SetDefault("database.max_open_conns", defaultMaxOpenConns)
	v.SetDefault("database.max_idle_conns", defaultMaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.conn_max_idle_time", defaultConnMaxIdleTime)
	v.SetDefault("database.log_level", "warn")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.add_source", false)

	// Theme defaults
	v.SetDefault("theme.name", "akina-zzz")
	v.SetDefault("theme.provider", ProviderFixture)
	v.SetDefault("theme.workspace_dir", "./theme")
	v.SetDefault("theme.assets_dir", "./data/assets")
	v.SetDefault("theme.remote.base_url", "")
	v.SetDefault("theme.remote.token", "")
	v.SetDefault("theme.remote.timeout", defaultRemoteTimeout)
	v.SetDefault("theme.remote.retries", defaultRemoteRetries)
	v.SetDefault("theme.save_delay", defaultSaveDelay)
	v.SetDefault("theme.file_save_delay", defaultFileSaveDelay)
	v.SetDefault("theme.preview_delay", defaultPreviewDelay)
	v.SetDefault("theme.max_file_size", int64(defaultMaxFileSize))
	v.SetDefault("theme.autosave.enabled", false)
	v.SetDefault("theme.autosave.schedule", defaultAutosaveSchedule)
	v.SetDefault("theme.autosave.retention", defaultSnapshotRetention)
	v.SetDefault("theme.watch", true)
	v.SetDefault("theme.platform_version", "2.20.0")

	// Notification defaults
	v.SetDefault("notifications.buffer_size", defaultNotifyBuffer)
	v.SetDefault("notifications.locale", "zh")
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	const maxPort = 65535
	if c.Server.Port < 1 || c.Server.Port > maxPort {
		return fmt.Errorf("server.port must be between 1 and %d", maxPort)
	}

	validDrivers := map[string]bool{"sqlite": true, "postgres": true, "mysql": true}
	if !validDrivers[c.Database.Driver] {
		return fmt.Errorf("database.driver must be one of: sqlite, postgres, mysql")
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	if c.Theme.Name == "" {
		return fmt.Errorf("theme.name is required")
	}
	switch c.Theme.Provider {
	case ProviderFixture, ProviderDatabase:
	case ProviderRemote:
		if c.Theme.Remote.BaseURL == "" {
			return fmt.Errorf("theme.remote.base_url is required when theme.provider is remote")
		}
	case ProviderDirectory:
		if c.Theme.WorkspaceDir == "" {
			return fmt.Errorf("theme.workspace_dir is required when theme.provider is directory")
		}
	default:
		return fmt.Errorf("theme.provider must be one of: fixture, remote, directory, database")
	}
	if c.Theme.SaveDelay < 0 || c.Theme.FileSaveDelay < 0 || c.Theme.PreviewDelay < 0 {
		return fmt.Errorf("theme delays must not be negative")
	}
	if c.Theme.MaxFileSize <= 0 {
		return fmt.Errorf("theme.max_file_size must be positive")
	}
	if c.Theme.Autosave.Enabled && c.Theme.Autosave.Schedule == "" {
		return fmt.Errorf("theme.autosave.schedule is required when autosave is enabled")
	}

	if c.Notifications.BufferSize < 1 {
		return fmt.Errorf("notifications.buffer_size must be at least 1")
	}

	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

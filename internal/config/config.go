package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
}

// APIConfig locates the vehicle backend.
type APIConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	ResourcePath string        `mapstructure:"resource_path"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// SessionConfig holds the persisted identity location. Empty means the user
// config dir.
type SessionConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	NoticeTTL   time.Duration `mapstructure:"notice_ttl"`
	ActiveSince int           `mapstructure:"active_since"`
}

// LogConfig holds the log file location. Empty discards logs.
type LogConfig struct {
	Path string `mapstructure:"path"`
}

// Path is the config file location: $VEHICLEDESK_CONFIG or
// ~/.config/vehicledesk/config.toml.
func Path() string {
	if p := os.Getenv("VEHICLEDESK_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "vehicledesk", "config.toml")
}

// Load reads configuration from .env, file and env. Env var overrides use
// prefix VEHICLEDESK_.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	// default values
	v.SetDefault("api.base_url", "http://127.0.0.1:8000")
	v.SetDefault("api.resource_path", "/vehicles")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("session.path", "")
	v.SetDefault("ui.notice_ttl", "5s")
	v.SetDefault("ui.active_since", 2020)
	v.SetDefault("log.path", "")

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("VEHICLEDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing file is fine; a broken one is not
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the values a client cannot start without.
func (c Config) Validate() error {
	if err := ValidateBaseURL(c.API.BaseURL); err != nil {
		return err
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if c.UI.NoticeTTL <= 0 {
		return fmt.Errorf("ui.notice_ttl must be positive")
	}
	return nil
}

// ValidateBaseURL requires an absolute http(s) URL.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url %q must be an http(s) URL with a host", raw)
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. The settings panel uses it to persist the backend URL.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.resource_path", cfg.API.ResourcePath)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("session.path", cfg.Session.Path)
	v.Set("ui.notice_ttl", cfg.UI.NoticeTTL.String())
	v.Set("ui.active_since", cfg.UI.ActiveSince)
	v.Set("log.path", cfg.Log.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

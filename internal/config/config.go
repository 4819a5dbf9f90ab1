// Package config loads tally settings from a TOML file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/theirongolddev/tally/internal/digest"
)

// Config holds all tally configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Storage    StorageConfig    `toml:"storage"`
	Auth       AuthConfig       `toml:"auth"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Currency string `toml:"currency" env:"TALLY_CURRENCY"`
}

// StorageConfig locates the ledger database.
type StorageConfig struct {
	DBPath string `toml:"db_path" env:"TALLY_DB_PATH"`
}

// AuthConfig controls password hashing and saved sessions.
type AuthConfig struct {
	Digest       string `toml:"digest" env:"TALLY_DIGEST"`
	SessionHours int    `toml:"session_hours" env:"TALLY_SESSION_HOURS"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme      string `toml:"theme" env:"TALLY_THEME"`
	NoColor    bool   `toml:"no_color"`
	Accessible bool   `toml:"accessible"`
}

// LogConfig sets the diagnostic log level.
type LogConfig struct {
	Level string `toml:"level" env:"TALLY_LOG_LEVEL"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency: "$",
		},
		Storage: StorageConfig{
			DBPath: filepath.Join(DataDir(), "tally.db"),
		},
		Auth: AuthConfig{
			Digest:       digest.Default,
			SessionHours: 12,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tally")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tally")
}

// ConfigPath returns the full path to the default config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the database.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "tally")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "tally")
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// LoadFile reads the config file at path (ConfigPath when empty) over the
// defaults. A missing file yields the defaults. Environment variables are
// not consulted, so the result is safe to write back with Save.
func LoadFile(path string) (Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// Load is LoadFile followed by the TALLY_* environment overrides.
// Unset variables keep the file's value.
func Load(path string) (Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// Save writes the config to path (ConfigPath when empty).
func Save(path string, cfg Config) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists at path (ConfigPath when empty).
func Exists(path string) bool {
	if path == "" {
		path = ConfigPath()
	}
	_, err := os.Stat(path)
	return err == nil
}

// Validate reports every invalid setting in one error.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Storage.DBPath) == "" {
		problems = append(problems, "storage.db_path cannot be empty")
	}
	if _, err := digest.Lookup(c.Auth.Digest); err != nil {
		problems = append(problems, fmt.Sprintf("auth.digest %q: must be one of %v", c.Auth.Digest, digest.Names()))
	}
	if c.Auth.SessionHours <= 0 {
		problems = append(problems, fmt.Sprintf("auth.session_hours %d: must be positive", c.Auth.SessionHours))
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q: must be debug, info, warn or error", c.Log.Level))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// SessionTTL is how long a saved login stays valid.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.Auth.SessionHours) * time.Hour
}

// SessionDir is where saved logins live. It sits next to the database so a
// token never outlives or crosses over to a different ledger.
func (c Config) SessionDir() string {
	return filepath.Join(filepath.Dir(c.Storage.DBPath), "session")
}

// ABOUTME: Diary configuration management with backend selection.
// ABOUTME: Reads the JSON config file, then lets .env and DIARY_* variables override it.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/diary/internal/storage"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Backend names accepted in config and on the command line.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Environment variables that override the config file.
const (
	EnvBackend  = "DIARY_BACKEND"
	EnvDataDir  = "DIARY_DATA_DIR"
	EnvLogLevel = "DIARY_LOG_LEVEL"
)

// Config stores diary tool configuration.
type Config struct {
	// Backend selects the storage backend: "json" (default) or "sqlite".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// JSON puts diary.json here, SQLite puts diary.db here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/diary.
	DataDir string `json:"data_dir,omitempty"`

	// LogLevel is the zap level for diagnostics on stderr. Defaults to "warn".
	LogLevel string `json:"log_level,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "json".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendJSON
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel parses LogLevel, defaulting to warn.
func (c *Config) GetLogLevel() (zapcore.Level, error) {
	if c.LogLevel == "" {
		return zapcore.WarnLevel, nil
	}
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.WarnLevel, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// BackendPath returns where the named backend keeps its data.
func (c *Config) BackendPath(backend string) (string, error) {
	dataDir := c.GetDataDir()
	switch backend {
	case BackendJSON:
		return filepath.Join(dataDir, "diary.json"), nil
	case BackendSQLite:
		return filepath.Join(dataDir, "diary.db"), nil
	default:
		return "", fmt.Errorf("unknown backend: %q", backend)
	}
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return c.OpenBackend(c.GetBackend())
}

// OpenBackend opens the named backend in the configured data directory.
func (c *Config) OpenBackend(backend string) (storage.Repository, error) {
	path, err := c.BackendPath(backend)
	if err != nil {
		return nil, err
	}

	switch backend {
	case BackendSQLite:
		return storage.Open(path)
	default:
		return storage.OpenFile(path)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "diary", "config.json")
}

// Load reads config from disk and applies environment overrides.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := loadFile()
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func loadFile() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyEnv overrides fields with any DIARY_* variables that are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Package config loads tada settings.
//
// Precedence, lowest first: built-in defaults, the YAML config file
// (~/.tada/config.yaml unless a path is given), TADA_* environment variables.
// Command-line flags are applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL    = "http://localhost:5000"
	defaultListenAddr = ":5000"
	defaultDBPath     = "todos.sqlite"
	defaultLogLevel   = "info"
	defaultTheme      = "classic"
)

// Config holds every tunable value.
type Config struct {
	// BaseURL is the root of the collection server; requests go to BaseURL + /api/todo.
	// Env: TADA_BASE_URL
	BaseURL string `yaml:"base_url"`

	// LogLevel controls zerolog verbosity.
	// Env: TADA_LOG_LEVEL
	LogLevel string `yaml:"log_level"`

	// DevMode switches logs to the human-friendly console writer.
	// Env: TADA_DEV_MODE
	DevMode bool `yaml:"dev_mode"`

	// LogFile receives logs while the TUI owns the terminal.
	// Env: TADA_LOG_FILE
	LogFile string `yaml:"log_file"`

	// Theme is one of classic, neon, mono.
	// Env: TADA_THEME
	Theme string `yaml:"theme"`

	// ListenAddr is where `todo serve` binds.
	// Env: TADA_LISTEN_ADDR
	ListenAddr string `yaml:"listen_addr"`

	// DBPath is the SQLite file used by `todo serve`.
	// Env: TADA_DB_PATH
	DBPath string `yaml:"db_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	logFile := "tada.log"
	if dir, err := Dir(); err == nil {
		logFile = filepath.Join(dir, "tada.log")
	}
	return Config{
		BaseURL:    defaultBaseURL,
		LogLevel:   defaultLogLevel,
		LogFile:    logFile,
		Theme:      defaultTheme,
		ListenAddr: defaultListenAddr,
		DBPath:     defaultDBPath,
	}
}

// Dir is the per-user settings directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".tada"), nil
}

// Load builds the configuration. An empty path means the default file,
// which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		dir, err := Dir()
		if err == nil {
			path = filepath.Join(dir, "config.yaml")
		}
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate normalizes and checks the configuration.
func (c *Config) Validate() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return errors.New("config: base_url is required")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("config: base_url must be http(s): %q", c.BaseURL)
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	switch c.Theme {
	case "":
		c.Theme = defaultTheme
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("config: unknown theme %q", c.Theme)
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.BaseURL = envOrDefault("TADA_BASE_URL", cfg.BaseURL)
	cfg.LogLevel = envOrDefault("TADA_LOG_LEVEL", cfg.LogLevel)
	cfg.DevMode = envBool("TADA_DEV_MODE", cfg.DevMode)
	cfg.LogFile = envOrDefault("TADA_LOG_FILE", cfg.LogFile)
	cfg.Theme = envOrDefault("TADA_THEME", cfg.Theme)
	cfg.ListenAddr = envOrDefault("TADA_LISTEN_ADDR", cfg.ListenAddr)
	cfg.DBPath = envOrDefault("TADA_DB_PATH", cfg.DBPath)
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// envBool accepts anything strconv.ParseBool does plus yes/no/on/off.
func envBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		switch strings.ToLower(v) {
		case "yes", "on":
			return true
		case "no", "off":
			return false
		}
		return defaultVal
	}
	return b
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIBaseURL = "http://localhost:8080"
	homeDirName       = ".lostfound"
	sessionFileName   = "session.json"
	logFileName       = "lostfound.log"
)

type Config struct {
	API  APIConfig
	Home string // directory holding the session file and default log
	Log  LogConfig
	UI   UIConfig
}

type APIConfig struct {
	BaseURL string
}

type LogConfig struct {
	Level string
	File  string // path, or "stderr"
}

type UIConfig struct {
	Theme string
}

// Load reads .env (when present) and the LOSTFOUND_* environment.
func Load() (*Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	home := getEnv("LOSTFOUND_HOME", "")
	if home == "" {
		uh, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("home: %w", err)
		}
		home = filepath.Join(uh, homeDirName)
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnv("LOSTFOUND_API_BASE_URL", DefaultAPIBaseURL),
		},
		Home: home,
		Log: LogConfig{
			Level: strings.ToLower(getEnv("LOSTFOUND_LOG_LEVEL", "info")),
			File:  getEnv("LOSTFOUND_LOG_FILE", filepath.Join(home, logFileName)),
		},
		UI: UIConfig{
			Theme: getEnv("LOSTFOUND_THEME", "classic"),
		},
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetBaseURL applies a command-line override and re-validates.
func (c *Config) SetBaseURL(raw string) error {
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(raw), "/")
	return c.Validate()
}

// SessionPath is where the session user is persisted.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Home, sessionFileName)
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("LOSTFOUND_API_BASE_URL is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("LOSTFOUND_API_BASE_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("LOSTFOUND_API_BASE_URL must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOSTFOUND_LOG_LEVEL: unknown level %q", c.Log.Level)
	}
	if c.Home == "" {
		return fmt.Errorf("LOSTFOUND_HOME is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

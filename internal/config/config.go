package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"zoomdocs/internal/utils"
)

// Config holds the runtime configuration of the client core. Values come from
// the environment, optionally seeded from a .env file at the project root.
type Config struct {
	APIBaseURL string
	APIKey     string
	APITimeout time.Duration

	DBPath  string
	LogPath string
	Prod    bool
}

// Load reads configuration from the environment. A missing .env file is not
// an error; missing API settings are, since the client is useless without them.
func Load() (*Config, error) {
	_ = utils.LoadEnv()

	cfg := &Config{
		APIBaseURL: os.Getenv("ZOOMDOCS_API_BASE_URL"),
		APIKey:     os.Getenv("ZOOMDOCS_API_KEY"),
		APITimeout: 30 * time.Second,
		DBPath:     os.Getenv("ZOOMDOCS_DB_PATH"),
		LogPath:    os.Getenv("ZOOMDOCS_LOG_PATH"),
		Prod:       os.Getenv("ZOOMDOCS_ENV") == "prod",
	}

	if raw := os.Getenv("ZOOMDOCS_API_TIMEOUT_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid ZOOMDOCS_API_TIMEOUT_SECONDS: %q", raw)
		}
		cfg.APITimeout = time.Duration(secs) * time.Second
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("ZOOMDOCS_API_BASE_URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ZOOMDOCS_API_KEY is required")
	}
	if cfg.LogPath == "" {
		cfg.LogPath = "zoomdocs.log"
	}
	return cfg, nil
}

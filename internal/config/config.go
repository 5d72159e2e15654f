// Package config loads client configuration from a .env file and the
// environment, with CLI flags layered on top by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the client needs at boot.
type Config struct {
	APIURL      string        // backend base URL
	StateDir    string        // local-storage directory
	HTTPTimeout time.Duration // per-request timeout
	ViaCEPURL   string        // CEP lookup base, empty means the public host
}

// Defaults mirror a local development backend.
const (
	defaultAPIURL  = "http://localhost:8080"
	defaultTimeout = 30 * time.Second
)

// DefaultStateDir is XDG_CONFIG_HOME/teletela, falling back to
// ~/.config/teletela.
func DefaultStateDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "teletela")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "teletela")
}

// Load reads .env (when present) then the environment.
func Load() (Config, error) {
	_ = godotenv.Load() // missing .env is fine

	cfg := Config{
		APIURL:      getenv("TELETELA_API_URL", defaultAPIURL),
		StateDir:    getenv("TELETELA_STATE_DIR", DefaultStateDir()),
		HTTPTimeout: defaultTimeout,
		ViaCEPURL:   os.Getenv("TELETELA_VIACEP_URL"),
	}
	if v := os.Getenv("TELETELA_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: TELETELA_HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable keys understood by the server.
const (
	EnvCredentialsFile = "GOOGLE_CREDENTIALS_FILE"
	EnvTokenFile       = "GOOGLE_TOKEN_FILE"
	EnvMetricsEnabled  = "METRICS_ENABLED"
	EnvMetricsAddr     = "METRICS_ADDR"
)

// Config holds the process configuration resolved from the environment.
type Config struct {
	// CredentialsFile is the path to the Google OAuth client JSON
	// (client id, client secret, redirect URIs).
	CredentialsFile string

	// TokenFile is the path to the persisted OAuth token JSON
	// (access token, refresh token, expiry).
	TokenFile string

	// MetricsEnabled determines whether the Prometheus metrics server runs.
	MetricsEnabled bool

	// MetricsAddr is the listen address for the metrics server.
	MetricsAddr string
}

// Load resolves the configuration from a .env file (if present) and the
// process environment. Environment variables win over .env entries, which
// is godotenv's default behavior.
func Load() Config {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	cfg := Config{
		CredentialsFile: os.Getenv(EnvCredentialsFile),
		TokenFile:       os.Getenv(EnvTokenFile),
		MetricsAddr:     os.Getenv(EnvMetricsAddr),
	}

	if cfg.CredentialsFile == "" {
		cfg.CredentialsFile = filepath.Join(configDir(), "credentials.json")
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = filepath.Join(configDir(), "token.json")
	}
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = ":9090"
	}
	if v, err := strconv.ParseBool(os.Getenv(EnvMetricsEnabled)); err == nil {
		cfg.MetricsEnabled = v
	}

	return cfg
}

// configDir returns the default directory for credential files.
func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "deskmcp")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "deskmcp")
}

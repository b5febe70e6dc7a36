// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"
)

// MinSecretKeyLength is the shortest accepted session-signing secret, in bytes.
const MinSecretKeyLength = 32

// Config holds runtime settings for the TaskTracker server.
//
// Fields:
//   - HTTPAddr: bind address for the JSON API.
//   - GRPCAddr: bind address for the gRPC health endpoint; empty disables it.
//   - DatabaseDSN: SQLite path/URI, or a postgres:// URL (pgx).
//   - SecretKey: HMAC secret for signing session cookies (HS256). Required.
//   - SessionTTL: lifetime of a session; renewed when half of it has elapsed.
//   - CookieSecure: sets the Secure attribute on the session cookie.
//   - ShutdownTimeout: how long in-flight requests may run after a stop signal.
type Config struct {
	HTTPAddr        string
	GRPCAddr        string
	DatabaseDSN     string
	SecretKey       string
	SessionTTL      time.Duration
	CookieSecure    bool
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with development defaults.
// There is deliberately no default SecretKey: it must be configured.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.GRPCAddr = ":50051"
	c.DatabaseDSN = "file:tasktracker.db"
	c.SecretKey = ""
	c.SessionTTL = 24 * time.Hour
	c.CookieSecure = false
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports the first setting that prevents the server from starting.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return errors.New("http address is required")
	}
	if c.DatabaseDSN == "" {
		return errors.New("database DSN is required")
	}
	if c.SecretKey == "" {
		return errors.New("secret key is required (set SECRET_KEY, -s or secret_key)")
	}
	if len(c.SecretKey) < MinSecretKeyLength {
		return fmt.Errorf("secret key must be at least %d bytes, got %d", MinSecretKeyLength, len(c.SecretKey))
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL)
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown timeout must not be negative, got %s", c.ShutdownTimeout)
	}
	return nil
}

package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envNames = []string{
	"HTTP_ADDR", "GRPC_ADDR", "DATABASE_DSN", "SECRET_KEY",
	"SESSION_TTL", "SHUTDOWN_TIMEOUT", "COOKIE_SECURE",
}

// clearEnv unsets every variable parseEnv reads and restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range envNames {
		if v, ok := os.LookupEnv(name); ok {
			require.NoError(t, os.Unsetenv(name))
			t.Cleanup(func() { _ = os.Setenv(name, v) })
		}
	}
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"testbin"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, ":50051", c.GRPCAddr)
	assert.Equal(t, "file:tasktracker.db", c.DatabaseDSN)
	assert.Empty(t, c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.SessionTTL)
	assert.False(t, c.CookieSecure)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	clearEnv(t)
	withArgs(t)

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, "file:tasktracker.db", c.DatabaseDSN)
	assert.Empty(t, c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.SessionTTL)
}

func TestLoadConfig_Precedence(t *testing.T) {
	clearEnv(t)

	path := writeTempJSON(t, "", "", map[string]any{
		"http_addr":    ":7000",
		"database_dsn": "file:json.db",
		"secret_key":   "json-secret",
		"session_ttl":  "2h",
	})

	t.Setenv("DATABASE_DSN", "file:env.db")
	t.Setenv("SECRET_KEY", "env-secret")
	withArgs(t, "-c", path, "-s", "flag-secret")

	c := LoadConfig()

	assert.Equal(t, ":7000", c.HTTPAddr, "json overrides default")
	assert.Equal(t, "file:env.db", c.DatabaseDSN, "env overrides json")
	assert.Equal(t, "flag-secret", c.SecretKey, "flag overrides env")
	assert.Equal(t, 2*time.Hour, c.SessionTTL)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.LoadDefaults()
		c.SecretKey = strings.Repeat("k", MinSecretKeyLength)
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "ok", mutate: func(c *Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.SecretKey = "" }, wantErr: "secret key is required"},
		{name: "short secret", mutate: func(c *Config) { c.SecretKey = "dev-secret-key-12345" }, wantErr: "at least 32 bytes"},
		{name: "zero ttl", mutate: func(c *Config) { c.SessionTTL = 0 }, wantErr: "session ttl"},
		{name: "empty http addr", mutate: func(c *Config) { c.HTTPAddr = "" }, wantErr: "http address"},
		{name: "empty dsn", mutate: func(c *Config) { c.DatabaseDSN = "" }, wantErr: "database DSN"},
		{name: "negative shutdown", mutate: func(c *Config) { c.ShutdownTimeout = -time.Second }, wantErr: "shutdown timeout"},
		{name: "grpc may be disabled", mutate: func(c *Config) { c.GRPCAddr = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

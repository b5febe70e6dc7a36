package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config with environment variables that are set.
//
//	HTTP_ADDR, GRPC_ADDR, DATABASE_DSN, SECRET_KEY  strings
//	SESSION_TTL, SHUTDOWN_TIMEOUT                   Go durations ("24h", "10s")
//	COOKIE_SECURE                                   boolean ("true", "1")
//
// Malformed values panic, like malformed JSON files.
func parseEnv(config *Config) {
	lookupString("HTTP_ADDR", &config.HTTPAddr)
	lookupString("GRPC_ADDR", &config.GRPCAddr)
	lookupString("DATABASE_DSN", &config.DatabaseDSN)
	lookupString("SECRET_KEY", &config.SecretKey)
	lookupDuration("SESSION_TTL", &config.SessionTTL)
	lookupDuration("SHUTDOWN_TIMEOUT", &config.ShutdownTimeout)

	if v, ok := os.LookupEnv("COOKIE_SECURE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Errorf("COOKIE_SECURE: %w", err))
		}
		config.CookieSecure = b
	}
}

func lookupString(name string, dst *string) {
	if v, ok := os.LookupEnv(name); ok {
		*dst = v
	}
}

func lookupDuration(name string, dst *time.Duration) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	*dst = d
}

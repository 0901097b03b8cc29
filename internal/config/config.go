// Package config loads application configuration from environment
// variables. Required values are enforced at startup; optional knobs
// fall back to defaults that work for local development.
package config

import (
	"log"
	"os"
	"time"
)

// Config holds the core runtime settings. Each field corresponds to an
// environment variable.
type Config struct {
	Env       string        // APP_ENV: dev, test or prod
	Port      string        // APP_PORT: HTTP port to listen on
	DBUser    string        // DB_USER
	DBPass    string        // DB_PASS (optional)
	DBHost    string        // DB_HOST
	DBPort    string        // DB_PORT
	DBName    string        // DB_NAME
	JWTSecret string        // JWT_SECRET: HS256 signing key
	JWTIssuer string        // JWT_ISSUER: iss claim on issued tokens
	TokenTTL  time.Duration // TOKEN_TTL_DAYS: demo token lifetime
	LogLevel  string        // LOG_LEVEL: overrides the env default when set
}

// Load reads the core configuration. Missing required variables cause
// the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:       must("APP_ENV"),
		Port:      must("APP_PORT"),
		DBUser:    must("DB_USER"),
		DBPass:    os.Getenv("DB_PASS"),
		DBHost:    must("DB_HOST"),
		DBPort:    must("DB_PORT"),
		DBName:    must("DB_NAME"),
		JWTSecret: must("JWT_SECRET"),
		JWTIssuer: envStr("JWT_ISSUER", "time-tracker-api"),
		TokenTTL:  time.Duration(envInt("TOKEN_TTL_DAYS", 365)) * 24 * time.Hour,
		LogLevel:  os.Getenv("LOG_LEVEL"),
	}
}

// Dev reports whether the process runs in the dev environment, which
// unlocks verbose error details and console logging.
func (c Config) Dev() bool { return c.Env == "dev" }

// must retrieves a required environment variable. If the variable is
// unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// MongoDB connection to the stores database
	MongoURI string
	MongoDB  string

	// Reachability watcher
	ProbeInterval time.Duration

	// Valkey (Redis-compatible cache, sessions, connectivity state)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	ValkeyDB       int

	// Session cookie
	SessionCookie string
	SessionTTL    time.Duration

	// S3-compatible media storage
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A .env file in the working directory
// is honored when present. Returns an error if critical values are missing
// in production mode.
func Load() (*Config, error) {
	// best-effort: absence of .env is the normal case in production
	godotenv.Load()

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		MongoURI: envOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  envOrDefault("MONGO_DB", "mongolshop"),

		ProbeInterval: durationOrDefault("PROBE_INTERVAL", 30*time.Second),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
		ValkeyDB:       intOrDefault("VALKEY_DB", 0),

		SessionCookie: envOrDefault("SESSION_COOKIE", "mongolshop_session"),
		SessionTTL:    durationOrDefault("SESSION_TTL", 24*time.Hour),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3Bucket:    envOrDefault("S3_BUCKET", "mongolshop-media"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
	}

	// MONGO_EMULATOR_URI points development at a local throwaway instance
	// without touching the main URI setting.
	if cfg.Env == "development" {
		if emu := os.Getenv("MONGO_EMULATOR_URI"); emu != "" {
			cfg.MongoURI = emu
		}
	}

	if cfg.Env == "production" {
		if cfg.MongoURI == "mongodb://localhost:27017" {
			return nil, fmt.Errorf("MONGO_URI must be set in production")
		}
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ValkeyAddr returns the Valkey address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

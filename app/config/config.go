// Package config loads the service configuration: YAML file, then .env and
// environment overrides, then command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverMongo  = "mongo"
	DriverBadger = "badger"

	AuthJWT  = "jwt"
	AuthNone = "none"
)

// Config holds all service configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Store   StoreConfig   `yaml:"store"`
	Mongo   MongoConfig   `yaml:"mongo"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// HTTPConfig configures the listener.
type HTTPConfig struct {
	Addr            string `yaml:"addr"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// StoreConfig selects the backend.
type StoreConfig struct {
	Driver     string `yaml:"driver"` // mongo, badger
	BadgerPath string `yaml:"badger_path"`
}

// MongoConfig configures the Mongo backend.
type MongoConfig struct {
	URI            string `yaml:"uri"`
	Database       string `yaml:"database"`
	ConnectTimeout string `yaml:"connect_timeout"`
	MaxPoolSize    uint64 `yaml:"max_pool_size"`
}

// AuthConfig configures the session gate.
type AuthConfig struct {
	Mode       string `yaml:"mode"` // jwt, none
	CookieName string `yaml:"cookie_name"`
	JWTSecret  string `yaml:"jwt_secret"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: "10s",
		},
		Store: StoreConfig{
			Driver:     DriverMongo,
			BadgerPath: "data/badger",
		},
		Mongo: MongoConfig{
			Database:       "realestate",
			ConnectTimeout: "10s",
			MaxPoolSize:    20,
		},
		Auth: AuthConfig{
			Mode:       AuthJWT,
			CookieName: "sb-access-token",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file yields the defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the environment without
// replacing variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.HTTP.Addr, "HTTP_ADDR")
	set(&c.Store.Driver, "STORE_DRIVER")
	set(&c.Store.BadgerPath, "BADGER_PATH")
	set(&c.Mongo.URI, "MONGODB_URI")
	set(&c.Mongo.Database, "MONGODB_DB")
	set(&c.Auth.Mode, "AUTH_MODE")
	set(&c.Auth.CookieName, "AUTH_COOKIE")
	set(&c.Auth.JWTSecret, "AUTH_JWT_SECRET")
	set(&c.Logging.Level, "LOG_LEVEL")
	set(&c.Logging.Format, "LOG_FORMAT")
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return errors.New("http.addr is required")
	}
	if _, err := time.ParseDuration(c.HTTP.ShutdownTimeout); err != nil {
		return fmt.Errorf("http.shutdown_timeout: %w", err)
	}
	switch c.Store.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" {
			return errors.New("mongo.uri is required for the mongo driver (set MONGODB_URI)")
		}
		if c.Mongo.Database == "" {
			return errors.New("mongo.database is required")
		}
		if _, err := time.ParseDuration(c.Mongo.ConnectTimeout); err != nil {
			return fmt.Errorf("mongo.connect_timeout: %w", err)
		}
	case DriverBadger:
	default:
		return fmt.Errorf("store.driver must be %q or %q, got %q", DriverMongo, DriverBadger, c.Store.Driver)
	}
	switch c.Auth.Mode {
	case AuthJWT:
		if c.Auth.JWTSecret == "" {
			return errors.New("auth.jwt_secret is required in jwt mode (set AUTH_JWT_SECRET)")
		}
	case AuthNone:
	default:
		return fmt.Errorf("auth.mode must be %q or %q, got %q", AuthJWT, AuthNone, c.Auth.Mode)
	}
	return nil
}

// GetShutdownTimeout returns the graceful shutdown budget.
func (c *Config) GetShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.HTTP.ShutdownTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GetConnectTimeout returns the Mongo connect timeout.
func (c *Config) GetConnectTimeout() time.Duration {
	d, err := time.ParseDuration(c.Mongo.ConnectTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

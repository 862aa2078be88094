package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"HTTP_ADDR", "STORE_DRIVER", "BADGER_PATH", "MONGODB_URI", "MONGODB_DB",
	"AUTH_MODE", "AUTH_COOKIE", "AUTH_JWT_SECRET", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv blanks every override for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: ":9090"
store:
  driver: badger
  badger_path: /tmp/db
logging:
  level: debug
`), 0644))

	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "10s", cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, DriverBadger, cfg.Store.Driver)
	assert.Equal(t, "/tmp/db", cfg.Store.BadgerPath)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, "realestate", cfg.Mongo.Database)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: ["), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("AUTH_JWT_SECRET=from-dotenv\nMONGODB_DB=other\n"), 0644))
	t.Setenv("MONGODB_DB", "kept")
	require.NoError(t, os.Unsetenv("AUTH_JWT_SECRET"))

	require.NoError(t, LoadDotEnv(path))
	t.Cleanup(func() { os.Unsetenv("AUTH_JWT_SECRET") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Auth.JWTSecret)
	assert.Equal(t, "kept", cfg.Mongo.Database)

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "none.env")))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.Mongo.URI = "mongodb://localhost:27017"
		cfg.Auth.JWTSecret = "secret"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid mongo", mutate: func(*Config) {}},
		{name: "valid badger without uri", mutate: func(c *Config) { c.Store.Driver = DriverBadger; c.Mongo.URI = "" }},
		{name: "no auth", mutate: func(c *Config) { c.Auth.Mode = AuthNone; c.Auth.JWTSecret = "" }},
		{name: "missing uri", mutate: func(c *Config) { c.Mongo.URI = "" }, wantErr: "mongo.uri is required"},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "sqlite" }, wantErr: "store.driver"},
		{name: "missing secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: "auth.jwt_secret"},
		{name: "unknown auth mode", mutate: func(c *Config) { c.Auth.Mode = "basic" }, wantErr: "auth.mode"},
		{name: "bad timeout", mutate: func(c *Config) { c.HTTP.ShutdownTimeout = "soon" }, wantErr: "http.shutdown_timeout"},
		{name: "empty addr", mutate: func(c *Config) { c.HTTP.Addr = " " }, wantErr: "http.addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDurations(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "10s", cfg.HTTP.ShutdownTimeout)
	cfg.HTTP.ShutdownTimeout = "3s"
	assert.Equal(t, 3.0, cfg.GetShutdownTimeout().Seconds())
	cfg.Mongo.ConnectTimeout = "bogus"
	assert.Equal(t, 10.0, cfg.GetConnectTimeout().Seconds())
}

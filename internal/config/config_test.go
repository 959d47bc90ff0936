package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/stride/internal/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var envKeys = []string{
	"STRIDE_ADDR", "DB_DRIVER", "DB_PATH", "DATABASE_URL", "JWT_SECRET", "TOKEN_TTL", "LOG_LEVEL",
	"STRIDE_SERVER_URL", "STRIDE_CREDENTIALS", "STRIDE_TIMEZONE", "STRIDE_MACRO_UNIT",
}

// clearEnv blanks every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "./data/stride.db", cfg.DSN())
	ttl, err := cfg.TokenDuration()
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, ttl)
	unit, err := cfg.MacroUnit()
	require.NoError(t, err)
	assert.Equal(t, models.MacroPercent, unit)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "stride.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
database:
  driver: postgres
  url: postgres://localhost/stride
client:
  timezone: America/New_York
health:
  macro_unit: grams
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "postgres://localhost/stride", cfg.DSN())
	assert.Equal(t, "info", cfg.Logging.Level, "unset keys keep defaults")
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
	unit, err := cfg.MacroUnit()
	require.NoError(t, err)
	assert.Equal(t, models.MacroGrams, unit)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stride.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to parse config"))
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STRIDE_ADDR", ":7070")
	t.Setenv("DB_PATH", "/tmp/other.db")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STRIDE_SERVER_URL", "https://stride.example.com")
	t.Setenv("STRIDE_TIMEZONE", "UTC")
	t.Setenv("STRIDE_MACRO_UNIT", "grams")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "https://stride.example.com", cfg.Client.ServerURL)
	ttl, err := cfg.TokenDuration()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)
	require.NoError(t, cfg.ValidateServer())
	require.NoError(t, cfg.ValidateClient())
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "stride.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: postgres\n"), 0o644))
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestValidateServer(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }, "JWT_SECRET"},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }, "at least 32 bytes"},
		{"bad ttl", func(c *Config) { c.Auth.TokenTTL = "soon" }, "invalid token_ttl"},
		{"negative ttl", func(c *Config) { c.Auth.TokenTTL = "-1h" }, "must be positive"},
		{"postgres without url", func(c *Config) { c.Database.Driver = "postgres" }, "DATABASE_URL"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "invalid database driver"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Auth.JWTSecret = testSecret
			tt.mutate(cfg)

			err := cfg.ValidateServer()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateClient(t *testing.T) {
	clearEnv(t)
	cfg := DefaultConfig()
	require.NoError(t, cfg.ValidateClient(), "client defaults need no secret")

	cfg.Client.Timezone = "Mars/Olympus_Mons"
	assert.ErrorContains(t, cfg.ValidateClient(), "invalid timezone")

	cfg = DefaultConfig()
	cfg.Health.MacroUnit = "ounces"
	assert.ErrorContains(t, cfg.ValidateClient(), "unknown macro unit")
}

func TestLocationLocal(t *testing.T) {
	clearEnv(t)
	cfg := DefaultConfig()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

// Package config loads Stride settings from a YAML file with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/storage/sqlstore"
)

// Config holds the settings of both the backend and the device client.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
	Client   ClientConfig   `yaml:"client"`
	Health   HealthConfig   `yaml:"health"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`
	// Path is the SQLite file.
	Path string `yaml:"path"`
	// URL is the PostgreSQL connection string.
	URL string `yaml:"url"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	TokenTTL  string `yaml:"token_ttl"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ClientConfig struct {
	ServerURL   string `yaml:"server_url"`
	Credentials string `yaml:"credentials"`
	// Timezone is an IANA zone name; "" or "Local" uses the system zone.
	Timezone string `yaml:"timezone"`
	Timeout  string `yaml:"timeout"`
}

type HealthConfig struct {
	// MacroUnit is the unit of the onboarding macro defaults: "percent" or "grams".
	MacroUnit string `yaml:"macro_unit"`
}

// DefaultConfig returns the settings used when no file or variable overrides them.
func DefaultConfig() *Config {
	return &Config{
		Server:   ServerConfig{Addr: ":8080"},
		Database: DatabaseConfig{Driver: sqlstore.DriverSQLite, Path: "./data/stride.db"},
		Auth:     AuthConfig{TokenTTL: "720h"},
		Logging:  LoggingConfig{Level: "info"},
		Client: ClientConfig{
			ServerURL:   "http://localhost:8080",
			Credentials: defaultCredentialsPath(),
			Timeout:     "15s",
		},
		Health: HealthConfig{MacroUnit: string(models.MacroPercent)},
	}
}

func defaultCredentialsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".stride", "credentials.yaml")
	}
	return filepath.Join(dir, "stride", "credentials.yaml")
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
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

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	for env, dst := range map[string]*string{
		"STRIDE_ADDR":        &c.Server.Addr,
		"DB_DRIVER":          &c.Database.Driver,
		"DB_PATH":            &c.Database.Path,
		"DATABASE_URL":       &c.Database.URL,
		"JWT_SECRET":         &c.Auth.JWTSecret,
		"TOKEN_TTL":          &c.Auth.TokenTTL,
		"LOG_LEVEL":          &c.Logging.Level,
		"STRIDE_SERVER_URL":  &c.Client.ServerURL,
		"STRIDE_CREDENTIALS": &c.Client.Credentials,
		"STRIDE_TIMEZONE":    &c.Client.Timezone,
		"STRIDE_MACRO_UNIT":  &c.Health.MacroUnit,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
}

// MinSecretLength is the shortest accepted JWT signing secret.
const MinSecretLength = 32

// ValidateServer checks the settings the backend needs.
func (c *Config) ValidateServer() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret not configured (set JWT_SECRET)")
	}
	if len(c.Auth.JWTSecret) < MinSecretLength {
		return fmt.Errorf("JWT secret must be at least %d bytes", MinSecretLength)
	}
	if _, err := c.TokenDuration(); err != nil {
		return err
	}
	switch c.Database.Driver {
	case sqlstore.DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path not configured (set DB_PATH)")
		}
	case sqlstore.DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("database url not configured (set DATABASE_URL)")
		}
	default:
		return fmt.Errorf("invalid database driver: %s (valid: %s, %s)", c.Database.Driver, sqlstore.DriverSQLite, sqlstore.DriverPostgres)
	}
	return nil
}

// ValidateClient checks the settings the device client needs.
func (c *Config) ValidateClient() error {
	if c.Client.ServerURL == "" {
		return fmt.Errorf("server url not configured (set STRIDE_SERVER_URL)")
	}
	if c.Client.Credentials == "" {
		return fmt.Errorf("credentials path not configured (set STRIDE_CREDENTIALS)")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.MacroUnit(); err != nil {
		return err
	}
	_, err := c.ClientTimeout()
	return err
}

// DSN returns the data source for the configured driver.
func (c *Config) DSN() string {
	if c.Database.Driver == sqlstore.DriverPostgres {
		return c.Database.URL
	}
	return c.Database.Path
}

func (c *Config) TokenDuration() (time.Duration, error) {
	return positiveDuration("token_ttl", c.Auth.TokenTTL)
}

func (c *Config) ClientTimeout() (time.Duration, error) {
	return positiveDuration("timeout", c.Client.Timeout)
}

func positiveDuration(name, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", name, s)
	}
	return d, nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Client.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

func (c *Config) MacroUnit() (models.MacroUnit, error) {
	return models.ParseMacroUnit(c.Health.MacroUnit)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const ConfigFile = "pantry.toml"

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Environment variables that override file settings.
const (
	EnvDriver      = "PANTRY_DATABASE_DRIVER"
	EnvDSN         = "PANTRY_DATABASE_DSN"
	EnvPort        = "PANTRY_PORT"
	EnvLogLevel    = "PANTRY_LOG_LEVEL"
	EnvLogFormat   = "PANTRY_LOG_FORMAT"
	EnvCORSOrigins = "PANTRY_CORS_ORIGINS"
)

var (
	validDrivers    = []string{DriverSQLite, DriverPostgres}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Config holds the pantry configuration.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// DatabaseConfig selects the store backend.
type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	DSN             string `toml:"dsn"`
	SlowQueryMillis int    `toml:"slow_query_ms,omitempty"`
}

// ServerConfig defines settings for `pantry serve`.
type ServerConfig struct {
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins,omitempty"`
}

// LogConfig defines the slog handler.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultSQLiteDSN is the database file used when nothing else is configured.
const DefaultSQLiteDSN = "pantry.db"

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:          DriverSQLite,
			DSN:             DefaultSQLiteDSN,
			SlowQueryMillis: 200,
		},
		Server: ServerConfig{
			Port:        22881,
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from path.
// Returns default config if the file doesn't exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Database.Driver == "" {
		c.Database.Driver = def.Database.Driver
	}
	if c.Database.DSN == "" && c.Database.Driver == DriverSQLite {
		c.Database.DSN = def.Database.DSN
	}
	if c.Database.SlowQueryMillis == 0 {
		c.Database.SlowQueryMillis = def.Database.SlowQueryMillis
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// SetDriver switches the database driver. Leaving sqlite drops the default
// sqlite file, so a DSN for the new driver has to be given explicitly.
func (c *Config) SetDriver(driver string) {
	if driver != DriverSQLite && c.Database.Driver == DriverSQLite && c.Database.DSN == DefaultSQLiteDSN {
		c.Database.DSN = ""
	}
	c.Database.Driver = driver
}

// ApplyEnv overrides settings from PANTRY_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvDriver); ok && v != "" {
		c.SetDriver(v)
	}
	if v, ok := os.LookupEnv(EnvDSN); ok && v != "" {
		c.Database.DSN = v
	}
	if v, ok := os.LookupEnv(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid port %q", EnvPort, v)
		}
		c.Server.Port = port
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok && v != "" {
		c.Log.Format = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv(EnvCORSOrigins); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.CORSOrigins = origins
	}
	return nil
}

// Validate checks that the configuration can be used to start pantry.
func (c *Config) Validate() error {
	if !slices.Contains(validDrivers, c.Database.Driver) {
		return fmt.Errorf("invalid database driver: %s (must be %s)", c.Database.Driver, strings.Join(validDrivers, ", "))
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required for driver %s", c.Database.Driver)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", c.Server.Port)
	}
	if !slices.Contains(validLogLevels, c.Log.Level) {
		return fmt.Errorf("invalid log level: %s (must be %s)", c.Log.Level, strings.Join(validLogLevels, ", "))
	}
	if !slices.Contains(validLogFormats, c.Log.Format) {
		return fmt.Errorf("invalid log format: %s (must be %s)", c.Log.Format, strings.Join(validLogFormats, ", "))
	}
	return nil
}

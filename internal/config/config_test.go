package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Driver = %q, want %q", cfg.Database.Driver, DriverSQLite)
	}
	if cfg.Database.DSN != "pantry.db" {
		t.Errorf("DSN = %q, want \"pantry.db\"", cfg.Database.DSN)
	}
	if cfg.Server.Port != 22881 {
		t.Errorf("Port = %d, want 22881", cfg.Server.Port)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want \"info\"", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoadNonExistent(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ConfigFile))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Driver = %q, want default", cfg.Database.Driver)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	content := `[database]
driver = "postgres"
dsn = "host=localhost user=pantry dbname=pantry sslmode=disable"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("Driver = %q, want %q", cfg.Database.Driver, DriverPostgres)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want \"debug\"", cfg.Log.Level)
	}
	// Defaults fill the gaps
	if cfg.Server.Port != 22881 {
		t.Errorf("Port = %d, want default 22881", cfg.Server.Port)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want \"text\"", cfg.Log.Format)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	if err := os.WriteFile(path, []byte("[database\ndriver = "), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid TOML")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)

	cfg := Default()
	cfg.Server.Port = 9000
	cfg.Server.CORSOrigins = []string{"https://example.com"}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000", loaded.Server.Port)
	}
	if len(loaded.Server.CORSOrigins) != 1 || loaded.Server.CORSOrigins[0] != "https://example.com" {
		t.Errorf("CORSOrigins = %v, want [https://example.com]", loaded.Server.CORSOrigins)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDriver, "postgres")
	t.Setenv(EnvDSN, "postgres://localhost/pantry")
	t.Setenv(EnvPort, "8080")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvCORSOrigins, "http://a.test, http://b.test,")

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.Database.Driver != "postgres" {
		t.Errorf("Driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.Database.DSN != "postgres://localhost/pantry" {
		t.Errorf("DSN = %q", cfg.Database.DSN)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if len(cfg.Server.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v, want 2 entries", cfg.Server.CORSOrigins)
	}
}

func TestApplyEnvInvalidPort(t *testing.T) {
	t.Setenv(EnvPort, "not-a-port")
	if err := Default().ApplyEnv(); err == nil {
		t.Error("ApplyEnv() expected error for invalid port")
	}
}

func TestApplyEnvDriverWithoutDSN(t *testing.T) {
	t.Setenv(EnvDriver, "postgres")
	t.Setenv(EnvDSN, "")

	cfg, err := Load(filepath.Join(t.TempDir(), ConfigFile))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.Database.DSN != "" {
		t.Errorf("DSN = %q, want empty", cfg.Database.DSN)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected dsn is required error")
	}
}

func TestSetDriver(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		driver  string
		wantDSN string
	}{
		{"postgres drops default file", DefaultSQLiteDSN, DriverPostgres, ""},
		{"postgres keeps explicit dsn", "host=db", DriverPostgres, "host=db"},
		{"postgres keeps custom sqlite path", "data/pantry.db", DriverPostgres, "data/pantry.db"},
		{"sqlite keeps default file", DefaultSQLiteDSN, DriverSQLite, DefaultSQLiteDSN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Database.DSN = tt.dsn
			cfg.SetDriver(tt.driver)

			if cfg.Database.Driver != tt.driver {
				t.Errorf("Driver = %q, want %q", cfg.Database.Driver, tt.driver)
			}
			if cfg.Database.DSN != tt.wantDSN {
				t.Errorf("DSN = %q, want %q", cfg.Database.DSN, tt.wantDSN)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if err := LoadDotEnv(filepath.Join(dir, ".env")); err != nil {
			t.Errorf("LoadDotEnv() error = %v", err)
		}
	})

	t.Run("loads variables", func(t *testing.T) {
		path := filepath.Join(dir, ".env")
		if err := os.WriteFile(path, []byte("PANTRY_TEST_DOTENV=from-file\n"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		t.Setenv("PANTRY_TEST_DOTENV", "")
		os.Unsetenv("PANTRY_TEST_DOTENV")

		if err := LoadDotEnv(path); err != nil {
			t.Fatalf("LoadDotEnv() error = %v", err)
		}
		if got := os.Getenv("PANTRY_TEST_DOTENV"); got != "from-file" {
			t.Errorf("PANTRY_TEST_DOTENV = %q, want from-file", got)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"postgres", func(c *Config) { c.Database.Driver = DriverPostgres; c.Database.DSN = "host=db" }, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"empty dsn", func(c *Config) { c.Database.DSN = "" }, true},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, true},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

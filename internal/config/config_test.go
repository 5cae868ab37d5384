package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pet-care-planner", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 5*time.Second, cfg.HTTPServer.ReadTimeout)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 120, cfg.RateLimit.PerMinute)
	assert.Equal(t, "0 6 * * *", cfg.Digest.Spec)
	assert.True(t, cfg.Scheduler.Chronological)
	assert.Equal(t, 480, cfg.Owner.DefaultTimeAvailable)
	assert.False(t, cfg.Auth.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_SERVER_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("STORAGE_SQLITE_PATH", "/tmp/plan.db")
	t.Setenv("SCHEDULER_CHRONOLOGICAL", "false")
	t.Setenv("DIGEST_ENABLED", "true")
	t.Setenv("DIGEST_SPEC", "30 7 * * *")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTPServer.Port)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/plan.db", cfg.Storage.SQLitePath)
	assert.False(t, cfg.Scheduler.Chronological)
	assert.True(t, cfg.Digest.Enabled)
	assert.Equal(t, "30 7 * * *", cfg.Digest.Spec)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			HTTPServer: HTTPServerConfig{Port: 8080},
			Storage:    StorageConfig{Driver: DriverMemory},
			Digest:     DigestConfig{Spec: "0 6 * * *", Timezone: "UTC"},
			Owner:      OwnerConfig{DefaultTimeAvailable: 480},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mongo" }, "unknown storage.driver"},
		{"postgres without dsn", func(c *Config) { c.Storage.Driver = DriverPostgres }, "storage.dsn"},
		{"negative budget", func(c *Config) { c.Owner.DefaultTimeAvailable = -1 }, "default_time_available"},
		{"odin without key", func(c *Config) { c.Auth.OdinBaseURL = "http://odin" }, "odin_api_key"},
		{"bad cron", func(c *Config) { c.Digest.Enabled = true; c.Digest.Spec = "every morning" }, "digest.spec"},
		{"bad timezone", func(c *Config) { c.Digest.Enabled = true; c.Digest.Timezone = "Mars/Olympus" }, "digest.timezone"},
		{"bad cron ignored when disabled", func(c *Config) { c.Digest.Spec = "nope" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
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

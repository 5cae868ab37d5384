package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config agrupa la configuración del servicio.
type Config struct {
	App        AppConfig
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	Storage    StorageConfig
	Auth       AuthConfig
	RateLimit  RateLimitConfig
	Digest     DigestConfig
	Scheduler  SchedulerConfig
	Owner      OwnerConfig
}

type AppConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

type StorageConfig struct {
	Driver     string // memory | postgres | sqlite
	DSN        string
	SQLitePath string
}

type AuthConfig struct {
	OdinBaseURL string
	OdinAPIKey  string
}

// Enabled: sin Odin configurado el servicio corre en modo dev (X-Debug-User-ID).
func (a AuthConfig) Enabled() bool {
	return strings.TrimSpace(a.OdinBaseURL) != ""
}

type RateLimitConfig struct {
	PerMinute int
}

type DigestConfig struct {
	Enabled  bool
	Spec     string
	Timezone string
}

type SchedulerConfig struct {
	Chronological bool
}

type OwnerConfig struct {
	DefaultTimeAvailable int
}

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Load lee config.yaml (./config, ., /etc/pet-care-planner/) si existe y aplica
// overrides por env: "storage.dsn" -> STORAGE_DSN.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/pet-care-planner/")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.App.Name = v.GetString("app.name")

	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.ReadTimeout = v.GetDuration("http_server.read_timeout")
	cfg.HTTPServer.WriteTimeout = v.GetDuration("http_server.write_timeout")

	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Format = v.GetString("logger.format")

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(v.GetString("storage.driver")))
	cfg.Storage.DSN = v.GetString("storage.dsn")
	cfg.Storage.SQLitePath = v.GetString("storage.sqlite_path")

	cfg.Auth.OdinBaseURL = v.GetString("auth.odin_base_url")
	cfg.Auth.OdinAPIKey = v.GetString("auth.odin_api_key")

	cfg.RateLimit.PerMinute = v.GetInt("rate_limit.per_minute")

	cfg.Digest.Enabled = v.GetBool("digest.enabled")
	cfg.Digest.Spec = v.GetString("digest.spec")
	cfg.Digest.Timezone = v.GetString("digest.timezone")

	cfg.Scheduler.Chronological = v.GetBool("scheduler.chronological")

	cfg.Owner.DefaultTimeAvailable = v.GetInt("owner.default_time_available")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "pet-care-planner")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.read_timeout", "5s")
	v.SetDefault("http_server.write_timeout", "10s")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.sqlite_path", "data/planner.db")
	v.SetDefault("rate_limit.per_minute", 120)
	v.SetDefault("digest.enabled", false)
	v.SetDefault("digest.spec", "0 6 * * *")
	v.SetDefault("digest.timezone", "UTC")
	v.SetDefault("scheduler.chronological", true)
	v.SetDefault("owner.default_time_available", 480)
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return errors.New("storage.dsn is required for the postgres driver")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return errors.New("storage.sqlite_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q (memory, postgres, sqlite)", c.Storage.Driver)
	}

	if c.HTTPServer.Port <= 0 || c.HTTPServer.Port > 65535 {
		return fmt.Errorf("invalid http_server.port %d", c.HTTPServer.Port)
	}
	if c.Owner.DefaultTimeAvailable < 0 {
		return fmt.Errorf("owner.default_time_available must be zero or more (got %d)", c.Owner.DefaultTimeAvailable)
	}
	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("rate_limit.per_minute must be zero or more (got %d)", c.RateLimit.PerMinute)
	}
	if c.Auth.Enabled() && strings.TrimSpace(c.Auth.OdinAPIKey) == "" {
		return errors.New("auth.odin_api_key is required when auth.odin_base_url is set")
	}

	if c.Digest.Enabled {
		if _, err := cron.ParseStandard(c.Digest.Spec); err != nil {
			return fmt.Errorf("invalid digest.spec %q: %w", c.Digest.Spec, err)
		}
		if _, err := time.LoadLocation(c.Digest.Timezone); err != nil {
			return fmt.Errorf("invalid digest.timezone %q: %w", c.Digest.Timezone, err)
		}
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPServer.Port)
}

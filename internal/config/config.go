package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
	EnvironmentTest        Environment = "test"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// ErrMissingConnectionString is fatal at startup; no request is served
// without a persistence engine.
var ErrMissingConnectionString = errors.New("config: DATABASE_URL is not set")

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Meeting   MeetingConfig   `yaml:"meeting"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port"`
	BaseURL      string        `yaml:"base_url"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	Environment  Environment   `yaml:"environment"`
}

func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	URL      string `yaml:"url"`
	MaxConns int    `yaml:"max_conns"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

type AuthConfig struct {
	SessionExpiration time.Duration `yaml:"session_expiration"`
	ResetTokenTTL     time.Duration `yaml:"reset_token_ttl"`
	CookieSecure      bool          `yaml:"cookie_secure"`
}

type MeetingConfig struct {
	SaveTimeout   time.Duration `yaml:"save_timeout"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
	// TimeZone is the IANA zone meeting dates and times are written in.
	TimeZone string `yaml:"time_zone"`
}

func (c MeetingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.TimeZone)
}

type TelemetryConfig struct {
	Enabled        bool    `yaml:"enabled"`
	ExporterURL    string  `yaml:"exporter_url"`
	ServiceName    string  `yaml:"service_name"`
	ServiceVersion string  `yaml:"service_version"`
	SamplingRatio  float64 `yaml:"sampling_ratio"`
}

type LogConfig struct {
	Level     string `yaml:"level"`
	File      string `yaml:"file"`
	AuditFile string `yaml:"audit_file"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Host:         "localhost",
			Port:         "3000",
			BaseURL:      "http://localhost:3000",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			Environment:  EnvironmentDevelopment,
		},
		Database: DatabaseConfig{
			Driver:   StorageDriverPostgres,
			MaxConns: 10,
		},
		Auth: AuthConfig{
			SessionExpiration: 24 * time.Hour,
			ResetTokenTTL:     time.Hour,
		},
		Meeting: MeetingConfig{
			SaveTimeout:   5 * time.Second,
			SweepInterval: time.Minute,
			TimeZone:      "UTC",
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "meetingportal",
			ServiceVersion: "dev",
			SamplingRatio:  1.0,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file named
// by CONFIG_FILE, and environment variables, in increasing precedence.
func Load() (Config, error) {
	cfg := defaults()

	if path, ok := os.LookupEnv("CONFIG_FILE"); ok && path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}

	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnv("SERVER_PORT", cfg.Server.Port)
	cfg.Server.BaseURL = getEnv("SERVER_BASE_URL", cfg.Server.BaseURL)
	cfg.Server.ReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout)
	cfg.Server.Environment = Environment(getEnv("SERVER_ENVIRONMENT", string(cfg.Server.Environment)))

	cfg.Database.Driver = getEnv("STORAGE_DRIVER", cfg.Database.Driver)
	cfg.Database.URL = getEnv("DATABASE_URL", cfg.Database.URL)
	cfg.Database.MaxConns = getEnvInt("DB_MAX_CONNS", cfg.Database.MaxConns)

	cfg.Redis.URL = getEnv("REDIS_URL", cfg.Redis.URL)

	cfg.Auth.SessionExpiration = getEnvDuration("SESSION_EXPIRATION", cfg.Auth.SessionExpiration)
	cfg.Auth.ResetTokenTTL = getEnvDuration("RESET_TOKEN_TTL", cfg.Auth.ResetTokenTTL)
	cfg.Auth.CookieSecure = getEnvBool("COOKIE_SECURE", cfg.Server.Environment == EnvironmentProduction || cfg.Auth.CookieSecure)

	cfg.Meeting.SaveTimeout = getEnvDuration("MEETING_SAVE_TIMEOUT", cfg.Meeting.SaveTimeout)
	cfg.Meeting.SweepInterval = getEnvDuration("MEETING_SWEEP_INTERVAL", cfg.Meeting.SweepInterval)
	cfg.Meeting.TimeZone = getEnv("MEETING_TIMEZONE", cfg.Meeting.TimeZone)

	cfg.Telemetry.Enabled = getEnvBool("OTEL_ENABLED", cfg.Telemetry.Enabled)
	cfg.Telemetry.ExporterURL = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.ExporterURL)
	cfg.Telemetry.ServiceName = getEnv("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)
	cfg.Telemetry.ServiceVersion = getEnv("VERSION", cfg.Telemetry.ServiceVersion)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("LOG_FILE", cfg.Log.File)
	cfg.Log.AuditFile = getEnv("AUDIT_LOG_FILE", cfg.Log.AuditFile)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.Database.URL == "" {
			return ErrMissingConnectionString
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Database.Driver)
	}

	if c.Meeting.SaveTimeout <= 0 {
		return fmt.Errorf("config: meeting save timeout must be positive")
	}
	if c.Meeting.SweepInterval <= 0 {
		return fmt.Errorf("config: meeting sweep interval must be positive")
	}
	if _, err := c.Meeting.Location(); err != nil {
		return fmt.Errorf("config: invalid meeting time zone %q: %w", c.Meeting.TimeZone, err)
	}
	return nil
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

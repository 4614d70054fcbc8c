package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type AppConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Port           string

	DBDriver       string
	DatabasePath   string
	DatabaseURL    string
	DBMaxOpenConns int

	RedisURL       string
	StatusCacheTTL time.Duration

	OTLPEndpoint string
	MetricsPort  string

	LogLevel    string
	SQLLogLevel string

	AllowedOrigins []string
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		ServiceName:    "todoapi",
		ServiceVersion: "1.0.0",
		Environment:    EnvDevelopment,
		Port:           "8080",
		DBDriver:       DriverSQLite,
		DatabasePath:   "database.db",
		DBMaxOpenConns: 10,
		StatusCacheTTL: 5 * time.Second,
		MetricsPort:    "9091",
		LogLevel:       "info",
		SQLLogLevel:    "error",
		AllowedOrigins: []string{"*"},
	}
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Load reads the configuration from defaults, an optional CONFIG_FILE and
// the environment, in increasing order of precedence.
func Load() (*AppConfig, error) {
	v := viper.New()
	defaults := GetDefaultConfig()

	v.SetDefault("SERVICE_NAME", defaults.ServiceName)
	v.SetDefault("SERVICE_VERSION", defaults.ServiceVersion)
	v.SetDefault("ENVIRONMENT", defaults.Environment)
	v.SetDefault("PORT", defaults.Port)
	v.SetDefault("DB_DRIVER", defaults.DBDriver)
	v.SetDefault("DATABASE_PATH", defaults.DatabasePath)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", defaults.DBMaxOpenConns)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("STATUS_CACHE_TTL", defaults.StatusCacheTTL)
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("METRICS_PORT", defaults.MetricsPort)
	v.SetDefault("LOG_LEVEL", defaults.LogLevel)
	v.SetDefault("SQL_LOG_LEVEL", defaults.SQLLogLevel)
	v.SetDefault("ALLOWED_ORIGINS", defaults.AllowedOrigins)

	v.AutomaticEnv()

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &AppConfig{
		ServiceName:    v.GetString("SERVICE_NAME"),
		ServiceVersion: v.GetString("SERVICE_VERSION"),
		Environment:    v.GetString("ENVIRONMENT"),
		Port:           v.GetString("PORT"),
		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		DatabasePath:   v.GetString("DATABASE_PATH"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		DBMaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		RedisURL:       v.GetString("REDIS_URL"),
		StatusCacheTTL: v.GetDuration("STATUS_CACHE_TTL"),
		OTLPEndpoint:   v.GetString("OTLP_ENDPOINT"),
		MetricsPort:    v.GetString("METRICS_PORT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		SQLLogLevel:    v.GetString("SQL_LOG_LEVEL"),
		AllowedOrigins: splitOrigins(v.GetStringSlice("ALLOWED_ORIGINS")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *AppConfig) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			return errors.New("DATABASE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}

	if c.StatusCacheTTL < 0 {
		return errors.New("STATUS_CACHE_TTL must not be negative")
	}

	return nil
}

// splitOrigins accepts both list values and a single comma separated string.
func splitOrigins(values []string) []string {
	origins := make([]string, 0, len(values))

	for _, value := range values {
		for _, origin := range strings.Split(value, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}

	return origins
}

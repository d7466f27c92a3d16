package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	StorageDriverMemory   = "memory"
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port          string   `yaml:"port" env:"SERVER_PORT"`
		Mode          string   `yaml:"mode" env:"SERVER_MODE"`
		SessionSecret string   `yaml:"session_secret" env:"SESSION_SECRET"`
		CORSOrigins   []string `yaml:"cors_origins" env:"CORS_ORIGINS"`
	} `yaml:"server"`

	Storage struct {
		Driver     string `yaml:"driver" env:"STORAGE_DRIVER"`
		Dir        string `yaml:"dir" env:"STORAGE_DIR"`
		QuotaBytes int    `yaml:"quota_bytes" env:"STORAGE_QUOTA_BYTES"`
	} `yaml:"storage"`

	Database DatabaseConfig `yaml:"database"`

	Mirror struct {
		Enabled bool          `yaml:"enabled" env:"MIRROR_ENABLED"`
		DSN     string        `yaml:"dsn" env:"MIRROR_DSN"`
		Timeout time.Duration `yaml:"timeout" env:"MIRROR_TIMEOUT"`
	} `yaml:"mirror"`

	Views struct {
		VisitTTL      time.Duration `yaml:"visit_ttl" env:"VIEWS_VISIT_TTL"`
		VisitCapacity int           `yaml:"visit_capacity" env:"VIEWS_VISIT_CAPACITY"`
	} `yaml:"views"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// DatabaseConfig holds the Postgres connection settings for the kv backend
type DatabaseConfig struct {
	Host            string `yaml:"host" env:"DB_HOST"`
	Port            string `yaml:"port" env:"DB_PORT"`
	User            string `yaml:"user" env:"DB_USER"`
	Password        string `yaml:"password" env:"DB_PASSWORD"`
	DBName          string `yaml:"dbname" env:"DB_NAME"`
	SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
}

// LoadConfig loads configuration from a .env file, a YAML file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// A missing .env is normal outside development
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.CORSOrigins = []string{"http://localhost:5173"}

	config.Storage.Driver = StorageDriverMemory
	config.Storage.Dir = "data"
	// Browsers typically allow about 5MB per origin
	config.Storage.QuotaBytes = 5 * 1024 * 1024

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "onotime"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"

	config.Mirror.Timeout = 10 * time.Second

	config.Views.VisitTTL = 30 * time.Minute
	config.Views.VisitCapacity = 10000

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Server.SessionSecret == "" {
		return fmt.Errorf("session secret is required")
	}

	switch config.Storage.Driver {
	case StorageDriverMemory, StorageDriverFile:
	case StorageDriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required for the postgres storage driver")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database connection max lifetime: %w", err)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	if config.Storage.QuotaBytes < 0 {
		return fmt.Errorf("storage quota must not be negative")
	}

	if config.Mirror.Enabled && config.Mirror.DSN == "" {
		return fmt.Errorf("mirror DSN is required when the mirror is enabled")
	}

	if config.Views.VisitCapacity <= 0 {
		return fmt.Errorf("views visit capacity must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c DatabaseConfig) GetPostgresConnectionString() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.DBName,
		sslMode,
	)
}

// IsProduction reports whether the server runs in release mode
func (c *Config) IsProduction() bool {
	mode := strings.ToLower(c.Server.Mode)
	return mode == "production" || mode == "release"
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(GetEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

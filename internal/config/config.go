package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMongo  = "mongo"
	BackendSQL    = "sql"
	BackendMemory = "memory"
)

// Config holds application configuration
type Config struct {
	App      AppConfig
	Store    StoreConfig
	Mongo    MongoConfig
	Database DatabaseConfig
	Metrics  MetricsConfig
	Email    EmailConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name  string
	Debug bool
}

// StoreConfig selects the backend and the default page size for reads
type StoreConfig struct {
	Backend    string
	QueryLimit int
}

// MongoConfig holds MongoDB connection settings.
// Timeout of zero leaves the driver defaults in place.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// DatabaseConfig holds SQL database configuration
type DatabaseConfig struct {
	URL string
}

// MetricsConfig holds metrics export configuration
type MetricsConfig struct {
	File string
}

// EmailConfig holds admin notification settings. Disabled by default, in
// which case notifications are only logged.
type EmailConfig struct {
	Enabled    bool
	SMTPHost   string
	SMTPPort   int
	Username   string
	Password   string
	FromEmail  string
	FromName   string
	AdminEmail string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name:  getEnv("APP_NAME", "formbot"),
			Debug: getEnvAsBool("DEBUG", false),
		},
		Store: StoreConfig{
			Backend:    strings.ToLower(getEnv("STORE_BACKEND", BackendMongo)),
			QueryLimit: getEnvAsInt("QUERY_LIMIT", 20),
		},
		Mongo: MongoConfig{
			URI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:   getEnv("MONGO_DATABASE", "telegram_bot_db"),
			Collection: getEnv("MONGO_COLLECTION", "form_submissions"),
			Timeout:    getEnvAsDuration("MONGO_TIMEOUT", 0),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", "sqlite:///./form_submissions.db"),
		},
		Metrics: MetricsConfig{
			File: getEnv("METRICS_FILE", ""),
		},
		Email: EmailConfig{
			Enabled:    getEnvAsBool("EMAIL_ENABLED", false),
			SMTPHost:   getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:   getEnvAsInt("SMTP_PORT", 587),
			Username:   getEnv("SMTP_USERNAME", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			FromEmail:  getEnv("EMAIL_FROM", "noreply@formbot.local"),
			FromName:   getEnv("EMAIL_FROM_NAME", "Form Bot"),
			AdminEmail: getEnv("ADMIN_EMAIL", ""),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks the configuration. Callers that override values after
// Load should validate again.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI must be set")
		}
	case BackendSQL:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL must be set")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (supported: mongo, sql, memory)", c.Store.Backend)
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("MONGO_DATABASE must be set")
	}
	if c.Mongo.Collection == "" {
		return fmt.Errorf("MONGO_COLLECTION must be set")
	}
	if c.Store.QueryLimit <= 0 {
		return fmt.Errorf("QUERY_LIMIT must be greater than 0")
	}
	if c.Mongo.Timeout < 0 {
		return fmt.Errorf("MONGO_TIMEOUT must not be negative")
	}
	if c.Email.Enabled && c.Email.AdminEmail == "" {
		return fmt.Errorf("ADMIN_EMAIL must be set when EMAIL_ENABLED is true")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// IsPostgres checks if the database URL is for PostgreSQL
func (c *DatabaseConfig) IsPostgres() bool {
	return strings.HasPrefix(c.URL, "postgres://") || strings.HasPrefix(c.URL, "postgresql://")
}

// GetSQLitePath extracts SQLite database path from URL
func (c *DatabaseConfig) GetSQLitePath() string {
	return strings.TrimPrefix(c.URL, "sqlite:///")
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string

	// Postgres connection settings.
	DBHost    string
	DBPort    string
	DBName    string
	DBUser    string
	DBPass    string
	DBSSLMode string

	// Redis front page cache. Disabled when RedisAddr is empty.
	RedisAddr    string
	FrontPageTTL time.Duration

	// Kafka publish-notification stream.
	KafkaBrokers      []string
	KafkaPublishTopic string
	KafkaEnabled      bool

	// Auth.
	JWTSecret string
	TokenTTL  time.Duration

	// Server-held key for the optional AI content-generation admin
	// feature. Never sent to clients.
	XAIAPIKey string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	frontPageTTL, err := parseDuration("FRONT_PAGE_TTL", "2m")
	if err != nil {
		return nil, err
	}
	tokenTTL, err := parseDuration("TOKEN_TTL", "24h")
	if err != nil {
		return nil, err
	}

	kafkaBrokers := splitList(envOrDefault("KAFKA_BROKERS", ""))
	kafkaEnabled := len(kafkaBrokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		AllowedOrigins:  splitList(envOrDefault("ALLOWED_ORIGINS", "*")),

		DBHost:    envOrDefault("DB_HOST", "localhost"),
		DBPort:    envOrDefault("DB_PORT", "5432"),
		DBName:    envOrDefault("DB_NAME", "akfeed"),
		DBUser:    envOrDefault("DB_USER", "akfeed"),
		DBPass:    os.Getenv("DB_PASS"),
		DBSSLMode: envOrDefault("DB_SSLMODE", "disable"),

		RedisAddr:    os.Getenv("REDIS_ADDR"),
		FrontPageTTL: frontPageTTL,

		KafkaBrokers:      kafkaBrokers,
		KafkaPublishTopic: envOrDefault("KAFKA_PUBLISH_TOPIC", "news-published"),
		KafkaEnabled:      kafkaEnabled,

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  tokenTTL,

		XAIAPIKey: os.Getenv("XAI_API_KEY"),
	}

	if cfg.DBName == "" {
		return nil, errors.New("DB_NAME is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

// DatabaseURL assembles the Postgres connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

// splitList parses a comma-separated list, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

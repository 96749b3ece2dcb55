package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	TransportLog     = "log"
	TransportKafka   = "kafka"
	TransportWebhook = "webhook"
	TransportS3      = "s3"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Observability (optional)
	SentryDSN string

	// Events: where goal.created notifications go ("log", "kafka", "webhook", "s3")
	EventTransport string
	// Events - Kafka
	KafkaBrokers          []string
	KafkaWriteTimeout     time.Duration
	KafkaAutoCreateTopics bool
	// Events - Webhook (Standard Webhooks signing)
	WebhookURL     string
	WebhookSecret  string
	WebhookTimeout time.Duration
	// Events - S3 archive (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // Optional: for S3-compatible services

	// Rate limiting for state-changing requests, per client IP
	RateLimitWrites int
	RateLimitWindow time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "checkhealth-goals"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/goals.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Events
		EventTransport:        envString("EVENT_TRANSPORT", TransportLog),
		KafkaBrokers:          envList("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaWriteTimeout:     envDuration("KAFKA_WRITE_TIMEOUT", 10*time.Second),
		KafkaAutoCreateTopics: envBool("KAFKA_AUTO_CREATE_TOPICS", true),
		WebhookURL:            envString("WEBHOOK_URL", ""),
		WebhookSecret:         envString("WEBHOOK_SECRET", ""),
		WebhookTimeout:        envDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		S3Region:              envString("S3_REGION", "us-east-1"),
		S3Bucket:              envString("S3_BUCKET", ""),
		S3AccessKey:           envString("S3_ACCESS_KEY", ""),
		S3SecretKey:           envString("S3_SECRET_KEY", ""),
		S3Endpoint:            envString("S3_ENDPOINT", ""),

		// Rate limiting
		RateLimitWrites: envInt("RATE_LIMIT_WRITES", 60),
		RateLimitWindow: envDuration("RATE_LIMIT_WINDOW", time.Minute),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures goal.created events leave the process in production.
// Development may keep the log transport for local testing.
func validateProduction(cfg *Config) {
	if cfg.EventTransport == TransportLog {
		slog.Error("production deployment requires a real EVENT_TRANSPORT",
			"hint", "set EVENT_TRANSPORT to kafka, webhook or s3")
		os.Exit(1)
	}
	if cfg.EventTransport == TransportWebhook && cfg.WebhookSecret == "" {
		slog.Error("production webhook transport requires WEBHOOK_SECRET")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// envList splits a comma separated value, dropping empty items.
func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var items []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return def
	}
	return items
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/checkhealth/goals/internal/config"
	"github.com/checkhealth/goals/internal/storage"
)

// Transport delivers a text payload to a named channel.
type Transport interface {
	// Send blocks until the transport accepted the payload or failed
	Send(ctx context.Context, channel, payload string) error

	// Close releases connections held by the transport
	Close() error

	// Name returns the transport name (e.g., "kafka", "webhook")
	Name() string
}

// NewTransport creates the event transport selected by configuration
func NewTransport(cfg *config.Config) (Transport, error) {
	transport := cfg.EventTransport

	slog.Info("initializing event transport", "transport", transport)

	switch transport {
	case config.TransportLog:
		return NewLogTransport(slog.Default()), nil

	case config.TransportKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("KAFKA_BROKERS is required when using Kafka transport")
		}
		return NewKafkaTransport(KafkaConfig{
			Brokers:          cfg.KafkaBrokers,
			WriteTimeout:     cfg.KafkaWriteTimeout,
			AutoCreateTopics: cfg.KafkaAutoCreateTopics,
		}), nil

	case config.TransportWebhook:
		if cfg.WebhookURL == "" {
			return nil, fmt.Errorf("WEBHOOK_URL is required when using webhook transport")
		}
		return NewWebhookTransport(WebhookConfig{
			URL:     cfg.WebhookURL,
			Secret:  cfg.WebhookSecret,
			Timeout: cfg.WebhookTimeout,
		})

	case config.TransportS3:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required when using S3 transport")
		}
		return NewS3Transport(context.Background(), storage.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})

	default:
		return nil, fmt.Errorf("unknown event transport: %s (supported: log, kafka, webhook, s3)", transport)
	}
}

// LogTransport writes events to the application log. Used in development.
type LogTransport struct {
	log *slog.Logger
}

func NewLogTransport(log *slog.Logger) *LogTransport {
	return &LogTransport{log: log}
}

func (t *LogTransport) Send(ctx context.Context, channel, payload string) error {
	t.log.InfoContext(ctx, "event published (log transport)", "channel", channel, "payload", payload)
	return nil
}

func (t *LogTransport) Close() error { return nil }

func (t *LogTransport) Name() string { return config.TransportLog }

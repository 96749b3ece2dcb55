package event

import (
	"context"
	"fmt"
	"time"

	"github.com/checkhealth/goals/internal/config"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafka.Writer used by KafkaTransport
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaConfig struct {
	Brokers          []string
	WriteTimeout     time.Duration
	AutoCreateTopics bool
}

// KafkaTransport publishes each payload to the topic named by the channel.
// Writes are synchronous and wait for all in-sync replicas.
type KafkaTransport struct {
	writer messageWriter
}

func NewKafkaTransport(cfg KafkaConfig) *KafkaTransport {
	return &KafkaTransport{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireAll,
			WriteTimeout:           cfg.WriteTimeout,
			AllowAutoTopicCreation: cfg.AutoCreateTopics,
		},
	}
}

func (t *KafkaTransport) Send(ctx context.Context, channel, payload string) error {
	err := t.writer.WriteMessages(ctx, kafka.Message{
		Topic: channel,
		Value: []byte(payload),
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("kafka write to %s: %w", channel, err)
	}
	return nil
}

func (t *KafkaTransport) Close() error {
	return t.writer.Close()
}

func (t *KafkaTransport) Name() string { return config.TransportKafka }

// Package kafka publishes content lifecycle events to a Kafka topic so
// downstream consumers (search indexers, notification fanout) can react
// to newly published items.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/aurorahq/akfeed/internal/config"
	"github.com/aurorahq/akfeed/internal/domain"
)

// Publisher produces news-published events to a Kafka topic.
// It implements service.EventPublisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured publish topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaPublishTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishNews serializes and publishes a single news item event.
func (p *Publisher) PublishNews(ctx context.Context, item domain.NewsItem) error {
	msg, err := serializeToMessage(item)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a NewsItem into a Kafka message keyed by
// item ID so updates to the same item land on one partition.
func serializeToMessage(item domain.NewsItem) (kafkago.Message, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize news item: %w", err)
	}
	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte("news.published")},
		{Key: "category", Value: []byte(item.Category)},
	}
	if item.PublishedAt != nil {
		headers = append(headers, kafkago.Header{
			Key:   "published_at",
			Value: []byte(item.PublishedAt.Format(time.RFC3339)),
		})
	}
	return kafkago.Message{
		Key:     []byte(item.ID),
		Value:   data,
		Headers: headers,
	}, nil
}

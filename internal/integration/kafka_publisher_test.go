//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/aurorahq/akfeed/internal/adapter/kafka"
	"github.com/aurorahq/akfeed/internal/config"
	"github.com/aurorahq/akfeed/internal/domain"
)

const testPublishTopic = "test-news-published"

// startKafka runs a single-node Kafka broker in a container and returns
// its bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve broker address")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	require.NoError(t, conn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestKafkaPublisher verifies that a published news item round-trips
// through Kafka with its key, payload, and headers intact.
func TestKafkaPublisher(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testPublishTopic)

	cfg := &config.Config{
		KafkaBrokers:      []string{broker},
		KafkaPublishTopic: testPublishTopic,
	}

	publishedAt := time.Date(2026, 2, 11, 8, 0, 0, 0, time.UTC)
	item := domain.NewsItem{
		ID:          "news-int-1",
		Title:       "Dalton Highway reopens after avalanche clearing",
		Description: "Crews cleared debris north of Atigun Pass overnight.",
		Category:    "transportation",
		PublishedAt: &publishedAt,
	}

	publisher := kafka.NewPublisher(cfg, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })
	require.NoError(t, publisher.PublishNews(ctx, item))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		Topic:   testPublishTopic,
		GroupID: fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from publish topic")

	assert.Equal(t, []byte("news-int-1"), msg.Key)

	var got domain.NewsItem
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, item.Title, got.Title)
	assert.Equal(t, item.Category, got.Category)

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "news.published", headers["event_type"])
	assert.Equal(t, "transportation", headers["category"])
	assert.Equal(t, publishedAt.Format(time.RFC3339), headers["published_at"])
}

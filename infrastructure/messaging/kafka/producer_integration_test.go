//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/fazlanhoxton/hxt-events/domain/activity"
	"github.com/fazlanhoxton/hxt-events/infrastructure/config"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
)

func setupKafkaContainer(t *testing.T) (string, func()) {
	ctx := context.Background()

	container, err := kafkamodule.Run(ctx,
		"confluentinc/cp-kafka:7.6.1",
		kafkamodule.WithClusterID("test-cluster"),
	)
	require.NoError(t, err)

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)

	cleanup := func() {
		testcontainers.CleanupContainer(t, container)
	}

	return brokers[0], cleanup
}

func TestIntegration_EnsureTopics_Idempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	broker, cleanup := setupKafkaContainer(t)
	defer cleanup()

	cfg := config.KafkaConfig{Brokers: []string{broker}, Topic: "admin-activity", Partitions: 1, ReplicationFactor: 1}

	require.NoError(t, EnsureTopicsWithConfig(cfg, ActivityTopics(cfg)))
	require.NoError(t, EnsureTopicsWithConfig(cfg, ActivityTopics(cfg)))
}

func TestIntegration_PublishAndConsume(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	broker, cleanup := setupKafkaContainer(t)
	defer cleanup()

	cfg := config.KafkaConfig{Brokers: []string{broker}, Topic: "admin-activity-consume", Partitions: 1, ReplicationFactor: 1}
	require.NoError(t, EnsureTopicsWithConfig(cfg, ActivityTopics(cfg)))
	time.Sleep(500 * time.Millisecond)

	producer := NewProducer(cfg)
	defer producer.Close()

	a := activity.New(activity.KindVenueCreated, "90", "Riverside Hall", time.Now())

	ctx := context.Background()
	require.NoError(t, producer.Publish(ctx, a))

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     cfg.Topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	defer reader.Close()
	require.NoError(t, reader.SetOffset(kafka.FirstOffset))

	readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	msg, err := reader.ReadMessage(readCtx)
	require.NoError(t, err)

	var received activity.Activity
	require.NoError(t, json.Unmarshal(msg.Value, &received))
	assert.Equal(t, a.ActivityID, received.ActivityID)
	assert.Equal(t, activity.KindVenueCreated, received.Kind)
	assert.Equal(t, "90", string(msg.Key))
	assert.Equal(t, activity.KindVenueCreated, headerValue(msg, kindHeader))
}

func TestIntegration_PublishBatch(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	broker, cleanup := setupKafkaContainer(t)
	defer cleanup()

	cfg := config.KafkaConfig{Brokers: []string{broker}, Topic: "admin-activity-batch", Partitions: 1, ReplicationFactor: 1}
	require.NoError(t, EnsureTopicsWithConfig(cfg, ActivityTopics(cfg)))

	producer := NewProducer(cfg)
	defer producer.Close()

	activities := make([]*activity.Activity, 20)
	for i := range activities {
		activities[i] = activity.New(activity.KindEventCreated, fmt.Sprintf("%d", 1000+i), "Bulk", time.Now())
	}

	require.NoError(t, producer.PublishBatch(context.Background(), activities))
}

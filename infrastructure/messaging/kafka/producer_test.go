package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fazlanhoxton/hxt-events/domain/activity"
	"github.com/fazlanhoxton/hxt-events/infrastructure/config"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestActivity() *activity.Activity {
	return activity.New(activity.KindEventCreated, "5531", "Annual Conference", time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
}

func TestNewProducer(t *testing.T) {
	producer := NewProducer(config.KafkaConfig{
		Brokers: []string{"kafka1:9092", "kafka2:9092"},
		Topic:   "admin-activity",
	})
	defer producer.Close()

	require.NotNil(t, producer)
	assert.Equal(t, "admin-activity", producer.topic)
	assert.Equal(t, "admin-activity", producer.writer.Topic)
	assert.True(t, producer.writer.Async)
}

func TestToMessage(t *testing.T) {
	a := createTestActivity()

	msg, err := toMessage(a)

	require.NoError(t, err)
	assert.Equal(t, []byte("5531"), msg.Key)
	assert.Equal(t, activity.KindEventCreated, headerValue(msg, kindHeader))

	var decoded activity.Activity
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, a.ActivityID, decoded.ActivityID)
	assert.Equal(t, "Annual Conference", decoded.Name)
}

func TestHeaderValue_Missing(t *testing.T) {
	assert.Equal(t, "unknown", headerValue(kafka.Message{}, kindHeader))
}

func TestRecordDelivery_DoesNotPanic(t *testing.T) {
	msg, err := toMessage(createTestActivity())
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		recordDelivery([]kafka.Message{msg}, nil)
		recordDelivery([]kafka.Message{msg}, errors.New("broker down"))
	})
}

func TestPublishBatch_Empty(t *testing.T) {
	producer := NewProducer(config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "admin-activity"})
	defer producer.Close()

	assert.NoError(t, producer.PublishBatch(context.Background(), nil))
	assert.NoError(t, producer.PublishBatch(context.Background(), []*activity.Activity{}))
}

func TestProducerClose(t *testing.T) {
	producer := NewProducer(config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "admin-activity"})

	require.NoError(t, producer.Close())
}

func TestNopPublisher(t *testing.T) {
	var p ActivityPublisher = NopPublisher{}

	assert.NoError(t, p.Publish(context.Background(), createTestActivity()))
	assert.NoError(t, p.PublishBatch(context.Background(), []*activity.Activity{createTestActivity()}))
	assert.NoError(t, p.Close())
}

func TestActivityTopics(t *testing.T) {
	topics := ActivityTopics(config.KafkaConfig{Topic: "admin-activity", Partitions: 3})

	assert.Equal(t, []TopicConfig{
		{Name: "admin-activity", Partitions: 3},
		{Name: "admin-activity.retry", Partitions: 1},
		{Name: "admin-activity.dlq", Partitions: 1},
	}, topics)
}

func TestEnsureTopicsWithConfig_NoBrokers(t *testing.T) {
	err := EnsureTopicsWithConfig(config.KafkaConfig{}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no kafka brokers")
}

package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fazlanhoxton/hxt-events/domain/activity"
	"github.com/fazlanhoxton/hxt-events/infrastructure/config"
	"github.com/fazlanhoxton/hxt-events/infrastructure/metrics"
	"github.com/segmentio/kafka-go"
)

const kindHeader = "kind"

// ActivityPublisher ships admin activity records to the broker.
type ActivityPublisher interface {
	Publish(ctx context.Context, a *activity.Activity) error
	PublishBatch(ctx context.Context, activities []*activity.Activity) error
	Close() error
}

type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(cfg config.KafkaConfig) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Completion:   recordDelivery,
	}

	return &Producer{
		writer: writer,
		topic:  cfg.Topic,
	}
}

func recordDelivery(messages []kafka.Message, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		slog.Error("Failed to deliver activity messages", "error", err, "count", len(messages))
	}
	for _, m := range messages {
		metrics.ActivityPublishedTotal.WithLabelValues(headerValue(m, kindHeader), outcome).Inc()
	}
}

func headerValue(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return "unknown"
}

func toMessage(a *activity.Activity) (kafka.Message, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal activity: %w", err)
	}

	return kafka.Message{
		Key:     []byte(a.EntityID),
		Value:   data,
		Headers: []kafka.Header{{Key: kindHeader, Value: []byte(a.Kind)}},
	}, nil
}

func (p *Producer) Publish(ctx context.Context, a *activity.Activity) error {
	msg, err := toMessage(a)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (p *Producer) PublishBatch(ctx context.Context, activities []*activity.Activity) error {
	if len(activities) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(activities))
	for _, a := range activities {
		msg, err := toMessage(a)
		if err != nil {
			return err
		}
		messages = append(messages, msg)
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("failed to write messages: %w", err)
	}

	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every record. Used when the activity pipeline is off.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *activity.Activity) error { return nil }

func (NopPublisher) PublishBatch(context.Context, []*activity.Activity) error { return nil }

func (NopPublisher) Close() error { return nil }

type TopicConfig struct {
	Name       string
	Partitions int
}

// ActivityTopics returns the main topic with its retry and dead-letter
// companions.
func ActivityTopics(cfg config.KafkaConfig) []TopicConfig {
	return []TopicConfig{
		{Name: cfg.Topic, Partitions: cfg.Partitions},
		{Name: cfg.Topic + ".retry", Partitions: 1},
		{Name: cfg.Topic + ".dlq", Partitions: 1},
	}
}

func EnsureTopicsWithConfig(cfg config.KafkaConfig, topics []TopicConfig) error {
	if len(cfg.Brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers[0])
	if err != nil {
		return fmt.Errorf("failed to connect to kafka: %w", err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("failed to get controller: %w", err)
	}

	controllerConn, err := kafka.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	if err != nil {
		return fmt.Errorf("failed to connect to controller: %w", err)
	}
	defer controllerConn.Close()

	topicConfigs := make([]kafka.TopicConfig, 0, len(topics))
	for _, topic := range topics {
		topicConfigs = append(topicConfigs, kafka.TopicConfig{
			Topic:             topic.Name,
			NumPartitions:     topic.Partitions,
			ReplicationFactor: cfg.ReplicationFactor,
		})
	}

	err = controllerConn.CreateTopics(topicConfigs...)
	if err != nil {
		if !errors.Is(err, kafka.TopicAlreadyExists) {
			return fmt.Errorf("failed to create topics: %w", err)
		}
		slog.Info("Activity topics already exist, continuing")
	}

	topicNames := make([]string, len(topics))
	for i, t := range topics {
		topicNames[i] = t.Name
	}
	slog.Info("Ensured topics exist", "topics", topicNames)
	return nil
}

package mocks

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

// MockMessageWriter records what the workers park on the retry and DLQ topics.
type MockMessageWriter struct {
	mock.Mock
}

func (m *MockMessageWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	return m.Called(ctx, msgs).Error(0)
}

// MockOffsetCommitter records offset commits made after a batch flush.
type MockOffsetCommitter struct {
	mock.Mock
}

func (m *MockOffsetCommitter) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	return m.Called(ctx, msgs).Error(0)
}

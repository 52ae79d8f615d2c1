package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/fazlanhoxton/hxt-events/domain/activity"
	kafkago "github.com/segmentio/kafka-go"
)

const (
	retryCountHeader   = "retry_count"
	errorTypeHeader    = "error_type"
	errorMessageHeader = "error_message"

	defaultBatchTimeout = time.Second

	fetchTimeout    = 100 * time.Millisecond
	shutdownTimeout = 5 * time.Second
	writeTimeout    = 10 * time.Second
)

var errIncompleteActivity = errors.New("activity is missing id or kind")

type offsetCommitter interface {
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type messageReader interface {
	offsetCommitter
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

func closeWriters(worker string, writers ...messageWriter) {
	for _, w := range writers {
		c, ok := w.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			slog.Error("Failed to close writer", "worker", worker, "error", err)
		}
	}
}

// batchTimeoutOrDefault keeps the flush ticker valid for zero or negative
// configured timeouts.
func batchTimeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultBatchTimeout
	}
	return d
}

func newWriter(brokers []string, topic string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafkago.RequireOne,
	}
}

func decodeActivity(msg kafkago.Message) (*activity.Activity, error) {
	var a activity.Activity
	if err := json.Unmarshal(msg.Value, &a); err != nil {
		return nil, err
	}
	if a.ActivityID == "" || a.Kind == "" {
		return nil, errIncompleteActivity
	}
	return &a, nil
}

func retryCount(msg kafkago.Message) int {
	for _, h := range msg.Headers {
		if h.Key != retryCountHeader {
			continue
		}
		n, err := strconv.Atoi(string(h.Value))
		if err != nil || n < 1 {
			slog.Warn("Invalid retry count header, using 1", "value", string(h.Value))
			return 1
		}
		return n
	}
	return 1
}

// annotate copies msg with the given headers prepended. Older headers with the
// same keys are dropped.
func annotate(msg kafkago.Message, headers ...kafkago.Header) kafkago.Message {
	replaced := make(map[string]bool, len(headers))
	for _, h := range headers {
		replaced[h.Key] = true
	}

	out := make([]kafkago.Header, 0, len(headers)+len(msg.Headers))
	out = append(out, headers...)
	for _, h := range msg.Headers {
		if !replaced[h.Key] {
			out = append(out, h)
		}
	}

	return kafkago.Message{Key: msg.Key, Value: msg.Value, Headers: out}
}

func failureHeaders(errorType, errorMsg string) []kafkago.Header {
	return []kafkago.Header{
		{Key: errorTypeHeader, Value: []byte(errorType)},
		{Key: errorMessageHeader, Value: []byte(errorMsg)},
		{Key: "failed_at", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
	}
}

func originHeaders(topic string, msg kafkago.Message) []kafkago.Header {
	return []kafkago.Header{
		{Key: "original_topic", Value: []byte(topic)},
		{Key: "original_partition", Value: []byte(strconv.Itoa(msg.Partition))},
		{Key: "original_offset", Value: []byte(strconv.FormatInt(msg.Offset, 10))},
	}
}

func write(ctx context.Context, w messageWriter, target string, msgs []kafkago.Message) {
	if len(msgs) == 0 {
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := w.WriteMessages(writeCtx, msgs...); err != nil {
		slog.Error("Failed to write activity messages", "target", target, "error", err, "count", len(msgs))
		return
	}
	slog.Debug("Wrote activity messages", "target", target, "count", len(msgs))
}

// batchLoop reads messages, accumulates decodable activities and hands full
// or timed-out batches to flush. Undecodable messages go to reject and are
// committed straight away.
type batchLoop struct {
	name         string
	batchSize    int
	batchTimeout time.Duration
	stopCh       <-chan struct{}
	flush        func(ctx context.Context, committer offsetCommitter, batch []*activity.Activity, msgs []kafkago.Message)
	reject       func(ctx context.Context, msg kafkago.Message, err error)
}

func (l *batchLoop) run(ctx context.Context, reader messageReader, workerID int) {
	defer reader.Close()

	slog.Info("Worker started", "worker", l.name, "workerID", workerID)

	batch := make([]*activity.Activity, 0, l.batchSize)
	msgs := make([]kafkago.Message, 0, l.batchSize)
	timeout := batchTimeoutOrDefault(l.batchTimeout)
	ticker := time.NewTicker(timeout)
	defer ticker.Stop()

	drain := func(ctx context.Context) {
		if len(batch) > 0 {
			l.flush(ctx, reader, batch, msgs)
		}
		batch, msgs = batch[:0], msgs[:0]
	}
	drainOnShutdown := func(reason string) {
		slog.Info("Flushing remaining batch", "worker", l.name, "workerID", workerID, "reason", reason)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		drain(shutdownCtx)
	}

	for {
		select {
		case <-ctx.Done():
			drainOnShutdown("context cancelled")
			return

		case <-l.stopCh:
			drainOnShutdown("stop requested")
			return

		case <-ticker.C:
			drain(ctx)

		default:
			fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
			msg, err := reader.FetchMessage(fetchCtx)
			cancel()

			if err != nil {
				if ctx.Err() != nil {
					drainOnShutdown("context cancelled during fetch")
					return
				}
				continue
			}

			a, err := decodeActivity(msg)
			if err != nil {
				slog.Warn("Skipped malformed activity",
					"worker", l.name,
					"workerID", workerID,
					"error", err,
					"partition", msg.Partition,
					"offset", msg.Offset,
				)
				l.reject(ctx, msg, err)
				if commitErr := reader.CommitMessages(ctx, msg); commitErr != nil {
					slog.Error("Offset commit failed", "worker", l.name, "workerID", workerID, "error", commitErr)
				}
				continue
			}

			batch = append(batch, a)
			msgs = append(msgs, msg)

			if len(batch) >= l.batchSize {
				drain(ctx)
				ticker.Reset(timeout)
			}
		}
	}
}

func commit(ctx context.Context, committer offsetCommitter, worker string, msgs []kafkago.Message) {
	if err := committer.CommitMessages(ctx, msgs...); err != nil {
		slog.Error("Offset commit failed", "worker", worker, "error", err, "count", len(msgs))
	}
}

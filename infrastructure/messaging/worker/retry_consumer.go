package worker

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/fazlanhoxton/hxt-events/domain/activity"
	"github.com/fazlanhoxton/hxt-events/infrastructure/config"
	kafkago "github.com/segmentio/kafka-go"
)

const (
	baseRetryDelay = 2 * time.Second
	maxRetryDelay  = 60 * time.Second
)

// RetryWorker drains the retry topic. Each batch waits out an exponential
// backoff keyed on the highest retry count it holds before the insert is
// attempted again.
type RetryWorker struct {
	newReader        func() messageReader
	retryWriter      messageWriter
	dlqWriter        messageWriter
	repository       activity.Repository
	batchSize        int
	batchTimeout     time.Duration
	workerCount      int
	maxRetryAttempts int
	wait             func(ctx context.Context, d time.Duration) bool
	wg               sync.WaitGroup
	stopCh           chan struct{}
	retryTopic       string
	dlqTopic         string
}

func NewRetryWorker(cfg config.KafkaConfig, repository activity.Repository, workerCfg config.WorkerConfig) *RetryWorker {
	retryTopic := cfg.Topic + ".retry"
	dlqTopic := cfg.Topic + ".dlq"

	readerConfig := kafkago.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.ConsumerGroup + "-retry",
		Topic:          retryTopic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0,
	}

	w := &RetryWorker{
		newReader:        func() messageReader { return kafkago.NewReader(readerConfig) },
		retryWriter:      newWriter(cfg.Brokers, retryTopic),
		dlqWriter:        newWriter(cfg.Brokers, dlqTopic),
		repository:       repository,
		batchSize:        max(workerCfg.BatchSize, 1),
		batchTimeout:     batchTimeoutOrDefault(workerCfg.BatchTimeout),
		workerCount:      workerCfg.RetryWorkerCount,
		maxRetryAttempts: workerCfg.MaxRetryAttempts,
		stopCh:           make(chan struct{}),
		retryTopic:       retryTopic,
		dlqTopic:         dlqTopic,
	}
	w.wait = w.sleep
	return w
}

func (w *RetryWorker) Start(ctx context.Context) {
	slog.Info("Starting retry workers", "count", w.workerCount, "retryTopic", w.retryTopic, "dlqTopic", w.dlqTopic)

	l := &batchLoop{
		name:         "retry",
		batchSize:    w.batchSize,
		batchTimeout: w.batchTimeout,
		stopCh:       w.stopCh,
		flush:        w.flush,
		reject:       w.reject,
	}
	for i := 0; i < w.workerCount; i++ {
		w.wg.Add(1)
		go func(id int) {
			defer w.wg.Done()
			l.run(ctx, w.newReader(), id)
		}(i)
	}
}

func (w *RetryWorker) Stop() {
	slog.Info("Stopping retry workers")
	close(w.stopCh)
	w.wg.Wait()

	closeWriters("retry", w.retryWriter, w.dlqWriter)

	slog.Info("All retry workers stopped")
}

// backoff doubles from baseRetryDelay per attempt and caps at maxRetryDelay.
func backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > 6 {
		return maxRetryDelay
	}
	return min(baseRetryDelay<<(attempt-1), maxRetryDelay)
}

func (w *RetryWorker) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	case <-w.stopCh:
		return false
	}
}

func (w *RetryWorker) flush(ctx context.Context, committer offsetCommitter, batch []*activity.Activity, msgs []kafkago.Message) {
	highest := 0
	for _, msg := range msgs {
		highest = max(highest, retryCount(msg))
	}

	delay := backoff(highest)
	slog.Debug("Applying retry backoff", "retryCount", highest, "delay", delay)
	if !w.wait(ctx, delay) {
		// Uncommitted, so the batch is redelivered after restart.
		return
	}

	if err := w.repository.InsertBatch(ctx, batch); err != nil {
		slog.Error("Retry batch insert failed", "error", err, "count", len(batch))

		var requeue, dead []kafkago.Message
		for _, msg := range msgs {
			attempt := retryCount(msg)
			if attempt >= w.maxRetryAttempts {
				headers := append(failureHeaders("max_retries_exhausted", err.Error()),
					kafkago.Header{Key: "final_retry_count", Value: []byte(strconv.Itoa(attempt))})
				dead = append(dead, annotate(msg, headers...))
				continue
			}
			headers := append(failureHeaders("insert_failed", err.Error()),
				kafkago.Header{Key: retryCountHeader, Value: []byte(strconv.Itoa(attempt + 1))})
			requeue = append(requeue, annotate(msg, headers...))
		}

		write(ctx, w.retryWriter, w.retryTopic, requeue)
		write(ctx, w.dlqWriter, w.dlqTopic, dead)
	}

	commit(ctx, committer, "retry", msgs)
}

func (w *RetryWorker) reject(ctx context.Context, msg kafkago.Message, err error) {
	headers := append(failureHeaders("unmarshal_error", err.Error()),
		kafkago.Header{Key: "final_retry_count", Value: []byte(strconv.Itoa(retryCount(msg)))})
	write(ctx, w.dlqWriter, w.dlqTopic, []kafkago.Message{annotate(msg, headers...)})
}

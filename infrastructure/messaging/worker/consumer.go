package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fazlanhoxton/hxt-events/domain/activity"
	"github.com/fazlanhoxton/hxt-events/infrastructure/config"
	kafkago "github.com/segmentio/kafka-go"
)

// ActivityWorker consumes the activity topic and stores batches in the
// activity repository. Failed inserts are parked on the retry topic and
// malformed messages on the dead-letter topic.
type ActivityWorker struct {
	readerConfig kafkago.ReaderConfig
	newReader    func() messageReader
	retryWriter  messageWriter
	dlqWriter    messageWriter
	repository   activity.Repository
	batchSize    int
	batchTimeout time.Duration
	workerCount  int
	wg           sync.WaitGroup
	stopCh       chan struct{}
	retryTopic   string
	dlqTopic     string
}

func NewActivityWorker(cfg config.KafkaConfig, repository activity.Repository, workerCfg config.WorkerConfig) *ActivityWorker {
	readerConfig := kafkago.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.ConsumerGroup,
		Topic:          cfg.Topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0,
	}

	retryTopic := cfg.Topic + ".retry"
	dlqTopic := cfg.Topic + ".dlq"

	return &ActivityWorker{
		readerConfig: readerConfig,
		newReader:    func() messageReader { return kafkago.NewReader(readerConfig) },
		retryWriter:  newWriter(cfg.Brokers, retryTopic),
		dlqWriter:    newWriter(cfg.Brokers, dlqTopic),
		repository:   repository,
		batchSize:    max(workerCfg.BatchSize, 1),
		batchTimeout: batchTimeoutOrDefault(workerCfg.BatchTimeout),
		workerCount:  workerCfg.Count,
		stopCh:       make(chan struct{}),
		retryTopic:   retryTopic,
		dlqTopic:     dlqTopic,
	}
}

func (w *ActivityWorker) loop() *batchLoop {
	return &batchLoop{
		name:         "activity",
		batchSize:    w.batchSize,
		batchTimeout: w.batchTimeout,
		stopCh:       w.stopCh,
		flush:        w.flush,
		reject:       w.reject,
	}
}

func (w *ActivityWorker) Start(ctx context.Context) {
	slog.Info("Starting activity workers", "count", w.workerCount, "retryTopic", w.retryTopic, "dlqTopic", w.dlqTopic)

	l := w.loop()
	for i := 0; i < w.workerCount; i++ {
		w.wg.Add(1)
		go func(id int) {
			defer w.wg.Done()
			l.run(ctx, w.newReader(), id)
		}(i)
	}
}

func (w *ActivityWorker) Stop() {
	slog.Info("Stopping activity workers")
	close(w.stopCh)
	w.wg.Wait()

	closeWriters("activity", w.retryWriter, w.dlqWriter)

	slog.Info("All activity workers stopped")
}

func (w *ActivityWorker) flush(ctx context.Context, committer offsetCommitter, batch []*activity.Activity, msgs []kafkago.Message) {
	slog.Debug("Flushing activity batch", "size", len(batch))

	if err := w.repository.InsertBatch(ctx, batch); err != nil {
		slog.Error("Activity batch insert failed, sending to retry topic", "error", err, "count", len(batch))

		retry := make([]kafkago.Message, 0, len(msgs))
		for _, msg := range msgs {
			headers := append(failureHeaders("insert_failed", err.Error()), originHeaders(w.readerConfig.Topic, msg)...)
			headers = append(headers, kafkago.Header{Key: retryCountHeader, Value: []byte("1")})
			retry = append(retry, annotate(msg, headers...))
		}
		write(ctx, w.retryWriter, w.retryTopic, retry)
	}

	commit(ctx, committer, "activity", msgs)
}

func (w *ActivityWorker) reject(ctx context.Context, msg kafkago.Message, err error) {
	headers := append(failureHeaders("unmarshal_error", err.Error()), originHeaders(w.readerConfig.Topic, msg)...)
	write(ctx, w.dlqWriter, w.dlqTopic, []kafkago.Message{annotate(msg, headers...)})
}

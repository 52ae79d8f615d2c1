package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fazlanhoxton/hxt-events/domain/activity"
	"github.com/fazlanhoxton/hxt-events/mocks"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activityMessage(t *testing.T, entityID string, offset int64) kafkago.Message {
	t.Helper()
	a := activity.New(activity.KindEventCreated, entityID, "Gala "+entityID, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	data, err := json.Marshal(a)
	require.NoError(t, err)
	return kafkago.Message{Key: []byte(entityID), Value: data, Partition: 0, Offset: offset}
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func capture(target *[]kafkago.Message) func(args mock.Arguments) {
	return func(args mock.Arguments) {
		*target = append(*target, args.Get(1).([]kafkago.Message)...)
	}
}

// chanReader serves messages from a channel and records commits.
type chanReader struct {
	msgs      chan kafkago.Message
	mu        sync.Mutex
	committed []kafkago.Message
}

func newChanReader(msgs ...kafkago.Message) *chanReader {
	r := &chanReader{msgs: make(chan kafkago.Message, len(msgs))}
	for _, m := range msgs {
		r.msgs <- m
	}
	return r
}

func (r *chanReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	select {
	case m := <-r.msgs:
		return m, nil
	case <-ctx.Done():
		return kafkago.Message{}, ctx.Err()
	}
}

func (r *chanReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *chanReader) Close() error { return nil }

func (r *chanReader) committedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

func TestDecodeActivity(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		a, err := decodeActivity(activityMessage(t, "42", 0))

		require.NoError(t, err)
		assert.Equal(t, "42", a.EntityID)
		assert.Equal(t, activity.KindEventCreated, a.Kind)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := decodeActivity(kafkago.Message{Value: []byte(`{not json`)})
		assert.Error(t, err)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := decodeActivity(kafkago.Message{Value: []byte(`{"kind":"event.created"}`)})
		assert.ErrorIs(t, err, errIncompleteActivity)
	})
}

func TestRetryCount(t *testing.T) {
	tests := []struct {
		name     string
		headers  []kafkago.Header
		expected int
	}{
		{name: "no headers", expected: 1},
		{name: "present", headers: []kafkago.Header{{Key: retryCountHeader, Value: []byte("3")}}, expected: 3},
		{name: "garbage", headers: []kafkago.Header{{Key: retryCountHeader, Value: []byte("abc")}}, expected: 1},
		{name: "zero", headers: []kafkago.Header{{Key: retryCountHeader, Value: []byte("0")}}, expected: 1},
		{name: "other headers only", headers: []kafkago.Header{{Key: "kind", Value: []byte("event.created")}}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, retryCount(kafkago.Message{Headers: tt.headers}))
		})
	}
}

func TestAnnotate_ReplacesMatchingHeaders(t *testing.T) {
	msg := kafkago.Message{
		Key:   []byte("k"),
		Value: []byte("v"),
		Headers: []kafkago.Header{
			{Key: retryCountHeader, Value: []byte("1")},
			{Key: "kind", Value: []byte("venue.created")},
		},
	}

	out := annotate(msg, kafkago.Header{Key: retryCountHeader, Value: []byte("2")})

	assert.Equal(t, []byte("k"), out.Key)
	assert.Equal(t, []byte("v"), out.Value)
	assert.Len(t, out.Headers, 2)
	assert.Equal(t, "2", header(out, retryCountHeader))
	assert.Equal(t, "venue.created", header(out, "kind"))
}

func newTestActivityWorker(repo *mocks.MockActivityRepository, retry, dlq *mocks.MockMessageWriter) *ActivityWorker {
	return &ActivityWorker{
		readerConfig: kafkago.ReaderConfig{Topic: "admin-activity"},
		retryWriter:  retry,
		dlqWriter:    dlq,
		repository:   repo,
		batchSize:    2,
		batchTimeout: time.Hour,
		workerCount:  1,
		stopCh:       make(chan struct{}),
		retryTopic:   "admin-activity.retry",
		dlqTopic:     "admin-activity.dlq",
	}
}

func TestActivityWorker_Flush_Success(t *testing.T) {
	repo := new(mocks.MockActivityRepository)
	retry := new(mocks.MockMessageWriter)
	committer := new(mocks.MockOffsetCommitter)
	w := newTestActivityWorker(repo, retry, new(mocks.MockMessageWriter))

	msgs := []kafkago.Message{activityMessage(t, "1", 0), activityMessage(t, "2", 1)}
	batch := make([]*activity.Activity, 0, len(msgs))
	for _, m := range msgs {
		a, err := decodeActivity(m)
		require.NoError(t, err)
		batch = append(batch, a)
	}

	repo.On("InsertBatch", mock.Anything, batch).Return(nil)
	committer.On("CommitMessages", mock.Anything, msgs).Return(nil)

	w.flush(context.Background(), committer, batch, msgs)

	repo.AssertExpectations(t)
	committer.AssertExpectations(t)
	retry.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestActivityWorker_Flush_InsertFailureGoesToRetry(t *testing.T) {
	repo := new(mocks.MockActivityRepository)
	retry := new(mocks.MockMessageWriter)
	committer := new(mocks.MockOffsetCommitter)
	w := newTestActivityWorker(repo, retry, new(mocks.MockMessageWriter))

	msgs := []kafkago.Message{activityMessage(t, "1", 7)}
	a, err := decodeActivity(msgs[0])
	require.NoError(t, err)

	var written []kafkago.Message
	repo.On("InsertBatch", mock.Anything, mock.Anything).Return(errors.New("clickhouse down"))
	retry.On("WriteMessages", mock.Anything, mock.Anything).Run(capture(&written)).Return(nil)
	committer.On("CommitMessages", mock.Anything, msgs).Return(nil)

	w.flush(context.Background(), committer, []*activity.Activity{a}, msgs)

	require.Len(t, written, 1)
	assert.Equal(t, msgs[0].Value, written[0].Value)
	assert.Equal(t, "1", header(written[0], retryCountHeader))
	assert.Equal(t, "insert_failed", header(written[0], errorTypeHeader))
	assert.Equal(t, "clickhouse down", header(written[0], errorMessageHeader))
	assert.Equal(t, "admin-activity", header(written[0], "original_topic"))
	assert.Equal(t, "7", header(written[0], "original_offset"))
	committer.AssertExpectations(t)
}

func TestActivityWorker_Reject_SendsToDLQ(t *testing.T) {
	dlq := new(mocks.MockMessageWriter)
	w := newTestActivityWorker(new(mocks.MockActivityRepository), new(mocks.MockMessageWriter), dlq)

	var written []kafkago.Message
	dlq.On("WriteMessages", mock.Anything, mock.Anything).Run(capture(&written)).Return(nil)

	w.reject(context.Background(), kafkago.Message{Value: []byte(`bad`), Partition: 1, Offset: 100}, errors.New("invalid json"))

	require.Len(t, written, 1)
	assert.Equal(t, "unmarshal_error", header(written[0], errorTypeHeader))
	assert.Equal(t, "1", header(written[0], "original_partition"))
	assert.Equal(t, "100", header(written[0], "original_offset"))
}

func TestActivityWorker_Reject_WriteErrorIsSwallowed(t *testing.T) {
	dlq := new(mocks.MockMessageWriter)
	w := newTestActivityWorker(new(mocks.MockActivityRepository), new(mocks.MockMessageWriter), dlq)

	dlq.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("dlq write failed"))

	assert.NotPanics(t, func() {
		w.reject(context.Background(), kafkago.Message{Value: []byte(`bad`)}, errors.New("invalid json"))
	})
	dlq.AssertExpectations(t)
}

func TestBatchLoop_FlushesFullBatchAndRejectsMalformed(t *testing.T) {
	reader := newChanReader(
		kafkago.Message{Value: []byte(`{oops`), Offset: 0},
		activityMessage(t, "1", 1),
		activityMessage(t, "2", 2),
	)

	var mu sync.Mutex
	var flushed [][]*activity.Activity
	var rejected int
	stopCh := make(chan struct{})

	l := &batchLoop{
		name:         "test",
		batchSize:    2,
		batchTimeout: time.Hour,
		stopCh:       stopCh,
		flush: func(ctx context.Context, c offsetCommitter, batch []*activity.Activity, msgs []kafkago.Message) {
			mu.Lock()
			defer mu.Unlock()
			flushed = append(flushed, append([]*activity.Activity(nil), batch...))
			_ = c.CommitMessages(ctx, msgs...)
		},
		reject: func(context.Context, kafkago.Message, error) {
			mu.Lock()
			defer mu.Unlock()
			rejected++
		},
	}

	done := make(chan struct{})
	go func() {
		l.run(context.Background(), reader, 0)
		close(done)
	}()

	require.Eventually(t, func() bool { return reader.committedCount() == 3 }, 2*time.Second, 5*time.Millisecond)
	close(stopCh)
	<-done

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, flushed, 1)
	assert.Len(t, flushed[0], 2)
	assert.Equal(t, "1", flushed[0][0].EntityID)
	assert.Equal(t, "2", flushed[0][1].EntityID)
	assert.Equal(t, 1, rejected)
}

func TestBatchLoop_FlushesPartialBatchOnStop(t *testing.T) {
	reader := newChanReader(activityMessage(t, "9", 0))

	var mu sync.Mutex
	var flushedSize int
	stopCh := make(chan struct{})

	l := &batchLoop{
		name:         "test",
		batchSize:    10,
		batchTimeout: time.Hour,
		stopCh:       stopCh,
		flush: func(_ context.Context, _ offsetCommitter, batch []*activity.Activity, _ []kafkago.Message) {
			mu.Lock()
			defer mu.Unlock()
			flushedSize += len(batch)
		},
		reject: func(context.Context, kafkago.Message, error) {},
	}

	done := make(chan struct{})
	go func() {
		l.run(context.Background(), reader, 0)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(reader.msgs) == 0 }, 2*time.Second, 5*time.Millisecond)
	close(stopCh)
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, flushedSize)
}

func TestBatchLoop_ZeroTimeoutFlushesOnDefaultTick(t *testing.T) {
	reader := newChanReader(activityMessage(t, "5", 0))

	var flushedSize atomic.Int32
	stopCh := make(chan struct{})

	l := &batchLoop{
		name:         "test",
		batchSize:    10,
		batchTimeout: 0,
		stopCh:       stopCh,
		flush: func(_ context.Context, _ offsetCommitter, batch []*activity.Activity, _ []kafkago.Message) {
			flushedSize.Add(int32(len(batch)))
		},
		reject: func(context.Context, kafkago.Message, error) {},
	}

	done := make(chan struct{})
	go func() {
		l.run(context.Background(), reader, 0)
		close(done)
	}()

	require.Eventually(t, func() bool { return flushedSize.Load() == 1 }, 3*defaultBatchTimeout, 10*time.Millisecond)
	close(stopCh)
	<-done
}

type closingWriter struct {
	mocks.MockMessageWriter
	closed bool
}

func (w *closingWriter) Close() error {
	w.closed = true
	return errors.New("already closed")
}

func TestCloseWriters(t *testing.T) {
	closing := &closingWriter{}
	plain := new(mocks.MockMessageWriter)

	assert.NotPanics(t, func() { closeWriters("activity", plain, closing) })
	assert.True(t, closing.closed)
	plain.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

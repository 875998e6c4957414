package kafka

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventMessage(t *testing.T, topic string, offset int64) kafka.Message {
	t.Helper()
	ev, err := NewEvent("laptop.updated", "laptop", "lap-1", "catalog", map[string]string{"id": "lap-1"})
	require.NoError(t, err)
	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	return kafka.Message{Topic: topic, Offset: offset, Value: raw}
}

func runUntilDrained(t *testing.T, c *Consumer, r *fakeReader, want int) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	assert.Eventually(t, func() bool {
		r.mu.Lock()
		defer r.mu.Unlock()
		return len(r.committed) == want
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestConsumer_CommitsAfterSuccess(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{eventMessage(t, "a", 1), eventMessage(t, "a", 2)}}
	var calls atomic.Int32
	c := NewConsumerWithReader(r, ConsumerConfig{GroupID: "g"}, func(context.Context, *Event) error {
		calls.Add(1)
		return nil
	}, nil, discardLogger())

	runUntilDrained(t, c, r, 2)
	assert.EqualValues(t, 2, calls.Load())
}

func TestConsumer_RetriesThenDeadLetters(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{eventMessage(t, "ecommerce.catalog.laptop.updated", 9)}}
	w := &fakeWriter{}
	dlq := NewDeadLetterQueueWithWriter(w, discardLogger())

	var calls atomic.Int32
	c := NewConsumerWithReader(r, ConsumerConfig{GroupID: "cache", RetryBackoff: time.Millisecond}, func(context.Context, *Event) error {
		calls.Add(1)
		return errBoom
	}, dlq, discardLogger())

	runUntilDrained(t, c, r, 1)
	assert.EqualValues(t, defaultMaxAttempts, calls.Load())

	require.Len(t, w.msgs, 1)
	dead := w.msgs[0]
	assert.Equal(t, "ecommerce.dlq.ecommerce.catalog.laptop.updated", dead.Topic)
	assert.Equal(t, "9", headerValue(dead, "dlq.original_offset"))
	assert.Equal(t, "cache", headerValue(dead, "dlq.consumer_group"))
	assert.Equal(t, "boom", headerValue(dead, "dlq.error"))
}

func TestConsumer_RecoversAfterTransientFailure(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{eventMessage(t, "a", 1)}}
	w := &fakeWriter{}
	var calls atomic.Int32
	c := NewConsumerWithReader(r, ConsumerConfig{GroupID: "g", RetryBackoff: time.Millisecond}, func(context.Context, *Event) error {
		if calls.Add(1) == 1 {
			return errBoom
		}
		return nil
	}, NewDeadLetterQueueWithWriter(w, discardLogger()), discardLogger())

	runUntilDrained(t, c, r, 1)
	assert.EqualValues(t, 2, calls.Load())
	assert.Empty(t, w.msgs)
}

func TestConsumer_SkipsMalformed(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{{Topic: "a", Value: []byte("garbage")}}}
	var calls atomic.Int32
	c := NewConsumerWithReader(r, ConsumerConfig{GroupID: "g"}, func(context.Context, *Event) error {
		calls.Add(1)
		return nil
	}, nil, discardLogger())

	runUntilDrained(t, c, r, 1)
	assert.Zero(t, calls.Load())
}

func TestConsumer_CloseOnce(t *testing.T) {
	r := &fakeReader{}
	c := NewConsumerWithReader(r, ConsumerConfig{}, nil, nil, discardLogger())
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, 1, r.closed)
}

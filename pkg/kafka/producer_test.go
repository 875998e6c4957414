package kafka

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestPublish_WritesKeyedMessage(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, nil, discardLogger())

	ev, err := NewEvent("order.created", "order", "ord-7", "order", map[string]string{"status": "pending"})
	require.NoError(t, err)
	ev.WithCorrelationID("corr-1")

	require.NoError(t, p.Publish(context.Background(), Topic("order", "created"), ev))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "ecommerce.order.created", msg.Topic)
	assert.Equal(t, "ord-7", string(msg.Key))
	assert.Equal(t, "order.created", headerValue(msg, "event_type"))
	assert.Equal(t, "corr-1", headerValue(msg, "correlation_id"))

	decoded, err := DecodeEvent(msg.Value)
	require.NoError(t, err)
	assert.Equal(t, ev.ID, decoded.ID)
}

func TestPublish_InjectsTraceContext(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	w := &fakeWriter{}
	p := NewProducerWithWriter(w, nil, discardLogger())
	ev, err := NewEvent("contact.submitted", "contact", "c1", "contact", struct{}{})
	require.NoError(t, err)
	require.NoError(t, p.Publish(ctx, "t", ev))

	assert.Contains(t, headerValue(w.msgs[0], "traceparent"), span.SpanContext().TraceID().String())
}

func TestPublish_WriterError(t *testing.T) {
	w := &fakeWriter{err: errBoom}
	p := NewProducerWithWriter(w, nil, discardLogger())
	ev, err := NewEvent("x", "y", "z", "s", nil)
	require.NoError(t, err)

	err = p.Publish(context.Background(), "t", ev)
	assert.ErrorIs(t, err, errBoom)
}

func TestPingBrokers_NoneConfigured(t *testing.T) {
	assert.Error(t, PingBrokers(context.Background(), nil))
}

func TestProducerClose(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, NewProducerWithWriter(w, nil, discardLogger()).Close())
	assert.True(t, w.closed)
}

package kafka

import (
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestHeaderCarrier(t *testing.T) {
	msg := kafka.Message{Headers: []kafka.Header{{Key: "event_type", Value: []byte("a")}}}
	c := NewHeaderCarrier(&msg)

	assert.Equal(t, "a", c.Get("event_type"))
	assert.Equal(t, "", c.Get("missing"))

	c.Set("traceparent", "00-abc")
	c.Set("event_type", "b")

	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "b", c.Get("event_type"))
	assert.ElementsMatch(t, []string{"event_type", "traceparent"}, c.Keys())
}

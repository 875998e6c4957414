package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// DeadLetterTopic names the dead-letter topic for a source topic.
func DeadLetterTopic(topic string) string {
	return TopicPrefix + ".dlq." + topic
}

// DeadLetterQueue parks messages a consumer gave up on.
type DeadLetterQueue struct {
	writer MessageWriter
	logger *slog.Logger
}

// NewDeadLetterQueue creates a synchronous, single-message writer.
func NewDeadLetterQueue(brokers []string, logger *slog.Logger) *DeadLetterQueue {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchSize:              1,
		BatchTimeout:           100 * time.Millisecond,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return NewDeadLetterQueueWithWriter(w, logger)
}

// NewDeadLetterQueueWithWriter wraps an existing writer.
func NewDeadLetterQueueWithWriter(w MessageWriter, logger *slog.Logger) *DeadLetterQueue {
	return &DeadLetterQueue{writer: w, logger: logger}
}

// Publish copies msg to its dead-letter topic. Origin and failure details are
// carried as dlq.* headers.
func (d *DeadLetterQueue) Publish(ctx context.Context, msg kafka.Message, cause error, group string) error {
	topic := DeadLetterTopic(msg.Topic)

	headers := make([]kafka.Header, 0, len(msg.Headers)+5)
	headers = append(headers, msg.Headers...)
	headers = append(headers,
		kafka.Header{Key: "dlq.original_topic", Value: []byte(msg.Topic)},
		kafka.Header{Key: "dlq.original_partition", Value: []byte(strconv.Itoa(msg.Partition))},
		kafka.Header{Key: "dlq.original_offset", Value: []byte(strconv.FormatInt(msg.Offset, 10))},
		kafka.Header{Key: "dlq.consumer_group", Value: []byte(group)},
	)
	if cause != nil {
		headers = append(headers, kafka.Header{Key: "dlq.error", Value: []byte(cause.Error())})
	}

	err := d.writer.WriteMessages(ctx, kafka.Message{
		Topic:   topic,
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	d.logger.WarnContext(ctx, "message dead-lettered",
		slog.String("topic", msg.Topic),
		slog.String("dlq_topic", topic),
		slog.Int64("offset", msg.Offset),
	)
	return nil
}

// Close closes the writer.
func (d *DeadLetterQueue) Close() error {
	return d.writer.Close()
}

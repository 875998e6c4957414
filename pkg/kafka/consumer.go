package kafka

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Humanoid-1/Web-backend/pkg/logger"
)

const defaultMaxAttempts = 3

// Handler processes one decoded event.
type Handler func(ctx context.Context, event *Event) error

// MessageReader is satisfied by *kafka.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ConsumerConfig holds Kafka consumer configuration.
type ConsumerConfig struct {
	Brokers []string
	GroupID string
	Topics  []string
	// MaxAttempts bounds handler calls per message; 0 means 3.
	MaxAttempts int
	// RetryBackoff is multiplied by the attempt number between retries.
	RetryBackoff time.Duration
}

// Consumer reads events for a consumer group and hands them to a Handler.
// Messages are committed after success, after being dead-lettered, or when
// they cannot be decoded.
type Consumer struct {
	reader      MessageReader
	handler     Handler
	dlq         *DeadLetterQueue
	group       string
	maxAttempts int
	backoff     time.Duration
	logger      *slog.Logger
	closeOnce   sync.Once
}

// NewConsumer creates a consumer over a kafka-go group reader.
func NewConsumer(cfg ConsumerConfig, handler Handler, dlq *DeadLetterQueue, logger *slog.Logger) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		GroupTopics: cfg.Topics,
		MinBytes:    1,
		MaxBytes:    10e6,
	})
	return NewConsumerWithReader(r, cfg, handler, dlq, logger)
}

// NewConsumerWithReader creates a consumer over an existing reader.
func NewConsumerWithReader(r MessageReader, cfg ConsumerConfig, handler Handler, dlq *DeadLetterQueue, logger *slog.Logger) *Consumer {
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	backoff := cfg.RetryBackoff
	if backoff == 0 {
		backoff = 100 * time.Millisecond
	}
	return &Consumer{
		reader:      r,
		handler:     handler,
		dlq:         dlq,
		group:       cfg.GroupID,
		maxAttempts: attempts,
		backoff:     backoff,
		logger:      logger,
	}
}

// Run consumes until ctx is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("consumer started", slog.String("group", c.group))
	defer c.logger.Info("consumer stopped", slog.String("group", c.group))

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.Error("fetch message failed", slog.String("error", err.Error()))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.backoff):
			}
			continue
		}

		c.process(ctx, msg)
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *Consumer) process(ctx context.Context, msg kafka.Message) {
	start := time.Now()
	defer func() {
		consumerDuration.WithLabelValues(msg.Topic, c.group).Observe(time.Since(start).Seconds())
	}()

	ctx = otel.GetTextMapPropagator().Extract(ctx, NewHeaderCarrier(&msg))
	ctx, span := otel.Tracer("github.com/Humanoid-1/Web-backend/kafka").Start(ctx, msg.Topic+" process",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", msg.Topic),
			attribute.String("messaging.kafka.consumer.group", c.group),
		),
	)
	defer span.End()

	event, err := DecodeEvent(msg.Value)
	if err != nil {
		consumerProcessed.WithLabelValues(msg.Topic, c.group, "malformed").Inc()
		c.logger.ErrorContext(ctx, "malformed message skipped",
			slog.String("topic", msg.Topic),
			slog.Int64("offset", msg.Offset),
			slog.String("error", err.Error()),
		)
		c.commit(ctx, msg)
		return
	}

	if event.CorrelationID != "" {
		ctx = logger.WithCorrelationID(ctx, event.CorrelationID)
	}

	lastErr := c.handle(ctx, event, msg)
	if lastErr == nil {
		consumerProcessed.WithLabelValues(msg.Topic, c.group, "ok").Inc()
		c.commit(ctx, msg)
		return
	}
	if ctx.Err() != nil {
		// Left uncommitted so the group redelivers it.
		return
	}

	consumerProcessed.WithLabelValues(msg.Topic, c.group, "failed").Inc()
	span.RecordError(lastErr)
	span.SetStatus(codes.Error, lastErr.Error())
	c.logger.ErrorContext(ctx, "handler exhausted retries",
		slog.String("event_type", event.Type),
		slog.String("aggregate_id", event.AggregateID),
		slog.Int("attempts", c.maxAttempts),
		slog.String("error", lastErr.Error()),
	)

	if c.dlq != nil {
		if err := c.dlq.Publish(ctx, msg, lastErr, c.group); err != nil {
			c.logger.ErrorContext(ctx, "dead-letter publish failed", slog.String("error", err.Error()))
		}
	}
	c.commit(ctx, msg)
}

func (c *Consumer) handle(ctx context.Context, event *Event, msg kafka.Message) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		lastErr = c.handler(ctx, event)
		if lastErr == nil {
			return nil
		}
		c.logger.WarnContext(ctx, "handler failed",
			slog.String("event_type", event.Type),
			slog.String("topic", msg.Topic),
			slog.Int64("offset", msg.Offset),
			slog.Int("attempt", attempt),
			slog.String("error", lastErr.Error()),
		)
		if attempt == c.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * c.backoff):
		}
	}
	return lastErr
}

func (c *Consumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.ErrorContext(ctx, "commit failed",
			slog.String("topic", msg.Topic),
			slog.Int64("offset", msg.Offset),
			slog.String("error", err.Error()),
		)
	}
}

// Close closes the reader. Safe to call more than once.
func (c *Consumer) Close() error {
	var err error
	c.closeOnce.Do(func() { err = c.reader.Close() })
	return err
}

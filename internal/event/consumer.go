package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/Humanoid-1/Web-backend/pkg/kafka"
)

// Invalidator drops cached facets of an entity.
type Invalidator interface {
	Invalidate(ctx context.Context, entity string) error
}

// CatalogHandler returns a handler that invalidates the facet cache for the
// entity named in a catalog event. Writes made by other instances reach this
// instance's cache only through here.
func CatalogHandler(cache Invalidator, logger *slog.Logger) pkgkafka.Handler {
	return func(ctx context.Context, evt *pkgkafka.Event) error {
		var data CatalogChangedData
		if err := evt.DecodeData(&data); err != nil {
			return err
		}
		if data.Entity == "" {
			data.Entity = evt.AggregateType
		}
		if data.Entity == "" {
			return fmt.Errorf("catalog event %s: missing entity", evt.ID)
		}

		if err := cache.Invalidate(ctx, data.Entity); err != nil {
			return fmt.Errorf("invalidate %s facets: %w", data.Entity, err)
		}

		logger.DebugContext(ctx, "facets invalidated",
			slog.String("entity", data.Entity),
			slog.String("event_type", evt.Type),
			slog.String("id", data.ID),
		)
		return nil
	}
}

// NewCatalogConsumer wires CatalogHandler behind deduplication and a dead letter
// queue on every catalog topic.
func NewCatalogConsumer(
	cfg pkgkafka.ConsumerConfig,
	cache Invalidator,
	store pkgkafka.IdempotencyStore,
	dlq *pkgkafka.DeadLetterQueue,
	logger *slog.Logger,
) *pkgkafka.Consumer {
	cfg.Topics = CatalogTopics()
	handler := pkgkafka.Deduplicate(store, CatalogHandler(cache, logger), logger)
	return pkgkafka.NewConsumer(cfg, handler, dlq, logger)
}

package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Humanoid-1/Web-backend/pkg/logger"
	"github.com/Humanoid-1/Web-backend/pkg/tracing"
)

// Store is the persistence collaborator. Predicates are pushed down to it.
type Store[T any] interface {
	Find(ctx context.Context, p Predicate) ([]T, error)
	Count(ctx context.Context, p Predicate) (int, error)
}

// WindowStore can return one window of a predicate's matches in scan order.
// The engine uses it when there is nothing to rank.
type WindowStore[T any] interface {
	FindWindow(ctx context.Context, p Predicate, offset, limit int) ([]T, error)
}

// Query is one search request.
type Query struct {
	Text    string
	Filters map[string]string
	Page    int
	Limit   int
}

// NewQuery returns a query for text with default pagination.
func NewQuery(text string) Query {
	return Query{Text: text, Filters: map[string]string{}, Page: DefaultPage, Limit: DefaultLimit}
}

// With returns a copy of q with filter name set to value.
func (q Query) With(name, value string) Query {
	filters := make(map[string]string, len(q.Filters)+1)
	for k, v := range q.Filters {
		filters[k] = v
	}
	filters[name] = value
	q.Filters = filters
	return q
}

// Engine runs ranked search for one entity type.
type Engine[T any] struct {
	schema   *Schema[T]
	store    Store[T]
	decorate func(*T)
	logger   *slog.Logger
}

// Option configures an Engine.
type Option[T any] func(*Engine[T])

// WithDecorator applies fn to every returned record, after ranking.
func WithDecorator[T any](fn func(*T)) Option[T] {
	return func(e *Engine[T]) { e.decorate = fn }
}

// NewEngine creates an engine over store.
func NewEngine[T any](schema *Schema[T], store Store[T], logger *slog.Logger, opts ...Option[T]) *Engine[T] {
	e := &Engine[T]{schema: schema, store: store, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Schema returns the engine's schema.
func (e *Engine[T]) Schema() *Schema[T] { return e.schema }

// Search tokenizes q.Text, builds the predicate, counts and fetches the
// candidates, ranks them by relevance and returns the requested page. Store
// errors are returned wrapped.
func (e *Engine[T]) Search(ctx context.Context, q Query) (_ *Result[T], err error) {
	if err := ValidatePage(q.Page, q.Limit); err != nil {
		return nil, err
	}

	entity := e.schema.Entity()
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "search."+entity,
		attribute.String("search.entity", entity),
		attribute.Int("search.page", q.Page),
		attribute.Int("search.limit", q.Limit),
	)
	defer func() {
		tracing.End(span, err)
		observe(entity, start, err)
	}()

	tokens := Tokenize(q.Text)
	pred, err := e.schema.Filter().Build(q.Filters, tokens)
	if err != nil {
		return nil, err
	}

	total, err := e.store.Count(ctx, pred)
	if err != nil {
		return nil, fmt.Errorf("count %s candidates: %w", entity, err)
	}

	var data []T
	if ws, ok := e.store.(WindowStore[T]); ok && len(tokens) == 0 {
		data, err = ws.FindWindow(ctx, pred, Offset(q.Page, q.Limit), q.Limit)
		if err != nil {
			return nil, fmt.Errorf("find %s window: %w", entity, err)
		}
	} else {
		records, err := e.store.Find(ctx, pred)
		if err != nil {
			return nil, fmt.Errorf("find %s candidates: %w", entity, err)
		}
		ranked := e.schema.Scorer().ScoreAll(records, tokens)
		Rank(ranked)
		data = Window(ranked, q.Page, q.Limit)
	}

	if e.decorate != nil {
		for i := range data {
			e.decorate(&data[i])
		}
	}

	span.SetAttributes(attribute.Int("search.total", total))
	logger.WithContext(ctx, e.logger).DebugContext(ctx, "search completed",
		slog.String("entity", entity),
		slog.Int("tokens", len(tokens)),
		slog.String("predicate", pred.String()),
		slog.Int("total", total),
		slog.Int("returned", len(data)),
	)
	return NewResult(data, total, q.Page, q.Limit), nil
}

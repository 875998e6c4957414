// Package cache holds Redis-backed caches used by the catalog.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const facetPrefix = "facets:"

// Loader reads a facet's values from the source of truth.
type Loader func(ctx context.Context) ([]string, error)

// FacetCache stores distinct-value lists (cpus, brands, categories...) per
// entity. Redis failures degrade to the loader; they never fail a request.
type FacetCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewFacetCache creates a facet cache whose entries live for ttl.
func NewFacetCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *FacetCache {
	return &FacetCache{client: client, ttl: ttl, logger: logger}
}

func facetKey(entity, field string) string {
	return facetPrefix + entity + ":" + field
}

// Get returns the cached values; ok is false on a miss.
func (c *FacetCache) Get(ctx context.Context, entity, field string) (values []string, ok bool, err error) {
	data, err := c.client.Get(ctx, facetKey(entity, field)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get facet: %w", err)
	}

	if err := json.Unmarshal(data, &values); err != nil {
		return nil, false, fmt.Errorf("unmarshal facet: %w", err)
	}
	return values, true, nil
}

// Set stores values with the configured TTL.
func (c *FacetCache) Set(ctx context.Context, entity, field string, values []string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal facet: %w", err)
	}
	if err := c.client.Set(ctx, facetKey(entity, field), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set facet: %w", err)
	}
	return nil
}

// Facets returns the cached values or loads and caches them.
func (c *FacetCache) Facets(ctx context.Context, entity, field string, load Loader) ([]string, error) {
	values, ok, err := c.Get(ctx, entity, field)
	if err != nil {
		c.logger.WarnContext(ctx, "facet cache read failed",
			slog.String("entity", entity),
			slog.String("field", field),
			slog.String("error", err.Error()),
		)
	}
	if ok {
		return values, nil
	}

	values, err = load(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.Set(ctx, entity, field, values); err != nil {
		c.logger.WarnContext(ctx, "facet cache write failed",
			slog.String("entity", entity),
			slog.String("field", field),
			slog.String("error", err.Error()),
		)
	}
	return values, nil
}

// Invalidate drops every cached facet of entity.
func (c *FacetCache) Invalidate(ctx context.Context, entity string) error {
	iter := c.client.Scan(ctx, 0, facetPrefix+entity+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan facets: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del facets: %w", err)
	}
	return nil
}

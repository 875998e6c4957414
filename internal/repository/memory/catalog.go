// Package memory provides in-process repositories, used to run the search
// engine and catalog services without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/internal/search"
	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
)

// Catalog is a CatalogRepository kept in memory. Predicates are evaluated with
// the entity schema; records are returned in insertion order.
type Catalog[T any] struct {
	mu      sync.RWMutex
	schema  *search.Schema[T]
	id      func(*T) string
	order   []string
	records map[string]T
}

// NewCatalog creates an empty store.
func NewCatalog[T any](schema *search.Schema[T], id func(*T) string) *Catalog[T] {
	return &Catalog[T]{schema: schema, id: id, records: make(map[string]T)}
}

// NewLaptops creates an empty laptop store.
func NewLaptops() *Catalog[domain.Laptop] {
	return NewCatalog(search.LaptopSchema, func(l *domain.Laptop) string { return l.ID })
}

// NewAccessories creates an empty accessory store.
func NewAccessories() *Catalog[domain.Accessory] {
	return NewCatalog(search.AccessorySchema, func(a *domain.Accessory) string { return a.ID })
}

// NewParts creates an empty part store.
func NewParts() *Catalog[domain.Part] {
	return NewCatalog(search.PartSchema, func(p *domain.Part) string { return p.ID })
}

func (c *Catalog[T]) match(p search.Predicate) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []T{}
	for _, id := range c.order {
		rec := c.records[id]
		if c.schema.Match(p, rec) {
			out = append(out, rec)
		}
	}
	return out
}

func (c *Catalog[T]) Find(ctx context.Context, p search.Predicate) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.match(p), nil
}

func (c *Catalog[T]) FindWindow(ctx context.Context, p search.Predicate, offset, limit int) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all := c.match(p)
	start, end := search.Bounds(offset, limit, len(all))
	return all[start:end], nil
}

func (c *Catalog[T]) Count(ctx context.Context, p search.Predicate) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(c.match(p)), nil
}

func (c *Catalog[T]) Create(_ context.Context, rec *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.id(rec)
	if _, ok := c.records[id]; ok {
		return apperrors.AlreadyExists(c.schema.Entity(), "id", id)
	}
	c.records[id] = *rec
	c.order = append(c.order, id)
	return nil
}

func (c *Catalog[T]) GetByID(_ context.Context, id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.records[id]
	if !ok {
		return nil, apperrors.NotFound(c.schema.Entity(), id)
	}
	return &rec, nil
}

func (c *Catalog[T]) Update(_ context.Context, rec *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.id(rec)
	if _, ok := c.records[id]; !ok {
		return apperrors.NotFound(c.schema.Entity(), id)
	}
	c.records[id] = *rec
	return nil
}

func (c *Catalog[T]) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.records[id]; !ok {
		return apperrors.NotFound(c.schema.Entity(), id)
	}
	delete(c.records, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *Catalog[T]) Distinct(_ context.Context, field string) ([]string, error) {
	f, ok := c.schema.Field(field)
	if !ok || f.Kind != search.Scalar {
		return nil, fmt.Errorf("distinct: %q is not a scalar text field", field)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	values := []string{}
	for _, rec := range c.records {
		v, _ := f.Text(rec)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

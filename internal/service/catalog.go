package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Humanoid-1/Web-backend/internal/cache"
	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/internal/event"
	"github.com/Humanoid-1/Web-backend/internal/media"
	"github.com/Humanoid-1/Web-backend/internal/repository"
	"github.com/Humanoid-1/Web-backend/internal/search"
	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
	"github.com/Humanoid-1/Web-backend/pkg/pagination"
)

// Record is the pointer form of a catalog entity.
type Record[T any] interface {
	*T
	Key() string
	SetKey(id string)
	Created() time.Time
	Stamp(created, updated time.Time)
	Normalize()
	Validate() error
}

// FacetCache caches distinct-value lists per entity. *cache.FacetCache
// implements it.
type FacetCache interface {
	Facets(ctx context.Context, entity, field string, load cache.Loader) ([]string, error)
	Invalidate(ctx context.Context, entity string) error
}

// CatalogDeps are the collaborators of a CatalogService.
type CatalogDeps[T any] struct {
	Entity   string
	Repo     repository.CatalogRepository[T]
	Engine   *search.Engine[T]
	Facets   FacetCache // optional
	Producer *event.Producer
	// Decorate is applied to every record returned to callers.
	Decorate func(*T)
	Logger   *slog.Logger
}

// CatalogService implements create, read, update, delete, listing and facets
// for one catalog entity.
type CatalogService[T any, P Record[T]] struct {
	entity   string
	repo     repository.CatalogRepository[T]
	engine   *search.Engine[T]
	facets   FacetCache
	producer *event.Producer
	decorate func(*T)
	logger   *slog.Logger
	now      func() time.Time
}

type (
	LaptopService    = CatalogService[domain.Laptop, *domain.Laptop]
	AccessoryService = CatalogService[domain.Accessory, *domain.Accessory]
	PartService      = CatalogService[domain.Part, *domain.Part]
)

// NewCatalogService creates a catalog service.
func NewCatalogService[T any, P Record[T]](deps CatalogDeps[T]) *CatalogService[T, P] {
	decorate := deps.Decorate
	if decorate == nil {
		decorate = func(*T) {}
	}
	return &CatalogService[T, P]{
		entity:   deps.Entity,
		repo:     deps.Repo,
		engine:   deps.Engine,
		facets:   deps.Facets,
		producer: deps.Producer,
		decorate: decorate,
		logger:   deps.Logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Entity returns the entity name.
func (s *CatalogService[T, P]) Entity() string { return s.entity }

// Create stores a new record with a fresh id.
func (s *CatalogService[T, P]) Create(ctx context.Context, rec P) (*T, error) {
	rec.Normalize()
	if err := rec.Validate(); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	now := s.now()
	rec.SetKey(uuid.NewString())
	rec.Stamp(now, now)

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create %s: %w", s.entity, err)
	}
	s.changed(ctx, event.ActionCreated, rec)

	s.logger.InfoContext(ctx, s.entity+" created", slog.String("id", rec.Key()))
	return s.view(rec), nil
}

// Get returns one record.
func (s *CatalogService[T, P]) Get(ctx context.Context, id string) (*T, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.entity, err)
	}
	s.decorate(rec)
	return rec, nil
}

// Update replaces the record id with rec, keeping its creation time.
func (s *CatalogService[T, P]) Update(ctx context.Context, id string, rec P) (*T, error) {
	rec.Normalize()
	if err := rec.Validate(); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.entity, err)
	}

	rec.SetKey(id)
	rec.Stamp(P(existing).Created(), s.now())
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("update %s: %w", s.entity, err)
	}
	s.changed(ctx, event.ActionUpdated, rec)

	s.logger.InfoContext(ctx, s.entity+" updated", slog.String("id", id))
	return s.view(rec), nil
}

// Delete removes a record.
func (s *CatalogService[T, P]) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s: %w", s.entity, err)
	}
	s.changed(ctx, event.ActionDeleted, nil)
	s.producer.CatalogChanged(ctx, s.entity, event.ActionDeleted, id, nil)

	s.logger.InfoContext(ctx, s.entity+" deleted", slog.String("id", id))
	return nil
}

// List runs q through the search engine and reshapes the result as a page.
func (s *CatalogService[T, P]) List(ctx context.Context, q search.Query) (pagination.Result[T], error) {
	res, err := s.engine.Search(ctx, q)
	if err != nil {
		return pagination.Result[T]{}, err
	}
	return pagination.NewResult(res.Data, res.Total, pagination.Params{Page: res.Page, Limit: q.Limit}), nil
}

// Filter returns every record matching the structured filters, unranked and
// unpaginated.
func (s *CatalogService[T, P]) Filter(ctx context.Context, filters map[string]string) ([]T, error) {
	p, err := s.engine.Schema().Filter().Build(filters, nil)
	if err != nil {
		return nil, err
	}
	recs, err := s.repo.Find(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("filter %s: %w", s.entity, err)
	}
	for i := range recs {
		s.decorate(&recs[i])
	}
	if recs == nil {
		recs = []T{}
	}
	return recs, nil
}

// Facet returns the sorted distinct values of field, through the cache when
// one is configured.
func (s *CatalogService[T, P]) Facet(ctx context.Context, field string) ([]string, error) {
	load := func(ctx context.Context) ([]string, error) {
		values, err := s.repo.Distinct(ctx, field)
		if err != nil {
			return nil, fmt.Errorf("distinct %s.%s: %w", s.entity, field, err)
		}
		return values, nil
	}
	if s.facets == nil {
		return load(ctx)
	}
	return s.facets.Facets(ctx, s.entity, field, load)
}

func (s *CatalogService[T, P]) changed(ctx context.Context, action string, rec P) {
	if s.facets != nil {
		if err := s.facets.Invalidate(ctx, s.entity); err != nil {
			s.logger.WarnContext(ctx, "facet invalidation failed",
				slog.String("entity", s.entity),
				slog.String("error", err.Error()),
			)
		}
	}
	if rec != nil {
		s.producer.CatalogChanged(ctx, s.entity, action, rec.Key(), rec)
	}
}

// view returns a decorated copy so the caller's record keeps stored values.
func (s *CatalogService[T, P]) view(rec P) *T {
	out := *rec
	s.decorate(&out)
	return &out
}

// LaptopImages returns a decorator resolving laptop image paths.
func LaptopImages(r *media.Resolver) func(*domain.Laptop) {
	return func(l *domain.Laptop) { l.ImageURLs = r.URLs(l.ImageURLs) }
}

// AccessoryImages returns a decorator resolving accessory image paths.
func AccessoryImages(r *media.Resolver) func(*domain.Accessory) {
	return func(a *domain.Accessory) { a.ImageURLs = r.URLs(a.ImageURLs) }
}

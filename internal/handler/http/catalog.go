package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Humanoid-1/Web-backend/internal/service"
	"github.com/Humanoid-1/Web-backend/pkg/httputil"
)

// CatalogHandler serves CRUD, listing and facets of one catalog entity.
type CatalogHandler[T any, P service.Record[T]] struct {
	service      *service.CatalogService[T, P]
	defaults     func() T
	defaultLimit int
	logger       *slog.Logger
}

// NewCatalogHandler creates a handler. defaults seeds every decoded request
// body, so fields the client omits keep their default.
func NewCatalogHandler[T any, P service.Record[T]](svc *service.CatalogService[T, P], defaults func() T, defaultLimit int, logger *slog.Logger) *CatalogHandler[T, P] {
	if defaults == nil {
		defaults = func() T {
			var zero T
			return zero
		}
	}
	return &CatalogHandler[T, P]{service: svc, defaults: defaults, defaultLimit: defaultLimit, logger: logger}
}

// List handles GET /{entities}?keyword=...&page=&limit=&<filters>.
func (h *CatalogHandler[T, P]) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, nil)
}

// ListWhere returns a List handler with one filter taken from a path param,
// e.g. GET /laptops/brand/{brand}.
func (h *CatalogHandler[T, P]) ListWhere(filter, pathParam string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.list(w, r, map[string]string{filter: chi.URLParam(r, pathParam)})
	}
}

func (h *CatalogHandler[T, P]) list(w http.ResponseWriter, r *http.Request, fixed map[string]string) {
	q, err := searchQuery(r, "keyword", h.defaultLimit)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	for k, v := range fixed {
		q = q.With(k, v)
	}

	page, err := h.service.List(r.Context(), q)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, page)
}

// FilterBy returns an unpaginated listing filtered by a path param, e.g.
// GET /parts/category/{category}. The value "all" lists everything.
func (h *CatalogHandler[T, P]) FilterBy(filter, pathParam string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := h.service.Filter(r.Context(), map[string]string{filter: chi.URLParam(r, pathParam)})
		if err != nil {
			writeError(w, r, err, h.logger)
			return
		}
		writeData(w, http.StatusOK, recs)
	}
}

func (h *CatalogHandler[T, P]) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, rec)
}

func (h *CatalogHandler[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	rec := h.defaults()
	if err := decode(r, &rec); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	created, err := h.service.Create(r.Context(), &rec)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusCreated, created)
}

func (h *CatalogHandler[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	rec := h.defaults()
	if err := decode(r, &rec); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &rec)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, updated)
}

func (h *CatalogHandler[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, h.service.Entity()+" deleted")
}

// Facet returns a handler listing the distinct values of field.
func (h *CatalogHandler[T, P]) Facet(field string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := h.service.Facet(r.Context(), field)
		if err != nil {
			writeError(w, r, err, h.logger)
			return
		}
		writeData(w, http.StatusOK, values)
	}
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Humanoid-1/Web-backend/internal/search"
	"github.com/Humanoid-1/Web-backend/pkg/httputil"
)

// SearchHandler serves ranked search over the catalog.
type SearchHandler struct {
	service *search.Service
	logger  *slog.Logger
}

func NewSearchHandler(svc *search.Service, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{service: svc, logger: logger}
}

// Entity returns a handler searching one fixed entity type, e.g.
// GET /api/v1/laptops/search?q=i7 16gb&brand=dell,hp&maxPrice=90000&page=2
func (h *SearchHandler) Entity(entity string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.search(w, r, entity)
	}
}

// ByEntity handles GET /api/v1/search/{entity}.
func (h *SearchHandler) ByEntity(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, chi.URLParam(r, "entity"))
}

func (h *SearchHandler) search(w http.ResponseWriter, r *http.Request, entity string) {
	q, err := searchQuery(r, "q", search.DefaultLimit)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	res, err := h.service.Search(r.Context(), entity, q)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

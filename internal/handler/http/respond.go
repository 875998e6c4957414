package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Humanoid-1/Web-backend/internal/search"
	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
	"github.com/Humanoid-1/Web-backend/pkg/httputil"
	"github.com/Humanoid-1/Web-backend/pkg/pagination"
	"github.com/Humanoid-1/Web-backend/pkg/validator"
)

// writeError renders validation failures with their field map and everything
// else through httputil.WriteError.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		httputil.WriteValidationError(w, valErr)
		return
	}
	httputil.WriteError(w, r, err, logger)
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.InvalidInput("invalid request body")
	}
	return nil
}

func writeData(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, httputil.Response{Data: data})
}

// reserved query keys that are not filters.
var reserved = map[string]bool{"q": true, "keyword": true, "page": true, "limit": true}

// searchQuery reads text from textParam, page and limit, and every other
// query key as a filter. A non-numeric page or limit is a pagination error;
// limits above pagination.MaxLimit are capped.
func searchQuery(r *http.Request, textParam string, defaultLimit int) (search.Query, error) {
	values := r.URL.Query()

	q := search.NewQuery(strings.TrimSpace(values.Get(textParam)))
	for key, v := range values {
		if reserved[key] || len(v) == 0 {
			continue
		}
		q.Filters[key] = v[0]
	}

	p, err := pagination.FromRequest(r, defaultLimit)
	if err != nil {
		return q, search.ErrInvalidPagination
	}
	q.Page, q.Limit = p.Page, p.Limit
	return q, nil
}

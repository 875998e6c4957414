package pagination

import (
	"fmt"
	"net/http"
	"strconv"

	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
)

// MaxLimit caps the page size accepted from clients.
const MaxLimit = 100

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Offset is the number of records preceding the page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// FromRequest reads page and limit from the query string. Absent values take
// page 1 and defaultLimit; limits above MaxLimit are capped. Non-numeric values are
// rejected, while non-positive numbers are passed through for the caller to judge.
func FromRequest(r *http.Request, defaultLimit int) (Params, error) {
	p := Params{Page: 1, Limit: defaultLimit}
	q := r.URL.Query()

	if raw := q.Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return p, apperrors.InvalidInput(fmt.Sprintf("page must be an integer, got %q", raw))
		}
		p.Page = v
	}

	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return p, apperrors.InvalidInput(fmt.Sprintf("limit must be an integer, got %q", raw))
		}
		p.Limit = min(v, MaxLimit)
	}

	return p, nil
}

// TotalPages returns ceil(total/limit), or 0 when limit is not positive.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

// Result is the list envelope used by catalog listings.
type Result[T any] struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Data       []T `json:"data"`
}

// NewResult creates a paginated result. A nil data slice is encoded as [].
func NewResult[T any](data []T, total int, params Params) Result[T] {
	if data == nil {
		data = []T{}
	}
	return Result[T]{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: TotalPages(total, params.Limit),
		Data:       data,
	}
}

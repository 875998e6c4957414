package search

import (
	"math"
	"net/http"
	"sort"

	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
	"github.com/Humanoid-1/Web-backend/pkg/pagination"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ErrInvalidPagination is returned for a page or limit below 1.
var ErrInvalidPagination = apperrors.New("INVALID_PAGINATION", "page and limit must be positive integers", http.StatusBadRequest, apperrors.ErrInvalidInput)

// ValidatePage rejects non-positive page or limit.
func ValidatePage(page, limit int) error {
	if page < 1 || limit < 1 {
		return ErrInvalidPagination
	}
	return nil
}

// Offset returns the number of records before page. It saturates at
// math.MaxInt instead of overflowing.
func Offset(page, limit int) int {
	if page <= 1 || limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// Bounds clamps the window [offset, offset+limit) to a sequence of length n.
func Bounds(offset, limit, n int) (start, end int) {
	start = min(max(offset, 0), n)
	end = n
	if limit >= 0 && limit < n-start {
		end = start + limit
	}
	return start, end
}

// Rank sorts candidates by descending score. Equal scores keep their input
// order.
func Rank[T any](candidates []Scored[T]) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

// Window returns the records of [offset, offset+limit) from ranked, clamped to
// its length. An offset past the end yields an empty, non-nil slice.
func Window[T any](ranked []Scored[T], page, limit int) []T {
	start, end := Bounds(Offset(page, limit), limit, len(ranked))

	out := make([]T, 0, end-start)
	for _, c := range ranked[start:end] {
		out = append(out, c.Record)
	}
	return out
}

// Result is one page of ranked records.
type Result[T any] struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	Data    []T  `json:"data"`
}

// NewResult assembles page metadata. total is the filtered candidate count,
// independent of the window.
func NewResult[T any](data []T, total, page, limit int) *Result[T] {
	if data == nil {
		data = []T{}
	}
	return &Result[T]{
		Success: true,
		Count:   len(data),
		Total:   total,
		Page:    page,
		Pages:   pagination.TotalPages(total, limit),
		Data:    data,
	}
}

package search

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"github.com/Humanoid-1/Web-backend/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sliceStore evaluates predicates in memory over a fixed slice.
type sliceStore[T any] struct {
	schema  *Schema[T]
	records []T
	err     error
	finds   int
}

func (s *sliceStore[T]) match(p Predicate) []T {
	var out []T
	for _, r := range s.records {
		if s.schema.Match(p, r) {
			out = append(out, r)
		}
	}
	return out
}

func (s *sliceStore[T]) Find(_ context.Context, p Predicate) ([]T, error) {
	s.finds++
	if s.err != nil {
		return nil, s.err
	}
	return s.match(p), nil
}

func (s *sliceStore[T]) Count(_ context.Context, p Predicate) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return len(s.match(p)), nil
}

// windowStore additionally serves scan-order windows.
type windowStore[T any] struct {
	*sliceStore[T]
	windows int
}

func (s *windowStore[T]) FindWindow(_ context.Context, p Predicate, offset, limit int) ([]T, error) {
	s.windows++
	if s.err != nil {
		return nil, s.err
	}
	all := s.match(p)
	start, end := Bounds(offset, limit, len(all))
	return all[start:end], nil
}

func sampleLaptops() []domain.Laptop {
	return []domain.Laptop{
		{ID: "l1", Brand: "Dell", Model: "XPS 13", CPU: "i7", RAM: "16GB", Storage: "512GB", Category: "Ultrabook", Price: 1200, Ratings: 4.5},
		{ID: "l2", Brand: "HP", Model: "Pavilion", CPU: "i5", RAM: "8GB", Storage: "256GB", Category: "Everyday", Price: 650, Ratings: 4.0},
		{ID: "l3", Brand: "hp", Model: "Omen", CPU: "Ryzen 7", RAM: "16GB", Storage: "1TB", Category: "Gaming", Price: 1500, Ratings: 4.7},
		{ID: "l4", Brand: "Lenovo", Model: "ThinkPad", CPU: "i5", RAM: "8GB", Storage: "512GB", Category: "Business", Price: 900, Ratings: 4.2},
		{ID: "l5", Brand: "Dell", Model: "Inspiron", CPU: "i3", RAM: "4GB", Storage: "256GB", Category: "Everyday", Price: 450, Ratings: 3.8},
		{ID: "l6", Brand: "Asus", Model: "Zenbook", CPU: "i7", RAM: "16GB", Storage: "1TB", Category: "Ultrabook", Price: 1000, Ratings: 4.4},
	}
}

func numberedParts(n int) []domain.Part {
	parts := make([]domain.Part, n)
	rams := []string{"8GB", "16GB", "4GB"}
	procs := []string{"i5", "i7", "Ryzen 5"}
	for i := range parts {
		parts[i] = domain.Part{
			ID:        "p" + strconv.Itoa(i),
			Name:      "Board " + strconv.Itoa(i),
			Category:  "Motherboard",
			Brand:     []string{"Asus", "MSI", "Gigabyte"}[i%3],
			RAM:       rams[i%len(rams)],
			Processor: procs[(i/3)%len(procs)],
			Price:     float64(100 + i*10),
			Stock:     i,
		}
	}
	return parts
}

func ids[T any](records []T, id func(T) string) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = id(r)
	}
	return out
}

func partID(p domain.Part) string     { return p.ID }
func laptopID(l domain.Laptop) string { return l.ID }

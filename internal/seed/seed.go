// Package seed loads catalog fixtures from YAML.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/internal/service"
	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
)

// Laptop is the fixture form of domain.Laptop.
type Laptop struct {
	Brand        string   `yaml:"brand"`
	Model        string   `yaml:"model"`
	Category     string   `yaml:"category"`
	CPU          string   `yaml:"cpu"`
	RAM          string   `yaml:"ram"`
	Storage      string   `yaml:"storage"`
	Connectivity string   `yaml:"connectivity"`
	Availability string   `yaml:"availability"`
	Features     []string `yaml:"features"`
	Price        float64  `yaml:"price"`
	Ratings      float64  `yaml:"ratings"`
	Warranty     string   `yaml:"warranty"`
	Description  string   `yaml:"description"`
	Images       []string `yaml:"images"`
}

type Accessory struct {
	Name        string   `yaml:"name"`
	Brand       string   `yaml:"brand"`
	Category    string   `yaml:"category"`
	Type        string   `yaml:"type"`
	Model       string   `yaml:"model"`
	Features    []string `yaml:"features"`
	Price       float64  `yaml:"price"`
	Description string   `yaml:"description"`
	InStock     *bool    `yaml:"in_stock"`
	Images      []string `yaml:"images"`
}

type Part struct {
	Name      string  `yaml:"name"`
	Category  string  `yaml:"category"`
	Brand     string  `yaml:"brand"`
	RAM       string  `yaml:"ram"`
	Processor string  `yaml:"processor"`
	Price     float64 `yaml:"price"`
	Stock     int     `yaml:"stock"`
}

// Fixtures is the document layout of a seed file.
type Fixtures struct {
	Brands      []string    `yaml:"brands"`
	Laptops     []Laptop    `yaml:"laptops"`
	Accessories []Accessory `yaml:"accessories"`
	Parts       []Part      `yaml:"parts"`
}

// Decode parses a YAML fixtures document. Unknown keys are rejected.
func Decode(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixtures
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &f, nil
}

// LoadFile decodes the fixtures file at path.
func LoadFile(path string) (*Fixtures, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Targets are the services fixtures are written through.
type Targets struct {
	Brands      *service.BrandService
	Laptops     *service.LaptopService
	Accessories *service.AccessoryService
	Parts       *service.PartService
}

// Summary counts the records created per kind.
type Summary struct {
	Brands      int
	Laptops     int
	Accessories int
	Parts       int
}

// Apply creates every fixture through the services so records are validated
// and change events are published. Brands that already exist are skipped.
func Apply(ctx context.Context, f *Fixtures, t Targets, logger *slog.Logger) (Summary, error) {
	var sum Summary

	for _, name := range f.Brands {
		if _, err := t.Brands.Create(ctx, name); err != nil {
			if errors.Is(err, apperrors.ErrAlreadyExists) {
				logger.DebugContext(ctx, "brand exists", slog.String("brand", name))
				continue
			}
			return sum, fmt.Errorf("seed brand %q: %w", name, err)
		}
		sum.Brands++
	}

	for i, l := range f.Laptops {
		rec := l.record()
		if _, err := t.Laptops.Create(ctx, &rec); err != nil {
			return sum, fmt.Errorf("seed laptop %d (%s %s): %w", i, l.Brand, l.Model, err)
		}
		sum.Laptops++
	}

	for i, a := range f.Accessories {
		rec := a.record()
		if _, err := t.Accessories.Create(ctx, &rec); err != nil {
			return sum, fmt.Errorf("seed accessory %d (%s): %w", i, a.Name, err)
		}
		sum.Accessories++
	}

	for i, p := range f.Parts {
		rec := p.record()
		if _, err := t.Parts.Create(ctx, &rec); err != nil {
			return sum, fmt.Errorf("seed part %d (%s): %w", i, p.Name, err)
		}
		sum.Parts++
	}

	logger.InfoContext(ctx, "catalog seeded",
		slog.Int("brands", sum.Brands),
		slog.Int("laptops", sum.Laptops),
		slog.Int("accessories", sum.Accessories),
		slog.Int("parts", sum.Parts),
	)
	return sum, nil
}

func (l Laptop) record() domain.Laptop {
	return domain.Laptop{
		Brand:        l.Brand,
		Model:        l.Model,
		Category:     l.Category,
		CPU:          l.CPU,
		RAM:          l.RAM,
		Storage:      l.Storage,
		Connectivity: l.Connectivity,
		Availability: l.Availability,
		Features:     l.Features,
		Price:        l.Price,
		Ratings:      l.Ratings,
		Warranty:     l.Warranty,
		Description:  l.Description,
		ImageURLs:    l.Images,
	}
}

func (a Accessory) record() domain.Accessory {
	inStock := true
	if a.InStock != nil {
		inStock = *a.InStock
	}
	return domain.Accessory{
		Name:        a.Name,
		Brand:       a.Brand,
		Category:    a.Category,
		Type:        a.Type,
		Model:       a.Model,
		Features:    a.Features,
		Price:       a.Price,
		Description: a.Description,
		InStock:     inStock,
		ImageURLs:   a.Images,
	}
}

func (p Part) record() domain.Part {
	return domain.Part{
		Name:      p.Name,
		Category:  p.Category,
		Brand:     p.Brand,
		RAM:       p.RAM,
		Processor: p.Processor,
		Price:     p.Price,
		Stock:     p.Stock,
	}
}

package search

import (
	"context"
	"strings"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
)

// ParseEntity maps a singular or plural entity name to its canonical form.
func ParseEntity(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "laptop", "laptops":
		return domain.EntityLaptop, nil
	case "accessory", "accessories":
		return domain.EntityAccessory, nil
	case "part", "parts":
		return domain.EntityPart, nil
	default:
		return "", apperrors.InvalidInput("unknown entity type " + name)
	}
}

// Service dispatches searches to the engine of each entity type.
type Service struct {
	laptops     *Engine[domain.Laptop]
	accessories *Engine[domain.Accessory]
	parts       *Engine[domain.Part]
}

// NewService creates a search service.
func NewService(laptops *Engine[domain.Laptop], accessories *Engine[domain.Accessory], parts *Engine[domain.Part]) *Service {
	return &Service{laptops: laptops, accessories: accessories, parts: parts}
}

// Search runs q against entity. The result is a *Result of the entity's
// record type.
func (s *Service) Search(ctx context.Context, entity string, q Query) (any, error) {
	name, err := ParseEntity(entity)
	if err != nil {
		return nil, err
	}

	var res any
	switch name {
	case domain.EntityLaptop:
		r, err := s.laptops.Search(ctx, q)
		if err != nil {
			return nil, err
		}
		res = r
	case domain.EntityAccessory:
		r, err := s.accessories.Search(ctx, q)
		if err != nil {
			return nil, err
		}
		res = r
	default:
		r, err := s.parts.Search(ctx, q)
		if err != nil {
			return nil, err
		}
		res = r
	}
	return res, nil
}

// Laptops returns the laptop engine.
func (s *Service) Laptops() *Engine[domain.Laptop] { return s.laptops }

// Accessories returns the accessory engine.
func (s *Service) Accessories() *Engine[domain.Accessory] { return s.accessories }

// Parts returns the part engine.
func (s *Service) Parts() *Engine[domain.Part] { return s.parts }

package repository

import (
	"context"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/internal/search"
)

// CatalogRepository persists one catalog entity and serves ranked search.
type CatalogRepository[T any] interface {
	search.Store[T]
	search.WindowStore[T]

	Create(ctx context.Context, rec *T) error
	// GetByID returns an apperrors not-found error for an unknown id.
	GetByID(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, rec *T) error
	Delete(ctx context.Context, id string) error
	// Distinct returns the sorted non-empty values of a text field.
	Distinct(ctx context.Context, field string) ([]string, error)
}

type (
	LaptopRepository    = CatalogRepository[domain.Laptop]
	AccessoryRepository = CatalogRepository[domain.Accessory]
	PartRepository      = CatalogRepository[domain.Part]
)

// BrandRepository persists brands.
type BrandRepository interface {
	Create(ctx context.Context, b *domain.Brand) error
	// List returns brands ordered by name.
	List(ctx context.Context) ([]domain.Brand, error)
}

// SliderRepository persists home-page sliders.
type SliderRepository interface {
	Create(ctx context.Context, s *domain.Slider) error
	// List returns sliders newest first.
	List(ctx context.Context) ([]domain.Slider, error)
}

// ContactRepository persists contact submissions.
type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) error
}

// UserRepository persists accounts and password resets.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, u *domain.User) error
	UpdatePassword(ctx context.Context, userID, hash string) error

	// SaveReset replaces any outstanding reset of the user.
	SaveReset(ctx context.Context, r *domain.PasswordReset) error
	GetReset(ctx context.Context, tokenHash string) (*domain.PasswordReset, error)
	DeleteReset(ctx context.Context, userID string) error
}

// AddressRepository persists shipping addresses.
type AddressRepository interface {
	Create(ctx context.Context, a *domain.Address) error
	// ListByUser returns the user's addresses newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Address, error)
	// Delete removes the address only when it belongs to userID.
	Delete(ctx context.Context, id, userID string) error
}

// OrderRepository persists orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// ListByUser returns the user's orders newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
}

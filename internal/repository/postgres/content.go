package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/pkg/database"
	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
)

// BrandRepository implements repository.BrandRepository.
type BrandRepository struct {
	db database.DBTX
}

// NewBrandRepository creates a brand repository.
func NewBrandRepository(db database.DBTX) *BrandRepository {
	return &BrandRepository{db: db}
}

func (r *BrandRepository) Create(ctx context.Context, b *domain.Brand) (err error) {
	const query = `INSERT INTO brands (id, name, slug, created_at) VALUES ($1, $2, $3, $4)`
	ctx, end := database.TraceQuery(ctx, "brands.Create", query)
	defer func() { end(err) }()

	if _, err := r.db.Exec(ctx, query, b.ID, b.Name, b.Slug, b.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("brand", "name", b.Name)
		}
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

func (r *BrandRepository) List(ctx context.Context) (_ []domain.Brand, err error) {
	const query = `SELECT id, name, slug, created_at FROM brands ORDER BY name`
	ctx, end := database.TraceQuery(ctx, "brands.List", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	brands, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Brand, error) {
		var b domain.Brand
		err := row.Scan(&b.ID, &b.Name, &b.Slug, &b.CreatedAt)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan brands: %w", err)
	}
	return brands, nil
}

// SliderRepository implements repository.SliderRepository.
type SliderRepository struct {
	db database.DBTX
}

// NewSliderRepository creates a slider repository.
func NewSliderRepository(db database.DBTX) *SliderRepository {
	return &SliderRepository{db: db}
}

func (r *SliderRepository) Create(ctx context.Context, s *domain.Slider) (err error) {
	const query = `INSERT INTO sliders (id, image_url, title, link, created_at) VALUES ($1, $2, $3, $4, $5)`
	ctx, end := database.TraceQuery(ctx, "sliders.Create", query)
	defer func() { end(err) }()

	if _, err := r.db.Exec(ctx, query, s.ID, s.ImageURL, s.Title, s.Link, s.CreatedAt); err != nil {
		return fmt.Errorf("insert slider: %w", err)
	}
	return nil
}

func (r *SliderRepository) List(ctx context.Context) (_ []domain.Slider, err error) {
	const query = `SELECT id, image_url, title, link, created_at FROM sliders ORDER BY created_at DESC, id`
	ctx, end := database.TraceQuery(ctx, "sliders.List", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sliders: %w", err)
	}
	sliders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Slider, error) {
		var s domain.Slider
		err := row.Scan(&s.ID, &s.ImageURL, &s.Title, &s.Link, &s.CreatedAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan sliders: %w", err)
	}
	return sliders, nil
}

// ContactRepository implements repository.ContactRepository.
type ContactRepository struct {
	db database.DBTX
}

// NewContactRepository creates a contact repository.
func NewContactRepository(db database.DBTX) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) (err error) {
	const query = `INSERT INTO contacts (id, name, email, phone, message, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	ctx, end := database.TraceQuery(ctx, "contacts.Create", query)
	defer func() { end(err) }()

	if _, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Email, c.Phone, c.Message, c.CreatedAt); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

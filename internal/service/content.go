package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/internal/event"
	"github.com/Humanoid-1/Web-backend/internal/media"
	"github.com/Humanoid-1/Web-backend/internal/repository"
	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
	"github.com/Humanoid-1/Web-backend/pkg/slug"
	"github.com/Humanoid-1/Web-backend/pkg/validator"
)

// BrandService manages the brand list shown in navigation.
type BrandService struct {
	repo   repository.BrandRepository
	logger *slog.Logger
}

func NewBrandService(repo repository.BrandRepository, logger *slog.Logger) *BrandService {
	return &BrandService{repo: repo, logger: logger}
}

// Create adds a brand. A duplicate name is a conflict.
func (s *BrandService) Create(ctx context.Context, name string) (*domain.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.InvalidInput("brand name is required")
	}

	b := &domain.Brand{
		ID:        uuid.NewString(),
		Name:      name,
		Slug:      slug.Generate(name),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create brand: %w", err)
	}

	s.logger.InfoContext(ctx, "brand created", slog.String("brand_id", b.ID), slog.String("slug", b.Slug))
	return b, nil
}

// Names returns brand names A to Z.
func (s *BrandService) Names(ctx context.Context) ([]string, error) {
	brands, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	names := make([]string, len(brands))
	for i, b := range brands {
		names[i] = b.Name
	}
	return names, nil
}

// SliderService manages home-page sliders.
type SliderService struct {
	repo   repository.SliderRepository
	media  *media.Resolver
	logger *slog.Logger
}

func NewSliderService(repo repository.SliderRepository, resolver *media.Resolver, logger *slog.Logger) *SliderService {
	return &SliderService{repo: repo, media: resolver, logger: logger}
}

// Create stores a slider. imageURL is an uploaded path or an absolute URL.
func (s *SliderService) Create(ctx context.Context, imageURL, title, link string) (*domain.Slider, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, apperrors.InvalidInput("image is required")
	}

	sl := &domain.Slider{
		ID:        uuid.NewString(),
		ImageURL:  imageURL,
		Title:     strings.TrimSpace(title),
		Link:      strings.TrimSpace(link),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, sl); err != nil {
		return nil, fmt.Errorf("create slider: %w", err)
	}

	s.logger.InfoContext(ctx, "slider created", slog.String("slider_id", sl.ID))
	out := *sl
	out.ImageURL = s.media.URL(out.ImageURL)
	return &out, nil
}

// List returns sliders newest first with public image URLs.
func (s *SliderService) List(ctx context.Context) ([]domain.Slider, error) {
	sliders, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sliders: %w", err)
	}
	for i := range sliders {
		sliders[i].ImageURL = s.media.URL(sliders[i].ImageURL)
	}
	return sliders, nil
}

// ContactInput is a contact-form submission.
type ContactInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,mobile"`
	Message string `json:"message" validate:"required"`
}

// ContactService stores contact-form submissions.
type ContactService struct {
	repo     repository.ContactRepository
	producer *event.Producer
	logger   *slog.Logger
}

func NewContactService(repo repository.ContactRepository, producer *event.Producer, logger *slog.Logger) *ContactService {
	return &ContactService{repo: repo, producer: producer, logger: logger}
}

// Submit trims and validates in, then stores it.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*domain.Contact, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Message = strings.TrimSpace(in.Message)
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	c := &domain.Contact{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Message:   in.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	s.producer.ContactSubmitted(ctx, c)

	s.logger.InfoContext(ctx, "contact submitted", slog.String("contact_id", c.ID))
	return c, nil
}

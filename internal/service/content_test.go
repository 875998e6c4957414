package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/internal/event"
	"github.com/Humanoid-1/Web-backend/internal/media"
	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
	"github.com/Humanoid-1/Web-backend/pkg/validator"
)

func TestBrandCreate(t *testing.T) {
	repo := new(mockBrandRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Brand) bool {
		return b.Name == "Dell Alienware" && b.Slug == "dell-alienware"
	})).Return(nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(apperrors.AlreadyExists("brand", "name", "Dell Alienware"))
	svc := NewBrandService(repo, newTestLogger())

	b, err := svc.Create(context.Background(), " Dell Alienware ")
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)

	_, err = svc.Create(context.Background(), "Dell Alienware")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	_, err = svc.Create(context.Background(), "  ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestBrandNames(t *testing.T) {
	repo := new(mockBrandRepository)
	repo.On("List", mock.Anything).Return([]domain.Brand{{Name: "Acer"}, {Name: "Dell"}}, nil)

	names, err := NewBrandService(repo, newTestLogger()).Names(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Acer", "Dell"}, names)
}

func TestSliders(t *testing.T) {
	repo := new(mockSliderRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Slider) bool {
		return s.ImageURL == "uploads/banner.jpg"
	})).Return(nil)
	repo.On("List", mock.Anything).Return([]domain.Slider{{ImageURL: "uploads/new.jpg"}, {ImageURL: "https://cdn.x/old.jpg"}}, nil)
	svc := NewSliderService(repo, media.NewResolver("https://shop.example.com"), newTestLogger())

	s, err := svc.Create(context.Background(), "uploads/banner.jpg", "Sale", "/sale")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/uploads/banner.jpg", s.ImageURL)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/uploads/new.jpg", list[0].ImageURL)
	assert.Equal(t, "https://cdn.x/old.jpg", list[1].ImageURL)

	_, err = svc.Create(context.Background(), "", "", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestContactSubmit(t *testing.T) {
	repo := new(mockContactRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Contact) bool {
		return c.Email == "asha@example.com" && c.Message == "Hello"
	})).Return(nil)
	pub := &recordingPublisher{}
	svc := NewContactService(repo, event.NewProducer(pub, newTestLogger()), newTestLogger())

	_, err := svc.Submit(context.Background(), ContactInput{Name: " Asha ", Email: "Asha@Example.com", Phone: "9876543210", Message: " Hello "})
	require.NoError(t, err)
	assert.Equal(t, []string{event.TopicContactSubmitted}, pub.topics)

	_, err = svc.Submit(context.Background(), ContactInput{Name: "A", Email: "a@b.co", Phone: "1234567890", Message: "x"})
	var valErr *validator.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields(), "phone")
}

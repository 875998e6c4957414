package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/internal/event"
	"github.com/Humanoid-1/Web-backend/internal/repository"
	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
	"github.com/Humanoid-1/Web-backend/pkg/validator"
)

const (
	resetTokenBytes = 20
	resetTokenTTL   = time.Hour
)

// TokenIssuer signs access tokens. *auth.Manager implements it.
type TokenIssuer interface {
	Issue(userID, email, role string) (string, error)
}

type RegisterInput struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,password"`
	Phone    *string `json:"phone" validate:"omitempty,mobile"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,password"`
}

type ResetPasswordInput struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,password"`
}

type UpdateProfileInput struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
	Phone *string `json:"phone" validate:"omitempty,mobile"`
}

type AddressInput struct {
	Type   string `json:"type" validate:"required"`
	Flat   string `json:"flat" validate:"required"`
	Street string `json:"street"`
	Name   string `json:"name" validate:"required"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// UserService implements accounts, authentication and saved addresses.
type UserService struct {
	users      repository.UserRepository
	addresses  repository.AddressRepository
	tokens     TokenIssuer
	producer   *event.Producer
	logger     *slog.Logger
	bcryptCost int
	now        func() time.Time
}

func NewUserService(
	users repository.UserRepository,
	addresses repository.AddressRepository,
	tokens TokenIssuer,
	producer *event.Producer,
	bcryptCost int,
	logger *slog.Logger,
) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		users:      users,
		addresses:  addresses,
		tokens:     tokens,
		producer:   producer,
		logger:     logger,
		bcryptCost: bcryptCost,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Register creates a customer account and signs it in.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	u := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.producer.UserRegistered(ctx, u)

	s.logger.InfoContext(ctx, "user registered", slog.String("user_id", u.ID))
	return s.signIn(u)
}

// Login checks credentials. Unknown email and wrong password look the same.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	s.logger.InfoContext(ctx, "user logged in", slog.String("user_id", u.ID))
	return s.signIn(u)
}

func (s *UserService) signIn(u *domain.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: u, Token: token}, nil
}

// ChangePassword replaces the password after checking the old one.
func (s *UserService) ChangePassword(ctx context.Context, userID string, in ChangePasswordInput) error {
	if err := validator.Validate(in); err != nil {
		return err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.OldPassword)); err != nil {
		return apperrors.InvalidInput("old password is incorrect")
	}

	if err := s.setPassword(ctx, userID, in.NewPassword); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "password changed", slog.String("user_id", userID))
	return nil
}

// ForgotPassword issues a one-hour reset token and returns it.
func (s *UserService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", apperrors.InvalidInput("email is required")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("get user by email: %w", err)
	}

	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)

	reset := &domain.PasswordReset{
		UserID:    u.ID,
		TokenHash: hashToken(token),
		ExpiresAt: s.now().Add(resetTokenTTL),
	}
	if err := s.users.SaveReset(ctx, reset); err != nil {
		return "", fmt.Errorf("save reset token: %w", err)
	}
	s.producer.PasswordResetRequested(ctx, u, token)

	s.logger.InfoContext(ctx, "password reset requested", slog.String("user_id", u.ID))
	return token, nil
}

// ResetPassword sets a new password using an unexpired reset token.
func (s *UserService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	if err := validator.Validate(in); err != nil {
		return err
	}

	reset, err := s.users.GetReset(ctx, hashToken(in.Token))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.InvalidInput("invalid or expired token")
		}
		return fmt.Errorf("get reset token: %w", err)
	}
	if reset.Expired(s.now()) {
		return apperrors.InvalidInput("invalid or expired token")
	}

	if err := s.setPassword(ctx, reset.UserID, in.Password); err != nil {
		return err
	}
	if err := s.users.DeleteReset(ctx, reset.UserID); err != nil {
		return fmt.Errorf("clear reset token: %w", err)
	}

	s.logger.InfoContext(ctx, "password reset", slog.String("user_id", reset.UserID))
	return nil
}

func (s *UserService) setPassword(ctx context.Context, userID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// Profile returns the user.
func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UpdateProfile changes name and phone.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Phone != nil {
		u.Phone = in.Phone
	}
	u.UpdatedAt = s.now()

	if err := s.users.UpdateProfile(ctx, u); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}

// AddAddress saves an address under the user's email.
func (s *UserService) AddAddress(ctx context.Context, userID string, in AddressInput) (*domain.Address, error) {
	in.Type = strings.TrimSpace(in.Type)
	in.Flat = strings.TrimSpace(in.Flat)
	in.Street = strings.TrimSpace(in.Street)
	in.Name = strings.TrimSpace(in.Name)
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	a := &domain.Address{
		ID:        uuid.NewString(),
		UserID:    userID,
		Email:     u.Email,
		Type:      in.Type,
		Flat:      in.Flat,
		Street:    in.Street,
		Name:      in.Name,
		CreatedAt: s.now(),
	}
	if err := s.addresses.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	return a, nil
}

// Addresses lists the user's addresses newest first.
func (s *UserService) Addresses(ctx context.Context, userID string) ([]domain.Address, error) {
	list, err := s.addresses.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return list, nil
}

// DeleteAddress removes one of the user's addresses. Another user's address is
// reported as not found.
func (s *UserService) DeleteAddress(ctx context.Context, userID, addressID string) error {
	if err := s.addresses.Delete(ctx, addressID, userID); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/pkg/database"
	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
)

const userColumns = `id, name, email, phone, password_hash, role, created_at, updated_at`

// UserRepository implements repository.UserRepository.
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a user repository.
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (err error) {
	const query = `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	ctx, end := database.TraceQuery(ctx, "users.Create", query)
	defer func() { end(err) }()

	_, err = r.db.Exec(ctx, query, u.ID, u.Name, u.Email, u.Phone, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("user", "email", u.Email)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (_ *domain.User, err error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	ctx, end := database.TraceQuery(ctx, "users.GetByID", query)
	defer func() { end(err) }()

	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("user", id)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (_ *domain.User, err error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	ctx, end := database.TraceQuery(ctx, "users.GetByEmail", query)
	defer func() { end(err) }()

	u, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("user", email)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, u *domain.User) (err error) {
	const query = `UPDATE users SET name = $2, phone = $3, updated_at = $4 WHERE id = $1`
	ctx, end := database.TraceQuery(ctx, "users.UpdateProfile", query)
	defer func() { end(err) }()

	tag, err := r.db.Exec(ctx, query, u.ID, u.Name, u.Phone, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("user", u.ID)
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID, hash string) (err error) {
	const query = `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	ctx, end := database.TraceQuery(ctx, "users.UpdatePassword", query)
	defer func() { end(err) }()

	tag, err := r.db.Exec(ctx, query, userID, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("user", userID)
	}
	return nil
}

func (r *UserRepository) SaveReset(ctx context.Context, pr *domain.PasswordReset) (err error) {
	const query = `
		INSERT INTO password_resets (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET token_hash = EXCLUDED.token_hash, expires_at = EXCLUDED.expires_at`
	ctx, end := database.TraceQuery(ctx, "password_resets.Save", query)
	defer func() { end(err) }()

	if _, err := r.db.Exec(ctx, query, pr.UserID, pr.TokenHash, pr.ExpiresAt); err != nil {
		return fmt.Errorf("save password reset: %w", err)
	}
	return nil
}

func (r *UserRepository) GetReset(ctx context.Context, tokenHash string) (_ *domain.PasswordReset, err error) {
	const query = `SELECT user_id, token_hash, expires_at FROM password_resets WHERE token_hash = $1`
	ctx, end := database.TraceQuery(ctx, "password_resets.Get", query)
	defer func() { end(err) }()

	var pr domain.PasswordReset
	if err := r.db.QueryRow(ctx, query, tokenHash).Scan(&pr.UserID, &pr.TokenHash, &pr.ExpiresAt); err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("password reset", "token")
		}
		return nil, fmt.Errorf("get password reset: %w", err)
	}
	return &pr, nil
}

func (r *UserRepository) DeleteReset(ctx context.Context, userID string) (err error) {
	const query = `DELETE FROM password_resets WHERE user_id = $1`
	ctx, end := database.TraceQuery(ctx, "password_resets.Delete", query)
	defer func() { end(err) }()

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("delete password reset: %w", err)
	}
	return nil
}

// AddressRepository implements repository.AddressRepository.
type AddressRepository struct {
	db database.DBTX
}

// NewAddressRepository creates an address repository.
func NewAddressRepository(db database.DBTX) *AddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) Create(ctx context.Context, a *domain.Address) (err error) {
	const query = `
		INSERT INTO addresses (id, user_id, email, type, flat, street, name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	ctx, end := database.TraceQuery(ctx, "addresses.Create", query)
	defer func() { end(err) }()

	if _, err := r.db.Exec(ctx, query, a.ID, a.UserID, a.Email, a.Type, a.Flat, a.Street, a.Name, a.CreatedAt); err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}

func (r *AddressRepository) ListByUser(ctx context.Context, userID string) (_ []domain.Address, err error) {
	const query = `
		SELECT id, user_id, email, type, flat, street, name, created_at
		FROM addresses WHERE user_id = $1 ORDER BY created_at DESC, id`
	ctx, end := database.TraceQuery(ctx, "addresses.ListByUser", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	addrs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Address, error) {
		var a domain.Address
		err := row.Scan(&a.ID, &a.UserID, &a.Email, &a.Type, &a.Flat, &a.Street, &a.Name, &a.CreatedAt)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan addresses: %w", err)
	}
	return addrs, nil
}

func (r *AddressRepository) Delete(ctx context.Context, id, userID string) (err error) {
	const query = `DELETE FROM addresses WHERE id = $1 AND user_id = $2`
	ctx, end := database.TraceQuery(ctx, "addresses.Delete", query)
	defer func() { end(err) }()

	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("address", id)
	}
	return nil
}

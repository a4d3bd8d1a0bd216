package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/logirate/backend/internal/domain"
)

// UserRepo defines the persistence operations for user accounts.
type UserRepo interface {
	// Create inserts a new user and returns the persisted record.
	// Returns domain.ErrEmailTaken if the email already has an account
	// (enforced by the unique index on email).
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByID retrieves a user by UUID primary key.
	// Returns domain.ErrNotFound if no user with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetByEmail retrieves a user by exact email.
	// Returns domain.ErrNotFound if no account uses that email.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// SetResetToken stores a password reset token and its expiry on the user.
	SetResetToken(ctx context.Context, id uuid.UUID, token string, expires time.Time) error

	// GetByResetToken retrieves the user holding an unexpired reset token.
	// Returns domain.ErrNotFound if the token is unknown or expired.
	GetByResetToken(ctx context.Context, token string) (domain.User, error)

	// UpdatePassword replaces the password hash and clears any reset token.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, first_name, surname, email, address, password_hash, role, created_at, updated_at`

// Create inserts a new user row and returns the full persisted record.
func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (first_name, surname, email, address, password_hash, role)
		VALUES (@first_name, @surname, @email, @address, @password_hash, @role)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"first_name":    user.FirstName,
		"surname":       user.Surname,
		"email":         user.Email,
		"address":       user.Address,
		"password_hash": user.PasswordHash,
		"role":          user.Role,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", domain.ErrEmailTaken)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a user by primary key.
func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetByEmail retrieves a user by exact email.
func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = @email`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	return result, nil
}

// SetResetToken stores a password reset token and its expiry.
func (r *pgUserRepo) SetResetToken(ctx context.Context, id uuid.UUID, token string, expires time.Time) error {
	const q = `
		UPDATE users
		SET reset_token = @token, reset_token_expires = @expires, updated_at = now()
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "token": token, "expires": expires})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.SetResetToken: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.SetResetToken: %w", domain.ErrNotFound)
	}
	return nil
}

// GetByResetToken retrieves the user holding an unexpired reset token.
func (r *pgUserRepo) GetByResetToken(ctx context.Context, token string) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users
		WHERE reset_token = @token AND reset_token_expires > now()`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"token": token})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByResetToken: %w", err)
	}
	return result, nil
}

// UpdatePassword replaces the password hash and invalidates any reset token.
func (r *pgUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const q = `
		UPDATE users
		SET password_hash = @password_hash,
		    reset_token = NULL,
		    reset_token_expires = NULL,
		    updated_at = now()
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "password_hash": passwordHash})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.UpdatePassword: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.UpdatePassword: %w", domain.ErrNotFound)
	}
	return nil
}

// scanUser maps a single database row into a domain.User.
// Reset token fields are internal and never leave the repo layer.
func scanUser(s scanner) (domain.User, error) {
	var (
		u  domain.User
		id pgtype.UUID
	)

	err := s.Scan(&id, &u.FirstName, &u.Surname, &u.Email, &u.Address,
		&u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	u.ID = uuid.UUID(id.Bytes)
	return u, nil
}

package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/logirate/backend/internal/domain"
	"github.com/logirate/backend/internal/repo"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt input limit

	resetTokenBytes = 32
	resetTokenTTL   = time.Hour
)

// TokenIssuer issues signed bearer tokens for authenticated users.
// The concrete implementation lives in internal/auth.
type TokenIssuer interface {
	Issue(userID uuid.UUID, email, role string) (string, error)
}

// Mailer delivers outbound mail. The only message the service sends is the
// password reset link. Implementations must not block past ctx.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

// AuthService implements registration, login, profile lookup, and the
// password reset flow.
type AuthService struct {
	users      repo.UserRepo
	tokens     TokenIssuer
	mailer     Mailer
	bcryptCost int
	resetBase  string // e.g. "https://app.example.com/reset-password"
}

// NewAuthService constructs an AuthService.
// bcryptCost below bcrypt.MinCost falls back to bcrypt.DefaultCost.
func NewAuthService(users repo.UserRepo, tokens TokenIssuer, mailer Mailer, bcryptCost int, resetBase string) *AuthService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:      users,
		tokens:     tokens,
		mailer:     mailer,
		bcryptCost: bcryptCost,
		resetBase:  strings.TrimRight(resetBase, "/"),
	}
}

// Register creates a new user account with the "user" role.
// Returns domain.ErrValidation for malformed input and domain.ErrEmailTaken
// if the email already has an account.
func (s *AuthService) Register(ctx context.Context, firstName, surname, email, address, password string) (domain.User, error) {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return domain.User{}, fmt.Errorf("%w: first name is required", domain.ErrValidation)
	}
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return domain.User{}, err
	}
	if err := validatePassword(password); err != nil {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: hash: %w", err)
	}

	user := domain.User{
		FirstName:    firstName,
		Surname:      strings.TrimSpace(surname),
		Email:        email,
		Address:      strings.TrimSpace(address),
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}
	result, err := s.users.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return result, nil
}

// Login verifies the credentials and returns the user plus a signed token.
// Unknown email and wrong password both return domain.ErrInvalidCredentials;
// callers cannot tell which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, "", domain.ErrInvalidCredentials
		}
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: issue token: %w", err)
	}
	return user, token, nil
}

// Profile returns the account of the given user.
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Profile: %w", err)
	}
	return user, nil
}

// ForgotPassword stores a one-hour reset token for the account and mails the
// reset link. An unknown email is not an error — the handler answers 202
// either way so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("service.AuthService.ForgotPassword: %w", err)
	}

	token, err := newResetToken()
	if err != nil {
		return fmt.Errorf("service.AuthService.ForgotPassword: %w", err)
	}

	if err := s.users.SetResetToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return fmt.Errorf("service.AuthService.ForgotPassword: %w", err)
	}

	resetURL := s.resetBase + "/" + token
	if err := s.mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		return fmt.Errorf("service.AuthService.ForgotPassword: send mail: %w", err)
	}
	return nil
}

// ResetPassword sets a new password for the account holding an unexpired
// reset token. Returns domain.ErrValidation for a weak password and
// domain.ErrNotFound for an unknown or expired token.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	user, err := s.users.GetByResetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("service.AuthService.ResetPassword: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("service.AuthService.ResetPassword: hash: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("service.AuthService.ResetPassword: %w", err)
	}
	return nil
}

// normalizeEmail lowercases and trims an email address so lookups and the
// unique index agree on identity.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateEmail applies a minimal well-formedness check.
// Real validation happens when the reset mail bounces.
func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	at := strings.Count(email, "@")
	if at != 1 || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	return nil
}

// validatePassword enforces the password length bounds.
func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("%w: password must be at most %d characters", domain.ErrValidation, maxPasswordLen)
	}
	return nil
}

// newResetToken returns a hex-encoded 32-byte random token.
func newResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

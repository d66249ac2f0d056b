package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/shop-api/internal/auth"
	"github.com/google/uuid"
)

// Mailer is the slice of the email service the account flows need
type Mailer interface {
	SendPasswordReset(to, resetLink string) error
}

// Service implements account management: registration, login, profile,
// password reset, and the per-user purchase/wishlist views.
type Service struct {
	store      Store
	tokens     *auth.TokenService
	mailer     Mailer
	appBaseURL string
}

func NewService(store Store, tokens *auth.TokenService, mailer Mailer, appBaseURL string) *Service {
	return &Service{store: store, tokens: tokens, mailer: mailer, appBaseURL: appBaseURL}
}

// Register creates a customer account with a hashed password
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         RoleCustomer,
		CreatedAt:    time.Now(),
	}
	if err := s.store.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and issues an access token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, time.Time, *User, error) {
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", time.Time{}, nil, ErrInvalidCredentials
		}
		return "", time.Time{}, nil, err
	}

	if !auth.CheckPassword(password, u.PasswordHash) {
		return "", time.Time{}, nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return "", time.Time{}, nil, err
	}
	return token, expiresAt, u, nil
}

// ForgotPassword issues a short-lived reset token and emails a reset link
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := s.tokens.GeneratePasswordResetToken(u.ID)
	if err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s", s.appBaseURL, token)
	return s.mailer.SendPasswordReset(u.Email, resetLink)
}

// ResetPassword verifies a reset token and replaces the password hash
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.tokens.ValidatePasswordResetToken(token)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.store.UpdatePassword(ctx, userID, hash)
}

func (s *Service) Profile(ctx context.Context, userID string) (*User, error) {
	return s.store.GetByID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID, name, email string) (*User, error) {
	if err := s.store.UpdateProfile(ctx, userID, name, email); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, userID)
}

func (s *Service) Orders(ctx context.Context, userID string) ([]PurchaseRow, error) {
	return s.store.ListOrders(ctx, userID)
}

func (s *Service) Wishlist(ctx context.Context, userID string) ([]WishlistItem, error) {
	return s.store.ListWishlist(ctx, userID)
}

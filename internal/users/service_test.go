package users

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/example/shop-api/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	byID map[string]*User
}

func newFakeStore() *fakeStore {
	return &fakeStore{byID: make(map[string]*User)}
}

func (f *fakeStore) Insert(_ context.Context, u *User) error {
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) UpdateProfile(_ context.Context, id, name, email string) error {
	u, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.Name = name
	u.Email = email
	return nil
}

func (f *fakeStore) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeStore) ListOrders(_ context.Context, _ string) ([]PurchaseRow, error) {
	return nil, nil
}

func (f *fakeStore) ListWishlist(_ context.Context, _ string) ([]WishlistItem, error) {
	return nil, nil
}

type fakeMailer struct {
	to   string
	link string
}

func (m *fakeMailer) SendPasswordReset(to, resetLink string) error {
	m.to = to
	m.link = resetLink
	return nil
}

func newTestService() (*Service, *fakeStore, *fakeMailer) {
	store := newFakeStore()
	mailer := &fakeMailer{}
	tokens := auth.NewTokenService("test-secret-key-for-testing-purposes", 15*time.Minute)
	return NewService(store, tokens, mailer, "http://localhost:8080"), store, mailer
}

func TestService_Register_Success(t *testing.T) {
	svc, store, _ := newTestService()

	u, err := svc.Register(context.Background(), "Alice", "alice@example.com", "long-enough-pw")

	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, RoleCustomer, u.Role)
	assert.NotEqual(t, "long-enough-pw", u.PasswordHash)
	assert.Len(t, store.byID, 1)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "long-enough-pw")
	require.NoError(t, err)

	u, err := svc.Register(context.Background(), "Alice Again", "alice@example.com", "another-password")

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Nil(t, u)
}

func TestService_Register_ShortPassword(t *testing.T) {
	svc, _, _ := newTestService()

	u, err := svc.Register(context.Background(), "Alice", "alice@example.com", "short")

	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
	assert.Nil(t, u)
}

func TestService_Login(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "long-enough-pw")
	require.NoError(t, err)

	token, expiresAt, u, err := svc.Login(context.Background(), "alice@example.com", "long-enough-pw")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
	assert.Equal(t, "alice@example.com", u.Email)

	_, _, _, err = svc.Login(context.Background(), "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, _, err = svc.Login(context.Background(), "nobody@example.com", "long-enough-pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_PasswordResetFlow(t *testing.T) {
	svc, _, mailer := newTestService()

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "long-enough-pw")
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(context.Background(), "alice@example.com"))
	assert.Equal(t, "alice@example.com", mailer.to)
	require.True(t, strings.HasPrefix(mailer.link, "http://localhost:8080/reset-password/"))

	token := strings.TrimPrefix(mailer.link, "http://localhost:8080/reset-password/")
	require.NoError(t, svc.ResetPassword(context.Background(), token, "brand-new-password"))

	_, _, _, err = svc.Login(context.Background(), "alice@example.com", "long-enough-pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, _, err = svc.Login(context.Background(), "alice@example.com", "brand-new-password")
	assert.NoError(t, err)
}

func TestService_ForgotPassword_UnknownEmail(t *testing.T) {
	svc, _, mailer := newTestService()

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, mailer.to)
}

func TestService_ResetPassword_InvalidToken(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.ResetPassword(context.Background(), "garbage-token", "brand-new-password")

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestService_UpdateProfile(t *testing.T) {
	svc, _, _ := newTestService()

	u, err := svc.Register(context.Background(), "Alice", "alice@example.com", "long-enough-pw")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), u.ID, "Alice B", "aliceb@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "aliceb@example.com", updated.Email)

	_, err = svc.UpdateProfile(context.Background(), "missing", "X", "x@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type usersStorageMock struct {
	users map[string]*models.User // keyed by email
}

func newUsersStorageMock() *usersStorageMock {
	return &usersStorageMock{users: make(map[string]*models.User)}
}

func (m *usersStorageMock) Get(_ context.Context, id string) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *usersStorageMock) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func (m *usersStorageMock) Insert(_ context.Context, user *models.User) (*models.User, error) {
	if _, ok := m.users[user.Email]; ok {
		return nil, storage.ErrConflict
	}
	m.users[user.Email] = user
	return user, nil
}

func newTestService(store UsersStorage) *AuthService {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), store, "test-secret")
}

func TestRegisterAndLogin(t *testing.T) {
	store := newUsersStorageMock()
	s := newTestService(store)
	ctx := context.Background()

	user, token, err := s.Register(ctx, "John Smith", "john@example.com", "sekret12345")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, token)
	assert.NoError(t, bcrypt.CompareHashAndPassword(user.PasswordHash, []byte("sekret12345")))

	_, _, err = s.Register(ctx, "John Smith", "john@example.com", "sekret12345")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = s.Login(ctx, "john@example.com", "sekret12345")
	assert.NoError(t, err)
	_, err = s.Login(ctx, "john@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(ctx, "nobody@example.com", "sekret12345")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	s := newTestService(newUsersStorageMock())
	user := &models.User{ID: "user-1", IsAdmin: true}
	token, err := s.IssueToken(user)
	require.NoError(t, err)

	identity, err := s.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.ID)
	assert.True(t, identity.IsAdmin)
	assert.False(t, identity.IsAnonymous())
}

func TestTokenHasNoExpiry(t *testing.T) {
	s := newTestService(newUsersStorageMock())
	token, err := s.IssueToken(&models.User{ID: "user-1"})
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) { return []byte("test-secret"), nil })
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	_, hasExp := claims["exp"]
	assert.False(t, hasExp)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	s := newTestService(newUsersStorageMock())
	other := New(slog.New(slog.NewTextHandler(io.Discard, nil)), newUsersStorageMock(), "other-secret")
	foreign, err := other.IssueToken(&models.User{ID: "user-1"})
	require.NoError(t, err)

	for _, token := range []string{"not-a-token", "", foreign} {
		identity, err := s.Authenticate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, identity)
	}
}

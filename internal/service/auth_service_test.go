package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"six-cities-api/internal/model"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, u model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserStore) FindByID(ctx context.Context, id string) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockTokenStore struct {
	mock.Mock
}

func (m *mockTokenStore) Save(ctx context.Context, token string, userID string) error {
	args := m.Called(ctx, token, userID)
	return args.Error(0)
}

func (m *mockTokenStore) GetUserID(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *mockTokenStore) Remove(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func newTestAuthService(users *mockUserStore, tokens *mockTokenStore) *AuthService {
	return NewAuthService(users, tokens, "test-secret", "test-salt", "123456")
}

func TestHashPassword(t *testing.T) {
	t.Run("deterministic for identical inputs", func(t *testing.T) {
		assert.Equal(t, HashPassword("secret1", "salt"), HashPassword("secret1", "salt"))
	})

	t.Run("different salt changes every digest", func(t *testing.T) {
		assert.NotEqual(t, HashPassword("secret1", "salt-a"), HashPassword("secret1", "salt-b"))
	})

	t.Run("different plaintext changes digest", func(t *testing.T) {
		assert.NotEqual(t, HashPassword("secret1", "salt"), HashPassword("secret2", "salt"))
	})
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(new(mockUserStore), new(mockTokenStore))

	issued := model.TokenClaims{
		UserID:   "user-1",
		Email:    "a@b.com",
		IssuedAt: time.Now().UTC().Truncate(time.Second),
	}

	token, err := svc.IssueToken(issued)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("verify returns the embedded claims", func(t *testing.T) {
		claims, err := svc.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, issued.UserID, claims.UserID)
		assert.Equal(t, issued.Email, claims.Email)
		assert.Equal(t, issued.IssuedAt.Unix(), claims.IssuedAt.Unix())
	})

	t.Run("different secret fails verification", func(t *testing.T) {
		other := NewAuthService(new(mockUserStore), new(mockTokenStore), "other-secret", "test-salt", "123456")
		_, err := other.VerifyToken(token)
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("any mutated byte fails verification", func(t *testing.T) {
		mutated := []byte(token)
		last := len(mutated) - 1
		if mutated[last] == 'A' {
			mutated[last] = 'B'
		} else {
			mutated[last] = 'A'
		}
		_, err := svc.VerifyToken(string(mutated))
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("malformed token fails verification", func(t *testing.T) {
		_, err := svc.VerifyToken("not.a.token")
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("expired token fails verification", func(t *testing.T) {
		stale, err := svc.IssueToken(model.TokenClaims{
			UserID:   "user-1",
			Email:    "a@b.com",
			IssuedAt: time.Now().UTC().Add(-3 * 24 * time.Hour),
		})
		require.NoError(t, err)

		_, err = svc.VerifyToken(stale)
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})
}

func TestAuthService_Register(t *testing.T) {
	t.Run("duplicate email is rejected", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("ExistsByEmail", mock.Anything, "a@b.com").Return(true, nil)

		svc := newTestAuthService(users, new(mockTokenStore))
		_, err := svc.Register(context.Background(), model.RegisterRequest{
			Name: "Alice", Email: "a@b.com", Password: "secret1",
		})

		assert.ErrorIs(t, err, model.ErrEmailTaken)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("stores the keyed hash, never the plaintext", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("ExistsByEmail", mock.Anything, "a@b.com").Return(false, nil)

		var created model.User
		users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
			created = u
			return true
		})).Return(nil)

		svc := newTestAuthService(users, new(mockTokenStore))
		user, err := svc.Register(context.Background(), model.RegisterRequest{
			Name: "Alice", Email: "A@B.com", Password: "secret1",
		})

		require.NoError(t, err)
		assert.Equal(t, "a@b.com", user.Email)
		assert.Empty(t, user.PasswordHash)
		assert.Equal(t, HashPassword("secret1", "test-salt"), created.PasswordHash)
		assert.NotContains(t, created.PasswordHash, "secret1")
		assert.Equal(t, model.UserTypeStandart, created.Type)
	})

	t.Run("empty password falls back to the default", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)

		var created model.User
		users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
			created = u
			return true
		})).Return(nil)

		svc := newTestAuthService(users, new(mockTokenStore))
		_, err := svc.Register(context.Background(), model.RegisterRequest{
			Name: "Bob", Email: "bob@example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, HashPassword("123456", "test-salt"), created.PasswordHash)
	})
}

func TestAuthService_Login(t *testing.T) {
	storedUser := model.User{
		ID:           "user-1",
		Email:        "a@b.com",
		PasswordHash: HashPassword("secret1", "test-salt"),
	}

	t.Run("correct credentials issue and persist a token", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("FindByEmail", mock.Anything, "a@b.com").Return(storedUser, nil)

		tokens := new(mockTokenStore)
		tokens.On("Save", mock.Anything, mock.AnythingOfType("string"), "user-1").Return(nil)

		svc := newTestAuthService(users, tokens)
		token, err := svc.Login(context.Background(), "a@b.com", "secret1")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.True(t, strings.Count(token, ".") == 2, "token should be a compact signed triple")
		tokens.AssertExpectations(t)
	})

	t.Run("wrong password issues no token", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("FindByEmail", mock.Anything, "a@b.com").Return(storedUser, nil)

		tokens := new(mockTokenStore)

		svc := newTestAuthService(users, tokens)
		_, err := svc.Login(context.Background(), "a@b.com", "wrong")

		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
		tokens.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("FindByEmail", mock.Anything, "ghost@b.com").Return(model.User{}, model.ErrUserNotFound)

		svc := newTestAuthService(users, new(mockTokenStore))
		_, err := svc.Login(context.Background(), "ghost@b.com", "secret1")

		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})
}

func TestAuthService_CurrentUser(t *testing.T) {
	t.Run("profile comes back without the hash", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("FindByID", mock.Anything, "user-1").Return(model.User{
			ID: "user-1", Email: "a@b.com", PasswordHash: "digest",
		}, nil)

		svc := newTestAuthService(users, new(mockTokenStore))
		user, err := svc.CurrentUser(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, "a@b.com", user.Email)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("vanished user surfaces not-found", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("FindByID", mock.Anything, "ghost").Return(model.User{}, model.ErrUserNotFound)

		svc := newTestAuthService(users, new(mockTokenStore))
		_, err := svc.CurrentUser(context.Background(), "ghost")

		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	users := new(mockUserStore)
	tokens := new(mockTokenStore)
	svc := newTestAuthService(users, tokens)

	token, err := svc.IssueToken(model.TokenClaims{
		UserID: "user-1", Email: "a@b.com", IssuedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	t.Run("live token yields the identity", func(t *testing.T) {
		tokens.On("GetUserID", mock.Anything, token).Return("user-1", nil).Once()

		identity, err := svc.Authenticate(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, model.Identity{UserID: "user-1", Email: "a@b.com"}, identity)
	})

	t.Run("revocation takes precedence over a valid signature", func(t *testing.T) {
		tokens.On("GetUserID", mock.Anything, token).Return("", model.ErrTokenRevoked).Once()

		_, err := svc.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, model.ErrTokenRevoked)
	})

	t.Run("garbage token never reaches the store", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "garbage")
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
		tokens.AssertNotCalled(t, "GetUserID", mock.Anything, "garbage")
	})
}

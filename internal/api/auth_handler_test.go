package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/wordway/wordway-api/internal/api"
	"github.com/wordway/wordway-api/internal/config"
	"github.com/wordway/wordway-api/internal/domain"
	"github.com/wordway/wordway-api/internal/service/auth"
	"github.com/wordway/wordway-api/internal/store"
)

// MockUserStore is a mock implementation of the store.UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "test-secret-that-is-long-enough-for-testing",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	})
	require.NoError(t, err)
	return svc
}

func newAuthHandler(t *testing.T, users *MockUserStore) *api.AuthHandler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return api.NewAuthHandler(users, newJWTService(t), auth.NewBcryptVerifier(), log)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates user and returns token pair", func(t *testing.T) {
		t.Parallel()
		users := new(MockUserStore)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "learner@example.com"
		})).Return(nil)

		handler := newAuthHandler(t, users)
		w := postJSON(t, handler.Register, "/auth/register", api.RegisterRequest{
			Email:    "learner@example.com",
			Password: "a-long-enough-password",
		})

		require.Equal(t, http.StatusCreated, w.Code)

		var resp api.AuthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.NotEqual(t, uuid.Nil, resp.UserID)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
	})

	t.Run("rejects duplicate email with conflict", func(t *testing.T) {
		t.Parallel()
		users := new(MockUserStore)
		users.On("Create", mock.Anything, mock.Anything).Return(store.ErrEmailExists)

		handler := newAuthHandler(t, users)
		w := postJSON(t, handler.Register, "/auth/register", api.RegisterRequest{
			Email:    "learner@example.com",
			Password: "a-long-enough-password",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("rejects short password", func(t *testing.T) {
		t.Parallel()
		users := new(MockUserStore)

		handler := newAuthHandler(t, users)
		w := postJSON(t, handler.Register, "/auth/register", api.RegisterRequest{
			Email:    "learner@example.com",
			Password: "short",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	password := "a-long-enough-password"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		ID:             uuid.New(),
		Email:          "learner@example.com",
		HashedPassword: string(hashed),
	}

	t.Run("returns token pair for valid credentials", func(t *testing.T) {
		t.Parallel()
		users := new(MockUserStore)
		users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

		handler := newAuthHandler(t, users)
		w := postJSON(t, handler.Login, "/auth/login", api.LoginRequest{
			Email:    user.Email,
			Password: password,
		})

		require.Equal(t, http.StatusOK, w.Code)

		var resp api.AuthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, user.ID, resp.UserID)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		t.Parallel()
		users := new(MockUserStore)
		users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

		handler := newAuthHandler(t, users)
		w := postJSON(t, handler.Login, "/auth/login", api.LoginRequest{
			Email:    user.Email,
			Password: "not-the-password",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email gets the same response as a bad password", func(t *testing.T) {
		t.Parallel()
		users := new(MockUserStore)
		users.On("GetByEmail", mock.Anything, "nobody@example.com").
			Return(nil, store.ErrUserNotFound)

		handler := newAuthHandler(t, users)
		w := postJSON(t, handler.Login, "/auth/login", api.LoginRequest{
			Email:    "nobody@example.com",
			Password: password,
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Invalid credentials", resp["error"])
	})
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	t.Run("issues a new token pair for a valid refresh token", func(t *testing.T) {
		t.Parallel()
		users := new(MockUserStore)
		jwtService := newJWTService(t)
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		handler := api.NewAuthHandler(users, jwtService, auth.NewBcryptVerifier(), log)

		userID := uuid.New()
		refreshToken, err := jwtService.GenerateRefreshToken(context.Background(), userID)
		require.NoError(t, err)

		w := postJSON(t, handler.RefreshToken, "/auth/refresh", api.RefreshTokenRequest{
			RefreshToken: refreshToken,
		})

		require.Equal(t, http.StatusOK, w.Code)

		var resp api.RefreshTokenResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)

		claims, err := jwtService.ValidateToken(context.Background(), resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
	})

	t.Run("rejects an access token used as a refresh token", func(t *testing.T) {
		t.Parallel()
		users := new(MockUserStore)
		jwtService := newJWTService(t)
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		handler := api.NewAuthHandler(users, jwtService, auth.NewBcryptVerifier(), log)

		accessToken, err := jwtService.GenerateToken(context.Background(), uuid.New())
		require.NoError(t, err)

		w := postJSON(t, handler.RefreshToken, "/auth/refresh", api.RefreshTokenRequest{
			RefreshToken: accessToken,
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashgen/internal/api/shared"
	"github.com/phrazzld/flashgen/internal/domain"
	"github.com/phrazzld/flashgen/internal/mocks"
	"github.com/phrazzld/flashgen/internal/platform/logger"
	"github.com/phrazzld/flashgen/internal/service/auth"
	"github.com/phrazzld/flashgen/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testExpiry = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestJWTMock() *mocks.MockJWTService {
	return &mocks.MockJWTService{
		Token:        "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    testExpiry,
	}
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	log, _ := logger.GetTestLogger(t)
	return req.WithContext(logger.WithContext(req.Context(), log))
}

func withUser(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(shared.WithUserID(req.Context(), userID))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestRegister(t *testing.T) {
	t.Run("creates user and returns tokens", func(t *testing.T) {
		users := &mocks.TestifyMockUserStore{}
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "ada@example.com" && u.Password == "secret123" && u.DisplayName == "ada"
		})).Return(nil).Once()
		defer users.AssertExpectations(t)

		h := NewAuthHandler(users, newTestJWTMock(), &mocks.MockPasswordVerifier{}, nil)
		rec := httptest.NewRecorder()
		h.Register(rec, jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]string{
			"email":    "ada@example.com",
			"password": "secret123",
		}))

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEqual(t, uuid.Nil, resp.UserID)
		assert.Equal(t, "access-token", resp.AccessToken)
		assert.Equal(t, "refresh-token", resp.RefreshToken)
		assert.Equal(t, "2025-03-01T10:00:00Z", resp.ExpiresAt)
		assert.Equal(t, "ada", resp.DisplayName)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		users := &mocks.TestifyMockUserStore{}
		users.On("Create", mock.Anything, mock.Anything).Return(store.ErrEmailExists).Once()

		h := NewAuthHandler(users, newTestJWTMock(), &mocks.MockPasswordVerifier{}, nil)
		rec := httptest.NewRecorder()
		h.Register(rec, jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]string{
			"email":    "ada@example.com",
			"password": "secret123",
		}))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Email already exists", decodeError(t, rec))
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name string
			body any
		}{
			{"missing email", map[string]string{"password": "secret123"}},
			{"bad email", map[string]string{"email": "nope", "password": "secret123"}},
			{"short password", map[string]string{"email": "ada@example.com", "password": "abc"}},
			{"unknown field", map[string]string{"email": "ada@example.com", "password": "secret123", "role": "admin"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				users := &mocks.TestifyMockUserStore{}
				h := NewAuthHandler(users, newTestJWTMock(), &mocks.MockPasswordVerifier{}, nil)
				rec := httptest.NewRecorder()
				h.Register(rec, jsonRequest(t, http.MethodPost, "/api/auth/register", tt.body))

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestLogin(t *testing.T) {
	user := &domain.User{
		ID:             uuid.New(),
		Email:          "ada@example.com",
		DisplayName:    "Ada",
		HashedPassword: "hashed",
	}

	t.Run("success records last login", func(t *testing.T) {
		users := &mocks.TestifyMockUserStore{}
		users.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil).Once()
		users.On("UpdateLastLogin", mock.Anything, user.ID, mock.AnythingOfType("time.Time")).Return(nil).Once()
		defer users.AssertExpectations(t)

		verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}
		h := NewAuthHandler(users, newTestJWTMock(), verifier, nil)
		rec := httptest.NewRecorder()
		h.Login(rec, jsonRequest(t, http.MethodPost, "/api/auth/login", LoginRequest{
			Email:    "ada@example.com",
			Password: "secret123",
		}))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hashed", verifier.CompareCalledWith.HashedPassword)
		assert.Equal(t, "secret123", verifier.CompareCalledWith.Password)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, user.ID, resp.UserID)
		assert.Equal(t, "Ada", resp.DisplayName)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := &mocks.TestifyMockUserStore{}
		users.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil).Once()

		h := NewAuthHandler(users, newTestJWTMock(), &mocks.MockPasswordVerifier{ShouldSucceed: false}, nil)
		rec := httptest.NewRecorder()
		h.Login(rec, jsonRequest(t, http.MethodPost, "/api/auth/login", LoginRequest{
			Email:    "ada@example.com",
			Password: "wrong-password",
		}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", decodeError(t, rec))
		users.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown email looks like wrong password", func(t *testing.T) {
		users := &mocks.TestifyMockUserStore{}
		users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, store.ErrUserNotFound).Once()

		h := NewAuthHandler(users, newTestJWTMock(), &mocks.MockPasswordVerifier{}, nil)
		rec := httptest.NewRecorder()
		h.Login(rec, jsonRequest(t, http.MethodPost, "/api/auth/login", LoginRequest{
			Email:    "ghost@example.com",
			Password: "secret123",
		}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", decodeError(t, rec))
	})

	t.Run("last login failure does not block login", func(t *testing.T) {
		users := &mocks.TestifyMockUserStore{}
		users.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil).Once()
		users.On("UpdateLastLogin", mock.Anything, user.ID, mock.Anything).Return(errors.New("db down")).Once()

		h := NewAuthHandler(users, newTestJWTMock(), &mocks.MockPasswordVerifier{ShouldSucceed: true}, nil)
		rec := httptest.NewRecorder()
		h.Login(rec, jsonRequest(t, http.MethodPost, "/api/auth/login", LoginRequest{
			Email:    "ada@example.com",
			Password: "secret123",
		}))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRefreshToken(t *testing.T) {
	userID := uuid.New()

	t.Run("rotates both tokens", func(t *testing.T) {
		users := &mocks.TestifyMockUserStore{}
		users.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil).Once()

		jwtService := newTestJWTMock()
		jwtService.ValidateRefreshTokenFn = func(_ context.Context, token string) (*auth.Claims, error) {
			assert.Equal(t, "old-refresh", token)
			return &auth.Claims{UserID: userID, TokenType: auth.TokenTypeRefresh}, nil
		}

		h := NewAuthHandler(users, jwtService, &mocks.MockPasswordVerifier{}, nil)
		rec := httptest.NewRecorder()
		h.RefreshToken(rec, jsonRequest(t, http.MethodPost, "/api/auth/refresh",
			RefreshTokenRequest{RefreshToken: "old-refresh"}))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp RefreshTokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "access-token", resp.AccessToken)
		assert.Equal(t, "refresh-token", resp.RefreshToken)
		assert.Equal(t, "2025-03-01T10:00:00Z", resp.ExpiresAt)
	})

	t.Run("expired refresh token", func(t *testing.T) {
		jwtService := newTestJWTMock()
		jwtService.ValidateRefreshTokenFn = func(context.Context, string) (*auth.Claims, error) {
			return nil, auth.ErrExpiredRefreshToken
		}

		h := NewAuthHandler(&mocks.TestifyMockUserStore{}, jwtService, &mocks.MockPasswordVerifier{}, nil)
		rec := httptest.NewRecorder()
		h.RefreshToken(rec, jsonRequest(t, http.MethodPost, "/api/auth/refresh",
			RefreshTokenRequest{RefreshToken: "stale"}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid refresh token", decodeError(t, rec))
	})

	t.Run("deleted user", func(t *testing.T) {
		users := &mocks.TestifyMockUserStore{}
		users.On("GetByID", mock.Anything, userID).Return(nil, store.ErrUserNotFound).Once()

		jwtService := newTestJWTMock()
		jwtService.ValidateRefreshTokenFn = func(context.Context, string) (*auth.Claims, error) {
			return &auth.Claims{UserID: userID}, nil
		}

		h := NewAuthHandler(users, jwtService, &mocks.MockPasswordVerifier{}, nil)
		rec := httptest.NewRecorder()
		h.RefreshToken(rec, jsonRequest(t, http.MethodPost, "/api/auth/refresh",
			RefreshTokenRequest{RefreshToken: "orphan"}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		h := NewAuthHandler(&mocks.TestifyMockUserStore{}, newTestJWTMock(), &mocks.MockPasswordVerifier{}, nil)
		rec := httptest.NewRecorder()
		h.RefreshToken(rec, jsonRequest(t, http.MethodPost, "/api/auth/refresh", map[string]string{}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMe(t *testing.T) {
	userID := uuid.New()
	user := &domain.User{ID: userID, Email: "ada@example.com", DisplayName: "Ada", HashedPassword: "secret-hash"}

	users := &mocks.TestifyMockUserStore{}
	users.On("GetByID", mock.Anything, userID).Return(user, nil).Once()

	h := NewAuthHandler(users, newTestJWTMock(), &mocks.MockPasswordVerifier{}, nil)

	rec := httptest.NewRecorder()
	h.Me(rec, withUser(jsonRequest(t, http.MethodGet, "/api/me", nil), userID))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ada@example.com", resp.Email)
	assert.NotContains(t, rec.Body.String(), "secret-hash")

	rec = httptest.NewRecorder()
	h.Me(rec, jsonRequest(t, http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/flashgen/internal/api/shared"
	"github.com/phrazzld/flashgen/internal/domain"
	"github.com/phrazzld/flashgen/internal/service"
	"github.com/phrazzld/flashgen/internal/service/auth"
	"github.com/phrazzld/flashgen/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"wrapped expired refresh", fmt.Errorf("refresh: %w", auth.ErrExpiredRefreshToken), http.StatusUnauthorized},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"service not found", service.ErrFlashcardSetNotFound, http.StatusNotFound},
		{"store not found", store.ErrFlashcardSetNotFound, http.StatusNotFound},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"duplicate email", fmt.Errorf("create: %w", store.ErrEmailExists), http.StatusConflict},
		{"empty topic", domain.ErrEmptyTopic, http.StatusBadRequest},
		{"invalid email", domain.ErrInvalidEmail, http.StatusBadRequest},
		{"invalid entity", fmt.Errorf("%w: bad", store.ErrInvalidEntity), http.StatusBadRequest},
		{"validation error", domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID), http.StatusBadRequest},
		{"empty body", shared.ErrEmptyBody, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"expired token", auth.ErrExpiredToken, "Invalid token"},
		{"wrong token type", auth.ErrWrongTokenType, "Invalid refresh token"},
		{"set not found", service.ErrFlashcardSetNotFound, "Flashcard set not found"},
		{"duplicate email", store.ErrEmailExists, "Email already exists"},
		{"path validation", domain.NewValidationError("id", "is required", domain.ErrValidation), "Invalid id: is required"},
		{"password too short", domain.ErrPasswordTooShort, "Password must be at least 6 characters long"},
		{
			"internal details",
			fmt.Errorf("query postgres://user:pw@db/flashgen: %w", errors.New("timeout")),
			"An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.ValidateRequest(RegisterRequest{Email: "not-an-email", Password: "abc"})
	assert.Equal(t,
		"Invalid request: email: invalid email format; password: must be at least 6 characters",
		SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}

func TestHandleAPIError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/flashcard-sets/1", nil)

	rec := httptest.NewRecorder()
	HandleAPIError(rec, req, store.ErrFlashcardSetNotFound, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Flashcard set not found", decodeError(t, rec))

	rec = httptest.NewRecorder()
	HandleAPIError(rec, req, errors.New("boom"), "Failed to list flashcard sets")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to list flashcard sets", decodeError(t, rec))
}

package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashgen/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email       string `json:"email"                  validate:"required,email"`
	Password    string `json:"password"               validate:"required,min=6,max=72"`
	DisplayName string `json:"display_name,omitempty" validate:"max=100"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by registration and login.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	// ExpiresAt is the RFC 3339 time the access token expires.
	ExpiresAt   string `json:"expires_at"`
	DisplayName string `json:"display_name"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse is returned by the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateFlashcardSetRequest defines the payload for generating a new set.
type CreateFlashcardSetRequest struct {
	Topic string `json:"topic" validate:"required"`
}

// FlashcardResponse is a single card of a set.
type FlashcardResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FlashcardSetResponse is the public view of a flashcard set.
type FlashcardSetResponse struct {
	ID             uuid.UUID           `json:"id"`
	Topic          string              `json:"topic"`
	Flashcards     []FlashcardResponse `json:"flashcards"`
	Source         string              `json:"source"`
	Partial        bool                `json:"partial"`
	RequestedCount int                 `json:"requested_count"`
	CardCount      int                 `json:"card_count"`
	CreatedAt      time.Time           `json:"created_at"`
}

// FlashcardSetListResponse wraps the sets of the current user.
type FlashcardSetListResponse struct {
	FlashcardSets []FlashcardSetResponse `json:"flashcard_sets"`
	Count         int                    `json:"count"`
}

func formatExpiry(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

func flashcardSetToResponse(set *domain.FlashcardSet) FlashcardSetResponse {
	cards := make([]FlashcardResponse, len(set.Flashcards))
	for i, card := range set.Flashcards {
		cards[i] = FlashcardResponse{Question: card.Question, Answer: card.Answer}
	}

	return FlashcardSetResponse{
		ID:             set.ID,
		Topic:          set.Topic,
		Flashcards:     cards,
		Source:         string(set.Source),
		Partial:        set.Partial(),
		RequestedCount: set.RequestedCount,
		CardCount:      set.CardCount(),
		CreatedAt:      set.CreatedAt,
	}
}

package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/flashgen/internal/domain"
)

// FlashcardSetStore defines the interface for flashcard set persistence.
// Every read and delete is scoped to the owning user: a set that belongs to
// someone else is reported as ErrFlashcardSetNotFound.
type FlashcardSetStore interface {
	// Create saves the set and its flashcards, preserving card order.
	Create(ctx context.Context, set *domain.FlashcardSet) error

	// GetByID retrieves one of the user's sets with its flashcards.
	GetByID(ctx context.Context, userID, setID uuid.UUID) (*domain.FlashcardSet, error)

	// ListByUser returns the user's sets, newest first, with their flashcards.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.FlashcardSet, error)

	// Delete removes one of the user's sets along with its flashcards.
	Delete(ctx context.Context, userID, setID uuid.UUID) error

	// WithTx returns a FlashcardSetStore that runs its queries in tx.
	WithTx(tx *sql.Tx) FlashcardSetStore
}

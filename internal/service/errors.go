package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/flashgen/internal/store"
)

// Common service errors. Callers check them with errors.Is; the API layer
// maps them to HTTP status codes.
var (
	// ErrFlashcardSetNotFound indicates the set does not exist or belongs to another user.
	// API layer should map this to HTTP 404 Not Found.
	ErrFlashcardSetNotFound = errors.New("flashcard set not found")
)

// FlashcardSetServiceError wraps unexpected failures with the operation that hit them.
type FlashcardSetServiceError struct {
	// Operation is the operation that failed (e.g., "create_set", "delete_set")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for FlashcardSetServiceError.
func (e *FlashcardSetServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("flashcard set service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("flashcard set service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *FlashcardSetServiceError) Unwrap() error {
	return e.Err
}

// NewFlashcardSetServiceError wraps err for operation. Not-found errors from
// the store are translated to ErrFlashcardSetNotFound and returned unwrapped.
func NewFlashcardSetServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrFlashcardSetNotFound) || errors.Is(err, store.ErrFlashcardSetNotFound) {
		return ErrFlashcardSetNotFound
	}

	return &FlashcardSetServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/flashgen/internal/domain"
	"github.com/phrazzld/flashgen/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockFlashcardSetStore is a mock of store.FlashcardSetStore for use with testify/mock
type TestifyMockFlashcardSetStore struct {
	mock.Mock
}

var _ store.FlashcardSetStore = (*TestifyMockFlashcardSetStore)(nil)

// Create is a mock implementation of store.FlashcardSetStore.Create
func (m *TestifyMockFlashcardSetStore) Create(ctx context.Context, set *domain.FlashcardSet) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

// GetByID is a mock implementation of store.FlashcardSetStore.GetByID
func (m *TestifyMockFlashcardSetStore) GetByID(
	ctx context.Context,
	userID, setID uuid.UUID,
) (*domain.FlashcardSet, error) {
	args := m.Called(ctx, userID, setID)
	if set, ok := args.Get(0).(*domain.FlashcardSet); ok {
		return set, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByUser is a mock implementation of store.FlashcardSetStore.ListByUser
func (m *TestifyMockFlashcardSetStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.FlashcardSet, error) {
	args := m.Called(ctx, userID)
	if sets, ok := args.Get(0).([]*domain.FlashcardSet); ok {
		return sets, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.FlashcardSetStore.Delete
func (m *TestifyMockFlashcardSetStore) Delete(ctx context.Context, userID, setID uuid.UUID) error {
	args := m.Called(ctx, userID, setID)
	return args.Error(0)
}

// WithTx is a mock implementation of store.FlashcardSetStore.WithTx
func (m *TestifyMockFlashcardSetStore) WithTx(tx *sql.Tx) store.FlashcardSetStore {
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.FlashcardSetStore); ok {
		return ret
	}
	return m
}

//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashgen/internal/domain"
	"github.com/phrazzld/flashgen/internal/platform/postgres"
	"github.com/phrazzld/flashgen/internal/store"
	"github.com/phrazzld/flashgen/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func createTestUser(t *testing.T, tx *sql.Tx, email string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(email, "password123", "")
	require.NoError(t, err)
	require.NoError(t, postgres.NewPostgresUserStore(tx, bcrypt.MinCost, nil).Create(context.Background(), user))

	return user
}

func TestUserStore_Integration(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewPostgresUserStore(tx, bcrypt.MinCost, nil)

		email := "integration-" + uuid.NewString() + "@example.com"
		user := createTestUser(t, tx, email)

		found, err := users.GetByEmail(ctx, "INTEGRATION-"+email[len("integration-"):])
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Nil(t, found.LastLoginAt)

		require.NoError(t, users.UpdateLastLogin(ctx, user.ID, time.Now()))
		found, err = users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.NotNil(t, found.LastLoginAt)
	})
}

func TestUserStore_Integration_DuplicateEmail(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		email := "dup-" + uuid.NewString() + "@example.com"
		createTestUser(t, tx, email)

		again, err := domain.NewUser(email, "password123", "")
		require.NoError(t, err)

		err = postgres.NewPostgresUserStore(tx, bcrypt.MinCost, nil).Create(context.Background(), again)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})
}

func TestFlashcardSetStore_Integration(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		sets := postgres.NewPostgresFlashcardSetStore(tx, nil)

		owner := createTestUser(t, tx, "owner-"+uuid.NewString()+"@example.com")
		stranger := createTestUser(t, tx, "stranger-"+uuid.NewString()+"@example.com")

		set, err := domain.NewFlashcardSet(owner.ID, "Cell biology", []domain.Flashcard{
			{Question: "Q1", Answer: "A1"},
			{Question: "Q2", Answer: "A2"},
			{Question: "Q3", Answer: "A3"},
		}, domain.SourceGenerated, 3, 0)
		require.NoError(t, err)
		require.NoError(t, sets.Create(ctx, set))

		loaded, err := sets.GetByID(ctx, owner.ID, set.ID)
		require.NoError(t, err)
		assert.Equal(t, set.Flashcards, loaded.Flashcards)

		_, err = sets.GetByID(ctx, stranger.ID, set.ID)
		assert.ErrorIs(t, err, store.ErrFlashcardSetNotFound)
		assert.ErrorIs(t, sets.Delete(ctx, stranger.ID, set.ID), store.ErrFlashcardSetNotFound)

		listed, err := sets.ListByUser(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Len(t, listed[0].Flashcards, 3)

		require.NoError(t, sets.Delete(ctx, owner.ID, set.ID))
		listed, err = sets.ListByUser(ctx, owner.ID)
		require.NoError(t, err)
		assert.Empty(t, listed)
	})
}

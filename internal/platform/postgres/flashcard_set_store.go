package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashgen/internal/domain"
	"github.com/phrazzld/flashgen/internal/platform/logger"
	"github.com/phrazzld/flashgen/internal/redact"
	"github.com/phrazzld/flashgen/internal/store"
)

const setColumns = `id, user_id, topic, source, requested_count, created_at`

// PostgresFlashcardSetStore implements the store.FlashcardSetStore interface.
// Sets live in flashcard_sets and their cards in flashcards, ordered by position.
type PostgresFlashcardSetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresFlashcardSetStore implements store.FlashcardSetStore interface
var _ store.FlashcardSetStore = (*PostgresFlashcardSetStore)(nil)

// NewPostgresFlashcardSetStore creates a FlashcardSetStore backed by db.
func NewPostgresFlashcardSetStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardSetStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardSetStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_set_store")),
	}
}

// WithTx implements store.FlashcardSetStore.WithTx
func (s *PostgresFlashcardSetStore) WithTx(tx *sql.Tx) store.FlashcardSetStore {
	return &PostgresFlashcardSetStore{db: tx, logger: s.logger}
}

// Create implements store.FlashcardSetStore.Create.
// When the store is bound to a pool the set and its cards are written in a
// new transaction; when bound to a transaction the caller owns commit.
func (s *PostgresFlashcardSetStore) Create(ctx context.Context, set *domain.FlashcardSet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := set.Validate(); err != nil {
		log.WarnContext(ctx, "flashcard set validation failed during create",
			slog.String("error", err.Error()),
			slog.String("set_id", set.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	var err error
	if db, ok := s.db.(*sql.DB); ok {
		err = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return insertSet(ctx, tx, set)
		})
	} else {
		err = insertSet(ctx, s.db, set)
	}

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.WarnContext(ctx, "flashcard set owner does not exist",
				slog.String("user_id", set.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, set.UserID)
		}

		log.ErrorContext(ctx, "failed to create flashcard set",
			slog.String("error", redact.Error(err)),
			slog.String("set_id", set.ID.String()))
		return store.NewStoreError("flashcard_set", "create", "insert failed", MapError(err))
	}

	log.InfoContext(ctx, "flashcard set created",
		slog.String("set_id", set.ID.String()),
		slog.String("user_id", set.UserID.String()),
		slog.Int("card_count", set.CardCount()),
		slog.String("source", string(set.Source)))
	return nil
}

func insertSet(ctx context.Context, db store.DBTX, set *domain.FlashcardSet) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO flashcard_sets (id, user_id, topic, source, requested_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		set.ID,
		set.UserID,
		set.Topic,
		string(set.Source),
		set.RequestedCount,
		set.CreatedAt,
	)
	if err != nil {
		return err
	}

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO flashcards (set_id, position, question, answer)
		VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for position, card := range set.Flashcards {
		if _, err := stmt.ExecContext(ctx, set.ID, position, card.Question, card.Answer); err != nil {
			return fmt.Errorf("insert flashcard %d: %w", position, err)
		}
	}

	return nil
}

// GetByID implements store.FlashcardSetStore.GetByID
func (s *PostgresFlashcardSetStore) GetByID(
	ctx context.Context,
	userID, setID uuid.UUID,
) (*domain.FlashcardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("set_id", setID.String()),
		slog.String("user_id", userID.String()),
	)

	row := s.db.QueryRowContext(ctx,
		`SELECT `+setColumns+` FROM flashcard_sets WHERE id = $1 AND user_id = $2`,
		setID, userID)

	set, err := scanSet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.DebugContext(ctx, "flashcard set not found")
			return nil, store.ErrFlashcardSetNotFound
		}

		log.ErrorContext(ctx, "failed to get flashcard set", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("flashcard_set", "get", "query failed", MapError(err))
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT set_id, question, answer FROM flashcards WHERE set_id = $1 ORDER BY position`,
		setID)
	if err != nil {
		log.ErrorContext(ctx, "failed to get flashcards", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("flashcard_set", "get", "flashcard query failed", MapError(err))
	}

	cards, err := scanCards(rows)
	if err != nil {
		log.ErrorContext(ctx, "failed to read flashcards", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("flashcard_set", "get", "flashcard scan failed", err)
	}
	set.Flashcards = cards[setID]

	return set, nil
}

// ListByUser implements store.FlashcardSetStore.ListByUser
func (s *PostgresFlashcardSetStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.FlashcardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("user_id", userID.String()))

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+setColumns+` FROM flashcard_sets WHERE user_id = $1 ORDER BY created_at DESC, id`,
		userID)
	if err != nil {
		log.ErrorContext(ctx, "failed to list flashcard sets", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("flashcard_set", "list", "query failed", MapError(err))
	}

	sets, err := scanSets(rows)
	if err != nil {
		log.ErrorContext(ctx, "failed to read flashcard sets", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("flashcard_set", "list", "scan failed", err)
	}

	if len(sets) == 0 {
		return sets, nil
	}

	cardRows, err := s.db.QueryContext(ctx, `
		SELECT f.set_id, f.question, f.answer
		FROM flashcards f
		JOIN flashcard_sets fs ON fs.id = f.set_id
		WHERE fs.user_id = $1
		ORDER BY f.set_id, f.position
	`, userID)
	if err != nil {
		log.ErrorContext(ctx, "failed to list flashcards", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("flashcard_set", "list", "flashcard query failed", MapError(err))
	}

	cards, err := scanCards(cardRows)
	if err != nil {
		log.ErrorContext(ctx, "failed to read flashcards", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("flashcard_set", "list", "flashcard scan failed", err)
	}

	for _, set := range sets {
		set.Flashcards = cards[set.ID]
	}

	log.DebugContext(ctx, "listed flashcard sets", slog.Int("count", len(sets)))
	return sets, nil
}

// Delete implements store.FlashcardSetStore.Delete. Flashcards are removed by cascade.
func (s *PostgresFlashcardSetStore) Delete(ctx context.Context, userID, setID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("set_id", setID.String()),
		slog.String("user_id", userID.String()),
	)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM flashcard_sets WHERE id = $1 AND user_id = $2`, setID, userID)
	if err != nil {
		log.ErrorContext(ctx, "failed to delete flashcard set", slog.String("error", redact.Error(err)))
		return store.NewStoreError("flashcard_set", "delete", "delete failed",
			fmt.Errorf("%w: %w", store.ErrDeleteFailed, MapError(err)))
	}

	if err := CheckRowsAffected(result, store.ErrFlashcardSetNotFound); err != nil {
		log.DebugContext(ctx, "flashcard set not found for delete")
		return err
	}

	log.InfoContext(ctx, "flashcard set deleted")
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSet(row rowScanner) (*domain.FlashcardSet, error) {
	var (
		set    domain.FlashcardSet
		source string
	)
	if err := row.Scan(
		&set.ID,
		&set.UserID,
		&set.Topic,
		&source,
		&set.RequestedCount,
		&set.CreatedAt,
	); err != nil {
		return nil, err
	}

	set.Source = domain.GenerationSource(source)
	set.CreatedAt = set.CreatedAt.UTC()
	return &set, nil
}

func scanSets(rows *sql.Rows) ([]*domain.FlashcardSet, error) {
	defer func() { _ = rows.Close() }()

	sets := make([]*domain.FlashcardSet, 0)
	for rows.Next() {
		set, err := scanSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}

	return sets, rows.Err()
}

// scanCards groups flashcard rows by set ID, keeping row order within a set.
func scanCards(rows *sql.Rows) (map[uuid.UUID][]domain.Flashcard, error) {
	defer func() { _ = rows.Close() }()

	cards := make(map[uuid.UUID][]domain.Flashcard)
	for rows.Next() {
		var (
			setID uuid.UUID
			card  domain.Flashcard
		)
		if err := rows.Scan(&setID, &card.Question, &card.Answer); err != nil {
			return nil, err
		}
		cards[setID] = append(cards[setID], card)
	}

	return cards, rows.Err()
}

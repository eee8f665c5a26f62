package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashgen/internal/domain"
	"github.com/phrazzld/flashgen/internal/events"
	"github.com/phrazzld/flashgen/internal/generation"
	"github.com/phrazzld/flashgen/internal/platform/logger"
	"github.com/phrazzld/flashgen/internal/redact"
	"github.com/phrazzld/flashgen/internal/store"
)

// FlashcardGenerator produces flashcards for a topic. generation.Pipeline
// is the production implementation; it always returns at least one card.
type FlashcardGenerator interface {
	Generate(ctx context.Context, topic string, count int) generation.Result
}

// FlashcardSetConfig holds the limits applied when creating sets.
type FlashcardSetConfig struct {
	// PerSet is the number of cards requested from the generator.
	PerSet int
	// MaxTopicLength bounds the topic in runes.
	MaxTopicLength int
}

// FlashcardSetService provides the flashcard set use cases for one user at a time.
type FlashcardSetService interface {
	// CreateSet generates flashcards for topic and saves them as a new set.
	// Domain validation errors such as domain.ErrEmptyTopic are returned as-is.
	CreateSet(ctx context.Context, userID uuid.UUID, topic string) (*domain.FlashcardSet, error)

	// ListSets returns the user's sets, newest first.
	ListSets(ctx context.Context, userID uuid.UUID) ([]*domain.FlashcardSet, error)

	// GetSet returns one of the user's sets or ErrFlashcardSetNotFound.
	GetSet(ctx context.Context, userID, setID uuid.UUID) (*domain.FlashcardSet, error)

	// DeleteSet removes one of the user's sets or returns ErrFlashcardSetNotFound.
	DeleteSet(ctx context.Context, userID, setID uuid.UUID) error
}

type flashcardSetServiceImpl struct {
	sets         store.FlashcardSetStore
	generator    FlashcardGenerator
	eventEmitter events.EventEmitter
	config       FlashcardSetConfig
	logger       *slog.Logger
}

var _ FlashcardSetService = (*flashcardSetServiceImpl)(nil)

// NewFlashcardSetService creates a FlashcardSetService.
// It returns an error if any of the required dependencies are nil.
func NewFlashcardSetService(
	sets store.FlashcardSetStore,
	generator FlashcardGenerator,
	eventEmitter events.EventEmitter,
	cfg FlashcardSetConfig,
	log *slog.Logger,
) (FlashcardSetService, error) {
	if sets == nil {
		return nil, &FlashcardSetServiceError{Operation: "create_service", Message: "flashcard set store cannot be nil"}
	}
	if generator == nil {
		return nil, &FlashcardSetServiceError{Operation: "create_service", Message: "generator cannot be nil"}
	}
	if eventEmitter == nil {
		return nil, &FlashcardSetServiceError{Operation: "create_service", Message: "eventEmitter cannot be nil"}
	}
	if log == nil {
		log = slog.Default()
	}
	if cfg.PerSet <= 0 {
		cfg.PerSet = generation.DefaultCount
	}
	if cfg.MaxTopicLength <= 0 {
		cfg.MaxTopicLength = domain.DefaultMaxTopicLength
	}

	return &flashcardSetServiceImpl{
		sets:         sets,
		generator:    generator,
		eventEmitter: eventEmitter,
		config:       cfg,
		logger:       log.With(slog.String("component", "flashcard_set_service")),
	}, nil
}

func (s *flashcardSetServiceImpl) CreateSet(
	ctx context.Context,
	userID uuid.UUID,
	topic string,
) (*domain.FlashcardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	topic, err := domain.NormalizeTopic(topic, s.config.MaxTopicLength)
	if err != nil {
		return nil, err
	}

	result := s.generator.Generate(ctx, topic, s.config.PerSet)

	set, err := domain.NewFlashcardSet(
		userID,
		topic,
		result.Flashcards,
		result.Source,
		result.Requested,
		s.config.MaxTopicLength,
	)
	if err != nil {
		// Generator output is always valid, so this is an internal error.
		return nil, NewFlashcardSetServiceError("create_set", "failed to build flashcard set", err)
	}

	if err := s.sets.Create(ctx, set); err != nil {
		log.ErrorContext(ctx, "failed to save flashcard set",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewFlashcardSetServiceError("create_set", "failed to save flashcard set", err)
	}

	log.InfoContext(ctx, "flashcard set created",
		slog.String("set_id", set.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("source", string(set.Source)),
		slog.Int("card_count", set.CardCount()),
		slog.Int("requested_count", set.RequestedCount))

	s.emitCreated(ctx, log, set, result)

	return set, nil
}

// emitCreated publishes the creation event. The set is already saved, so a
// failed emit is logged and otherwise ignored.
func (s *flashcardSetServiceImpl) emitCreated(
	ctx context.Context,
	log *slog.Logger,
	set *domain.FlashcardSet,
	result generation.Result,
) {
	payload := events.FlashcardSetCreated{
		SetID:          set.ID,
		UserID:         set.UserID,
		Topic:          set.Topic,
		Source:         string(set.Source),
		RequestedCount: set.RequestedCount,
		CardCount:      set.CardCount(),
		Partial:        set.Partial(),
	}
	if result.FallbackReason != nil {
		payload.FallbackReason = redact.Error(result.FallbackReason)
	}

	event, err := events.NewEvent(events.TypeFlashcardSetCreated, payload)
	if err != nil {
		log.ErrorContext(ctx, "failed to build flashcard set event",
			slog.String("error", err.Error()),
			slog.String("set_id", set.ID.String()))
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		log.WarnContext(ctx, "failed to emit flashcard set event",
			slog.String("error", err.Error()),
			slog.String("set_id", set.ID.String()),
			slog.String("event_id", event.ID.String()))
	}
}

func (s *flashcardSetServiceImpl) ListSets(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.FlashcardSet, error) {
	sets, err := s.sets.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewFlashcardSetServiceError("list_sets", "failed to list flashcard sets", err)
	}
	return sets, nil
}

func (s *flashcardSetServiceImpl) GetSet(
	ctx context.Context,
	userID, setID uuid.UUID,
) (*domain.FlashcardSet, error) {
	set, err := s.sets.GetByID(ctx, userID, setID)
	if err != nil {
		return nil, NewFlashcardSetServiceError("get_set", "failed to get flashcard set", err)
	}
	return set, nil
}

func (s *flashcardSetServiceImpl) DeleteSet(ctx context.Context, userID, setID uuid.UUID) error {
	if err := s.sets.Delete(ctx, userID, setID); err != nil {
		return NewFlashcardSetServiceError("delete_set", "failed to delete flashcard set", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).InfoContext(ctx, "flashcard set deleted",
		slog.String("set_id", setID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

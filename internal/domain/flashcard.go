package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// DefaultMaxTopicLength is the topic length limit used when none is configured.
const DefaultMaxTopicLength = 200

// Flashcard and set validation errors
var (
	// ErrEmptyQuestion is returned when a flashcard question is blank.
	ErrEmptyQuestion = errors.New("flashcard question cannot be empty")

	// ErrEmptyAnswer is returned when a flashcard answer is blank.
	ErrEmptyAnswer = errors.New("flashcard answer cannot be empty")

	// ErrEmptySetID is returned when a flashcard set ID is nil.
	ErrEmptySetID = errors.New("flashcard set ID cannot be empty")

	// ErrEmptySetUserID is returned when a flashcard set has no owner.
	ErrEmptySetUserID = errors.New("flashcard set user ID cannot be empty")

	// ErrEmptyTopic is returned when a topic is blank.
	ErrEmptyTopic = errors.New("topic cannot be empty")

	// ErrTopicTooLong is returned when a topic exceeds the configured maximum length.
	ErrTopicTooLong = errors.New("topic is too long")

	// ErrEmptyFlashcards is returned when a set contains no flashcards.
	ErrEmptyFlashcards = errors.New("flashcard set must contain at least one flashcard")

	// ErrInvalidGenerationSource is returned for an unknown generation source.
	ErrInvalidGenerationSource = errors.New("invalid generation source")
)

// Flashcard is a single question/answer pair. It carries no identity beyond
// its position in the containing set.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// NewFlashcard trims both sides and rejects blank values.
func NewFlashcard(question, answer string) (Flashcard, error) {
	card := Flashcard{
		Question: strings.TrimSpace(question),
		Answer:   strings.TrimSpace(answer),
	}

	if err := card.Validate(); err != nil {
		return Flashcard{}, err
	}

	return card, nil
}

// Validate checks that both sides are non-empty after trimming.
func (f Flashcard) Validate() error {
	if strings.TrimSpace(f.Question) == "" {
		return ErrEmptyQuestion
	}

	if strings.TrimSpace(f.Answer) == "" {
		return ErrEmptyAnswer
	}

	return nil
}

// GenerationSource records where the flashcards of a set came from.
type GenerationSource string

// Possible generation sources
const (
	// SourceGenerated means the cards were extracted from a model completion.
	SourceGenerated GenerationSource = "generated"

	// SourceFallback means the deterministic placeholder cards were used.
	SourceFallback GenerationSource = "fallback"
)

// IsValid reports whether s is a known generation source.
func (s GenerationSource) IsValid() bool {
	switch s {
	case SourceGenerated, SourceFallback:
		return true
	default:
		return false
	}
}

// FlashcardSet is a saved group of flashcards generated for a single topic.
type FlashcardSet struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"user_id"`
	Topic          string           `json:"topic"`
	Flashcards     []Flashcard      `json:"flashcards"`
	Source         GenerationSource `json:"source"`
	RequestedCount int              `json:"requested_count"`
	CreatedAt      time.Time        `json:"created_at"`
}

// NewFlashcardSet creates a set for the given owner and topic.
// The topic is trimmed; maxTopicLength <= 0 falls back to DefaultMaxTopicLength.
func NewFlashcardSet(
	userID uuid.UUID,
	topic string,
	cards []Flashcard,
	source GenerationSource,
	requestedCount int,
	maxTopicLength int,
) (*FlashcardSet, error) {
	topic, err := NormalizeTopic(topic, maxTopicLength)
	if err != nil {
		return nil, err
	}

	set := &FlashcardSet{
		ID:             uuid.New(),
		UserID:         userID,
		Topic:          topic,
		Flashcards:     cards,
		Source:         source,
		RequestedCount: requestedCount,
		CreatedAt:      time.Now().UTC(),
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	return set, nil
}

// Validate checks if the FlashcardSet has valid data.
func (s *FlashcardSet) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySetID
	}

	if s.UserID == uuid.Nil {
		return ErrEmptySetUserID
	}

	if strings.TrimSpace(s.Topic) == "" {
		return ErrEmptyTopic
	}

	if !s.Source.IsValid() {
		return ErrInvalidGenerationSource
	}

	if len(s.Flashcards) == 0 {
		return ErrEmptyFlashcards
	}

	for _, card := range s.Flashcards {
		if err := card.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// CardCount returns the number of flashcards in the set.
func (s *FlashcardSet) CardCount() int {
	return len(s.Flashcards)
}

// Partial reports whether generation produced fewer cards than requested.
// Placeholder sets are never partial.
func (s *FlashcardSet) Partial() bool {
	return s.Source == SourceGenerated && len(s.Flashcards) < s.RequestedCount
}

// NormalizeTopic trims the topic and enforces the length limit, counted in runes.
func NormalizeTopic(topic string, maxLength int) (string, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxTopicLength
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", ErrEmptyTopic
	}

	if utf8.RuneCountInString(topic) > maxLength {
		return "", ErrTopicTooLong
	}

	return topic, nil
}

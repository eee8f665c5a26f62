package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/flashgen/internal/domain"
	"github.com/phrazzld/flashgen/internal/platform/logger"
	"github.com/phrazzld/flashgen/internal/redact"
)

// DefaultCount is used when Generate is called with a non-positive count.
const DefaultCount = 8

// maxLoggedResponse bounds how much raw model output reaches debug logs.
const maxLoggedResponse = 500

// Request is a single call to a text generation model.
type Request struct {
	SystemInstruction string
	UserPrompt        string
	Temperature       float32
	MaxOutputTokens   int32
}

// TextGenerator produces text from a prompt. Implementations own timeouts
// and transport concerns; the pipeline makes exactly one call per Generate.
type TextGenerator interface {
	GenerateText(ctx context.Context, req Request) (string, error)
}

// Config holds the static settings of a Pipeline.
type Config struct {
	// Enabled reports whether the generator may be called at all.
	Enabled bool
	// ModelName is recorded in logs only.
	ModelName string
	// DefaultCount replaces non-positive counts passed to Generate.
	DefaultCount int
}

// Result is the outcome of one Generate call. Flashcards is never empty.
type Result struct {
	Flashcards []domain.Flashcard
	// Requested is the number of cards asked for.
	Requested int
	// Source tells generated cards apart from placeholders.
	Source domain.GenerationSource
	// FallbackReason is set when Source is domain.SourceFallback.
	FallbackReason error
}

// Partial reports whether the model returned fewer valid cards than requested.
func (r Result) Partial() bool {
	return r.Source == domain.SourceGenerated && len(r.Flashcards) < r.Requested
}

// Degraded reports whether the result is anything other than a full generated set.
func (r Result) Degraded() bool {
	return r.Source == domain.SourceFallback || r.Partial()
}

// Pipeline generates flashcards for a topic. It keeps no mutable state and
// is safe for concurrent use.
type Pipeline struct {
	generator TextGenerator
	config    Config
	logger    *slog.Logger
}

// NewPipeline creates a Pipeline. A nil generator is allowed and behaves
// like a disabled one.
func NewPipeline(generator TextGenerator, cfg Config, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	if cfg.DefaultCount <= 0 {
		cfg.DefaultCount = DefaultCount
	}

	return &Pipeline{
		generator: generator,
		config:    cfg,
		logger:    log.With(slog.String("component", "generation_pipeline")),
	}
}

// Enabled reports whether the pipeline will call the model.
func (p *Pipeline) Enabled() bool {
	return p.config.Enabled && p.generator != nil
}

// Generate returns flashcards about topic. On success it returns at most
// count cards extracted from the model response; otherwise it returns the
// placeholder cards from Fallback. It never fails.
func (p *Pipeline) Generate(ctx context.Context, topic string, count int) Result {
	if count <= 0 {
		count = p.config.DefaultCount
	}

	log := logger.FromContextOrDefault(ctx, p.logger).With(
		slog.String("topic", topic),
		slog.Int("requested", count),
	)

	cards, err := p.generate(ctx, log, topic, count)
	if err != nil {
		log.WarnContext(ctx, "serving placeholder flashcards",
			slog.String("reason", redact.Error(err)),
			slog.String("model", p.config.ModelName))

		return Result{
			Flashcards:     Fallback(topic),
			Requested:      count,
			Source:         domain.SourceFallback,
			FallbackReason: err,
		}
	}

	if len(cards) > count {
		cards = cards[:count]
	}

	result := Result{
		Flashcards: cards,
		Requested:  count,
		Source:     domain.SourceGenerated,
	}

	log.InfoContext(ctx, "flashcards generated",
		slog.Int("card_count", len(cards)),
		slog.Bool("partial", result.Partial()))

	return result
}

// generate performs the model call and extraction. Any error it returns
// routes the caller to the fallback path.
func (p *Pipeline) generate(
	ctx context.Context,
	log *slog.Logger,
	topic string,
	count int,
) ([]domain.Flashcard, error) {
	if !p.Enabled() {
		return nil, ErrGeneratorUnavailable
	}

	text, err := p.generator.GenerateText(ctx, NewRequest(topic, count))
	if err != nil {
		return nil, errors.Join(ErrInvocationFailed, err)
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	log.DebugContext(ctx, "language model response received",
		slog.Int("response_length", len(text)),
		slog.String("response", redact.Truncate(text, maxLoggedResponse)))

	cards := Extract(text)
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: %d bytes of output", ErrMalformedResponse, len(text))
	}

	return cards, nil
}

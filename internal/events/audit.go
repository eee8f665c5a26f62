package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashgen/internal/domain"
	"github.com/phrazzld/flashgen/internal/platform/logger"
)

// GenerationAuditHandler logs every created flashcard set, at WARN when the
// cards are placeholders or fewer than requested.
type GenerationAuditHandler struct {
	logger *slog.Logger
}

var _ EventHandler = (*GenerationAuditHandler)(nil)

// NewGenerationAuditHandler creates a GenerationAuditHandler.
func NewGenerationAuditHandler(log *slog.Logger) *GenerationAuditHandler {
	if log == nil {
		log = slog.Default()
	}

	return &GenerationAuditHandler{
		logger: log.With(slog.String("component", "generation_audit")),
	}
}

// HandleEvent implements EventHandler. Events of other types are ignored.
func (h *GenerationAuditHandler) HandleEvent(ctx context.Context, event *Event) error {
	if event.Type != TypeFlashcardSetCreated {
		return nil
	}

	var created FlashcardSetCreated
	if err := event.UnmarshalPayload(&created); err != nil {
		return fmt.Errorf("decode %s payload: %w", event.Type, err)
	}

	log := logger.FromContextOrDefault(ctx, h.logger)
	attrs := []any{
		slog.String("set_id", created.SetID.String()),
		slog.String("user_id", created.UserID.String()),
		slog.String("source", created.Source),
		slog.Int("requested_count", created.RequestedCount),
		slog.Int("card_count", created.CardCount),
	}

	switch {
	case created.Source == string(domain.SourceFallback):
		log.WarnContext(ctx, "flashcard set created from placeholder cards",
			append(attrs, slog.String("fallback_reason", created.FallbackReason))...)
	case created.Partial:
		log.WarnContext(ctx, "flashcard set created with fewer cards than requested", attrs...)
	default:
		log.InfoContext(ctx, "flashcard set created", attrs...)
	}

	return nil
}

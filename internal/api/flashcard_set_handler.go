package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashgen/internal/api/shared"
	"github.com/phrazzld/flashgen/internal/platform/logger"
	"github.com/phrazzld/flashgen/internal/service"
)

// FlashcardSetHandler handles the flashcard set endpoints. Every route
// requires an authenticated user and only sees that user's sets.
type FlashcardSetHandler struct {
	service service.FlashcardSetService
	logger  *slog.Logger
}

// NewFlashcardSetHandler creates a new FlashcardSetHandler.
func NewFlashcardSetHandler(svc service.FlashcardSetService, log *slog.Logger) *FlashcardSetHandler {
	if log == nil {
		log = slog.Default()
	}

	return &FlashcardSetHandler{
		service: svc,
		logger:  log.With(slog.String("component", "flashcard_set_handler")),
	}
}

// CreateFlashcardSet handles POST /api/flashcard-sets. Generation runs
// within the request; a degraded result is still a 201.
func (h *FlashcardSetHandler) CreateFlashcardSet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateFlashcardSetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	set, err := h.service.CreateSet(r.Context(), userID, req.Topic)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).DebugContext(r.Context(), "flashcard set response",
		slog.String("set_id", set.ID.String()),
		slog.Bool("partial", set.Partial()))

	shared.RespondWithJSON(w, r, http.StatusCreated, flashcardSetToResponse(set))
}

// ListFlashcardSets handles GET /api/flashcard-sets.
func (h *FlashcardSetHandler) ListFlashcardSets(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	sets, err := h.service.ListSets(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list flashcard sets")
		return
	}

	resp := FlashcardSetListResponse{
		FlashcardSets: make([]FlashcardSetResponse, 0, len(sets)),
		Count:         len(sets),
	}
	for _, set := range sets {
		resp.FlashcardSets = append(resp.FlashcardSets, flashcardSetToResponse(set))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetFlashcardSet handles GET /api/flashcard-sets/{id}.
func (h *FlashcardSetHandler) GetFlashcardSet(w http.ResponseWriter, r *http.Request) {
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	set, err := h.service.GetSet(r.Context(), userID, setID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, flashcardSetToResponse(set))
}

// DeleteFlashcardSet handles DELETE /api/flashcard-sets/{id}.
func (h *FlashcardSetHandler) DeleteFlashcardSet(w http.ResponseWriter, r *http.Request) {
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSet(r.Context(), userID, setID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/flashgen/internal/api/middleware"
	"github.com/phrazzld/flashgen/internal/service"
	"github.com/phrazzld/flashgen/internal/service/auth"
	"github.com/phrazzld/flashgen/internal/store"
)

// RouterDeps are the collaborators the HTTP routes are built from.
type RouterDeps struct {
	UserStore           store.UserStore
	JWTService          auth.JWTService
	PasswordVerifier    auth.PasswordVerifier
	FlashcardSetService service.FlashcardSetService
	Logger              *slog.Logger
}

// NewRouter returns the application's HTTP handler with every route and
// middleware registered.
func NewRouter(deps RouterDeps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewTraceMiddleware(log))

	authHandler := NewAuthHandler(deps.UserStore, deps.JWTService, deps.PasswordVerifier, log)
	setHandler := NewFlashcardSetHandler(deps.FlashcardSetService, log)
	authMiddleware := middleware.NewAuthMiddleware(deps.JWTService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/me", authHandler.Me)

			r.Route("/flashcard-sets", func(r chi.Router) {
				r.Post("/", setHandler.CreateFlashcardSet)
				r.Get("/", setHandler.ListFlashcardSets)
				r.Get("/{id}", setHandler.GetFlashcardSet)
				r.Delete("/{id}", setHandler.DeleteFlashcardSet)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r
}

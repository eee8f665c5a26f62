package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/flashgen/internal/api"
	"github.com/phrazzld/flashgen/internal/config"
	"github.com/phrazzld/flashgen/internal/events"
	"github.com/phrazzld/flashgen/internal/generation"
	"github.com/phrazzld/flashgen/internal/platform/gemini"
	"github.com/phrazzld/flashgen/internal/platform/postgres"
	"github.com/phrazzld/flashgen/internal/service"
	"github.com/phrazzld/flashgen/internal/service/auth"
	"github.com/phrazzld/flashgen/internal/store"
)

// shutdownTimeout bounds how long in-flight requests may run after a stop signal.
const shutdownTimeout = 10 * time.Second

// application holds the dependencies of the serve command.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore         store.UserStore
	flashcardSetStore store.FlashcardSetStore
	jwtService        auth.JWTService
	passwordVerifier  auth.PasswordVerifier
	eventEmitter      *events.InMemoryEventEmitter
	setService        service.FlashcardSetService
}

// newApplication wires stores, services and the event emitter around an
// open database connection.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	log.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost, log)
	app.flashcardSetStore = postgres.NewPostgresFlashcardSetStore(db, log)

	pipeline, err := newPipeline(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(log)
	app.eventEmitter.RegisterHandler(events.NewGenerationAuditHandler(log))

	app.setService, err = service.NewFlashcardSetService(
		app.flashcardSetStore,
		pipeline,
		app.eventEmitter,
		service.FlashcardSetConfig{
			PerSet:         cfg.Flashcards.PerSet,
			MaxTopicLength: cfg.Flashcards.MaxTopicLength,
		},
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create flashcard set service: %w", err)
	}

	log.Info("application initialized",
		slog.Bool("generation_enabled", pipeline.Enabled()),
		slog.Int("flashcards_per_set", cfg.Flashcards.PerSet))
	return app, nil
}

// newPipeline builds the generation pipeline. Without a usable API key the
// pipeline has no generator and always serves placeholder cards.
func newPipeline(ctx context.Context, cfg *config.Config, log *slog.Logger) (*generation.Pipeline, error) {
	var generator generation.TextGenerator
	if gemini.Enabled(cfg.LLM) {
		client, err := gemini.NewClient(ctx, cfg.LLM, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
		}
		generator = client
		log.Info("language model client initialized", slog.String("model", cfg.LLM.ModelName))
	} else {
		log.Warn("language model disabled, flashcard sets will contain placeholder cards")
	}

	return generation.NewPipeline(generator, generation.Config{
		Enabled:      generator != nil,
		ModelName:    cfg.LLM.ModelName,
		DefaultCount: cfg.Flashcards.PerSet,
	}, log), nil
}

func (app *application) router() http.Handler {
	return api.NewRouter(api.RouterDeps{
		UserStore:           app.userStore,
		JWTService:          app.jwtService,
		PasswordVerifier:    app.passwordVerifier,
		FlashcardSetService: app.setService,
		Logger:              app.logger,
	})
}

// run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *application) run(ctx context.Context) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", slog.Int("port", app.config.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			app.logger.Error("server failed", slog.String("error", err.Error()))
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		app.logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("server shutdown failed", slog.String("error", err.Error()))
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.logger.Info("server shutdown completed")
	return nil
}

// close releases the database connection.
func (app *application) close() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database connection", slog.String("error", err.Error()))
	}
}

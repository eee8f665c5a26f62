package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/flashgen/internal/config"
	"github.com/phrazzld/flashgen/internal/generation"
	"github.com/phrazzld/flashgen/internal/platform/logger"
	"google.golang.org/genai"
)

// DefaultTimeout bounds a single call when no timeout is configured.
const DefaultTimeout = 30 * time.Second

var (
	// ErrMissingAPIKey is returned by NewClient without a usable API key.
	ErrMissingAPIKey = errors.New("gemini API key is not configured")

	// ErrMissingModel is returned by NewClient without a model name.
	ErrMissingModel = errors.New("gemini model name cannot be empty")

	// ErrContentBlocked is returned when the prompt or the answer was blocked.
	ErrContentBlocked = errors.New("gemini blocked the content")
)

// contentGenerator is the subset of *genai.Models used by Client.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Client implements generation.TextGenerator on top of the genai SDK.
type Client struct {
	models  contentGenerator
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

var _ generation.TextGenerator = (*Client)(nil)

// Enabled reports whether cfg allows calling Gemini at all.
func Enabled(cfg config.LLMConfig) bool {
	return cfg.GenerationEnabled()
}

// NewClient creates a Client for cfg. It fails when generation is not
// enabled by cfg, so callers should check Enabled first.
func NewClient(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (*Client, error) {
	if !Enabled(cfg) {
		return nil, ErrMissingAPIKey
	}
	if cfg.ModelName == "" {
		return nil, ErrMissingModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return newClient(client.Models, cfg.ModelName, time.Duration(cfg.RequestTimeoutSeconds)*time.Second, log), nil
}

func newClient(models contentGenerator, model string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		models:  models,
		model:   model,
		timeout: timeout,
		logger:  log.With(slog.String("component", "gemini_client"), slog.String("model", model)),
	}
}

// GenerateText implements generation.TextGenerator.
func (c *Client) GenerateText(ctx context.Context, req generation.Request) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: req.MaxOutputTokens,
	}
	if req.SystemInstruction != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(
		ctx,
		c.model,
		[]*genai.Content{genai.NewContentFromText(req.UserPrompt, genai.RoleUser)},
		genConfig,
	)
	elapsed := time.Since(start)
	if err != nil {
		log.DebugContext(ctx, "gemini call failed", slog.Duration("elapsed", elapsed))
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if err := checkBlocked(resp); err != nil {
		return "", err
	}

	text := resp.Text()
	log.DebugContext(ctx, "gemini call completed",
		slog.Duration("elapsed", elapsed),
		slog.Int("response_length", len(text)))

	return text, nil
}

func checkBlocked(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return nil
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return fmt.Errorf("%w: prompt: %s", ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return fmt.Errorf("%w: response: %s", ErrContentBlocked, resp.Candidates[0].FinishReason)
	}

	return nil
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/phrazzld/flashgen/internal/config"
	"github.com/phrazzld/flashgen/internal/domain"
	"github.com/phrazzld/flashgen/internal/generation"
	"github.com/phrazzld/flashgen/internal/redact"
	"github.com/spf13/cobra"
)

// generateOutput is the JSON document printed by the generate command.
type generateOutput struct {
	Topic          string             `json:"topic"`
	Source         string             `json:"source"`
	RequestedCount int                `json:"requested_count"`
	Partial        bool               `json:"partial"`
	FallbackReason string             `json:"fallback_reason,omitempty"`
	Flashcards     []domain.Flashcard `json:"flashcards"`
}

func newGenerateCmd() *cobra.Command {
	var (
		topic string
		count int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate flashcards for a topic and print them as JSON",
		Long: `Generate runs the flashcard pipeline once and prints the result. It needs
no database. When the language model is disabled or fails, the placeholder
cards are printed along with the reason.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.LoadGenerationFile(configPath(cmd))
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			normalized, err := domain.NormalizeTopic(topic, cfg.Flashcards.MaxTopicLength)
			if err != nil {
				return err
			}
			if count <= 0 {
				count = cfg.Flashcards.PerSet
			}

			log, err := setupLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			pipeline, err := newPipeline(ctx, cfg, log)
			if err != nil {
				return err
			}

			result := pipeline.Generate(ctx, normalized, count)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(newGenerateOutput(normalized, result))
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "topic to generate flashcards about")
	cmd.Flags().IntVar(&count, "count", 0, "number of flashcards to request (default: flashcards.per_set)")
	_ = cmd.MarkFlagRequired("topic")

	return cmd
}

func newGenerateOutput(topic string, result generation.Result) generateOutput {
	out := generateOutput{
		Topic:          topic,
		Source:         string(result.Source),
		RequestedCount: result.Requested,
		Partial:        result.Partial(),
		Flashcards:     result.Flashcards,
	}
	if result.FallbackReason != nil {
		out.FallbackReason = redact.Error(result.FallbackReason)
	}
	return out
}

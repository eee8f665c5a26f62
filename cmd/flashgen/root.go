package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/flashgen/internal/config"
	"github.com/phrazzld/flashgen/internal/platform/logger"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Every subcommand reads its
// configuration through the persistent --config flag and FLASHGEN_ variables.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "flashgen",
		Short: "Generate study flashcards with a language model",
		Long: `flashgen turns a topic into a set of question and answer flashcards.

The serve command runs the JSON API with user accounts and saved flashcard
sets. The generate command runs a single generation from the shell without a
database. Configuration comes from an optional config.yaml and FLASHGEN_
environment variables such as FLASHGEN_LLM_GEMINI_API_KEY.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file (default: ./config.yaml when present)")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newGenerateCmd(),
		newVersionCmd(),
	)

	return root
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}

// setupLogger installs the configured JSON logger as the slog default and
// points it at w.
func setupLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	log, err := logger.SetupWithWriter(cfg.Server, w)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return log, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of flashgen",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "flashgen %s\n", version)
		},
	}
}

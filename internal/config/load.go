package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for all environment variables read by Load.
const EnvPrefix = "FLASHGEN"

// Default values applied before file and environment sources.
const (
	DefaultPort                        = 8080
	DefaultLogLevel                    = "info"
	DefaultBCryptCost                  = 10
	DefaultTokenLifetimeMinutes        = 60
	DefaultRefreshTokenLifetimeMinutes = 10080
	DefaultModelName                   = "gemini-2.0-flash"
	DefaultRequestTimeoutSeconds       = 30
	DefaultFlashcardsPerSet            = 8
	DefaultMaxTopicLength              = 200
)

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from the config file.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile behaves like Load but reads the given config file when path is
// non-empty. A missing default config.yaml is not an error.
func LoadFile(path string) (*Config, error) {
	return load(path, func(validate *validator.Validate, cfg *Config) error {
		return validate.Struct(cfg)
	})
}

// LoadGenerationFile reads configuration like LoadFile but validates only
// the llm and flashcards groups, for commands that never touch the database
// or issue tokens.
func LoadGenerationFile(path string) (*Config, error) {
	return load(path, func(validate *validator.Validate, cfg *Config) error {
		if err := validate.Struct(cfg.LLM); err != nil {
			return err
		}
		return validate.Struct(cfg.Flashcards)
	})
}

func load(path string, check func(*validator.Validate, *Config) error) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := check(validator.New(), &cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)

	v.SetDefault("database.url", "")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.bcrypt_cost", DefaultBCryptCost)
	v.SetDefault("auth.token_lifetime_minutes", DefaultTokenLifetimeMinutes)
	v.SetDefault("auth.refresh_token_lifetime_minutes", DefaultRefreshTokenLifetimeMinutes)

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.model_name", DefaultModelName)
	v.SetDefault("llm.enabled", true)
	v.SetDefault("llm.request_timeout_seconds", DefaultRequestTimeoutSeconds)

	v.SetDefault("flashcards.per_set", DefaultFlashcardsPerSet)
	v.SetDefault("flashcards.max_topic_length", DefaultMaxTopicLength)
}

// GenerationEnabled reports whether the language model can be called: it must
// be switched on and have an API key that is not a placeholder.
func (c LLMConfig) GenerationEnabled() bool {
	key := strings.TrimSpace(c.GeminiAPIKey)
	if !c.Enabled || key == "" {
		return false
	}

	lower := strings.ToLower(key)
	for _, placeholder := range placeholderKeyPrefixes {
		if strings.HasPrefix(lower, placeholder) {
			return false
		}
	}

	return true
}

var placeholderKeyPrefixes = []string{"dummy", "gsk_dummy", "your-", "changeme"}

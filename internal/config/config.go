package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"       validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Flashcards FlashcardsConfig `mapstructure:"flashcards" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	BCryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"gte=4,lte=31"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"gt=0,lt=44640"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"gt=0,lt=44640,gtfield=TokenLifetimeMinutes"`
}

// LLMConfig contains the language model settings. The API key is optional:
// without a usable key flashcard generation serves placeholder cards.
type LLMConfig struct {
	GeminiAPIKey          string `mapstructure:"gemini_api_key"`
	ModelName             string `mapstructure:"model_name"              validate:"required"`
	Enabled               bool   `mapstructure:"enabled"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"gt=0,lte=300"`
}

// FlashcardsConfig contains flashcard generation limits.
type FlashcardsConfig struct {
	PerSet         int `mapstructure:"per_set"          validate:"gt=0,lte=50"`
	MaxTopicLength int `mapstructure:"max_topic_length" validate:"gt=0,lte=1000"`
}

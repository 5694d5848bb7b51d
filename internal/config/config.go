package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server       ServerConfig       `mapstructure:"server" validate:"required"`
	Database     DatabaseConfig     `mapstructure:"database" validate:"required"`
	Auth         AuthConfig         `mapstructure:"auth" validate:"required"`
	LLM          LLMConfig          `mapstructure:"llm" validate:"required"`
	Notification NotificationConfig `mapstructure:"notification"`
	Dispatch     DispatchConfig     `mapstructure:"dispatch" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`

	// AutoMigrate runs the embedded migrations on startup when true.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret        string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMin int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`

	// APIKeyHash is the bcrypt hash of the service API key accepted on
	// internal endpoints. Generated with cmd/hash-generator.
	APIKeyHash string `mapstructure:"api_key_hash"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName         string `mapstructure:"model_name" validate:"required"`
	EmbeddingModel    string `mapstructure:"embedding_model" validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries" validate:"gte=0"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=0"`
}

// NotificationConfig contains the SMTP transport settings used to deliver
// completion notifications. Notifications are disabled when Enabled is false;
// the dispatcher then uses a no-op transport.
type NotificationConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	SMTPHost   string `mapstructure:"smtp_host" validate:"required_if=Enabled true"`
	SMTPPort   int    `mapstructure:"smtp_port" validate:"required_if=Enabled true"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	FromAddr   string `mapstructure:"from_addr" validate:"required_if=Enabled true"`
	Encryption string `mapstructure:"encryption" validate:"omitempty,oneof=none starttls ssl_tls"`
}

// DispatchConfig controls the task-completion event fan-out.
type DispatchConfig struct {
	// ConsumerTimeout bounds each consumer's execution per dispatch.
	ConsumerTimeout time.Duration `mapstructure:"consumer_timeout" validate:"required,gt=0"`

	// DisabledKinds lists event kinds for which publishing is a no-op,
	// allowing the whole mechanism to be switched off per kind.
	DisabledKinds []string `mapstructure:"disabled_kinds"`
}

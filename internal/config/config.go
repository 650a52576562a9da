package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// CORSOrigins lists the origins allowed to call the API from a browser.
	// A single "*" entry allows any origin.
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"required,gte=4,lte=31"`
}

// LLMConfig contains all settings for the generative-language integration.
//
// The retry/timeout numbers are deliberately configuration rather than
// constants: the provider's behavior has shifted across model versions, and
// deployments tune these without a rebuild.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name"     validate:"required"`

	// Retry policy for provider calls.
	MaxRetries             int `mapstructure:"max_retries"              validate:"required,gt=0"`
	RetryDelaySeconds      int `mapstructure:"retry_delay_seconds"      validate:"required,gt=0"`
	OverloadPenaltySeconds int `mapstructure:"overload_penalty_seconds" validate:"gte=0"`
	RequestTimeoutSeconds  int `mapstructure:"request_timeout_seconds"  validate:"required,gt=0"`

	// Generation parameters passed through to the provider.
	Temperature     float32 `mapstructure:"temperature"       validate:"gte=0,lte=2"`
	MaxOutputTokens int32   `mapstructure:"max_output_tokens" validate:"required,gt=0"`
	TopP            float32 `mapstructure:"top_p"             validate:"gte=0,lte=1"`
	TopK            float32 `mapstructure:"top_k"             validate:"gte=0"`
}

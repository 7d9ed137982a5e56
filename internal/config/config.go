package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Scoring  ScoringConfig  `mapstructure:"scoring" validate:"required"`
	Bot      BotConfig      `mapstructure:"bot"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// ScoringConfig contains the settings for the external scoring service.
// TimeoutSeconds bounds every scoring call; a timeout is treated the
// same as a scoring failure by the practice session.
type ScoringConfig struct {
	GeminiAPIKey   string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName      string `mapstructure:"model_name" validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries     int    `mapstructure:"max_retries" validate:"gte=0"`
}

// BotConfig contains the Telegram front-end settings. The token is only
// required by the bot binary, so it is not validated here.
type BotConfig struct {
	Token            string `mapstructure:"token"`
	ReminderInterval int    `mapstructure:"reminder_interval_hours"`
}

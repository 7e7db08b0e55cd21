package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Client  ClientConfig  `mapstructure:"client" validate:"required"`
	Backend BackendConfig `mapstructure:"backend"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// ClientConfig configures the outbound generation client.
//
// Endpoint is not validated here. An empty or placeholder value still loads,
// and every generation call then fails with a configuration error instead of
// reaching the network.
type ClientConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// BackendConfig configures the built-in development backend that serves the
// remote generation contract locally.
type BackendConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	GeminiAPIKey      string `mapstructure:"gemini_api_key" validate:"required_if=Enabled true"`
	ModelName         string `mapstructure:"model_name" validate:"required_if=Enabled true"`
	FallbackModelName string `mapstructure:"fallback_model_name"`
	ProxyEnvelope     bool   `mapstructure:"proxy_envelope"`
}

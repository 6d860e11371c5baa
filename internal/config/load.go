package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default values applied before any config file or environment variable is
// read. Only settings with a sensible universal default get one; secrets
// never do.
const (
	defaultPort                        = 8080
	defaultLogLevel                    = "info"
	defaultTokenLifetimeMinutes        = 60
	defaultRefreshTokenLifetimeMinutes = 10080 // 7 days
	defaultGenerationModel             = "gemini-2.0-flash"
)

// Load configuration from environment variables and optionally config files.
// Environment variables (prefixed WORDWAY_) take precedence over values from
// config files. Returns a populated Config struct or an error if
// loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", defaultPort)
	v.SetDefault("server.log_level", defaultLogLevel)
	v.SetDefault("auth.token_lifetime_minutes", defaultTokenLifetimeMinutes)
	v.SetDefault("auth.refresh_token_lifetime_minutes", defaultRefreshTokenLifetimeMinutes)
	v.SetDefault("generation.model_name", defaultGenerationModel)

	// Optional config file in the working directory. A missing file is
	// fine; a malformed one is not.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables: WORDWAY_SERVER_PORT, WORDWAY_DATABASE_URL, etc.
	v.SetEnvPrefix("WORDWAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults must be bound explicitly or AutomaticEnv will
	// not surface them through Unmarshal.
	for _, key := range []string{
		"database.url",
		"auth.jwt_secret",
		"auth.bcrypt_cost",
		"generation.gemini_api_key",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

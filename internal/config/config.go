/**
 * @description
 * This file handles the configuration management for the CRM backend.
 * It uses the 'viper' library to load configuration from environment
 * variables, providing a centralized and consistent way to manage
 * application settings.
 */
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	AppEnv     string `mapstructure:"APP_ENV"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`
	RedisURL    string `mapstructure:"REDIS_URL"`
	RabbitMQURL string `mapstructure:"RABBITMQ_URL"`

	AuthServiceURL     string `mapstructure:"AUTH_SERVICE_URL"`
	SessionCookieName  string `mapstructure:"SESSION_COOKIE_NAME"`
	ServiceTokenSecret string `mapstructure:"SERVICE_TOKEN_SECRET"`

	BinanceAPIURL           string `mapstructure:"BINANCE_API_URL"`
	QuoteCacheTTLSeconds    int    `mapstructure:"QUOTE_CACHE_TTL_SECONDS"`
	QuoteRateLimitPerMinute int    `mapstructure:"QUOTE_RATE_LIMIT_PER_MINUTE"`

	ExpirationSweepSchedule string `mapstructure:"EXPIRATION_SWEEP_SCHEDULE"`
}

// IsProduction reports whether the app runs with production behavior.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (config Config, err error) {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("SESSION_COOKIE_NAME", "better-auth.session_token")
	viper.SetDefault("QUOTE_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("QUOTE_RATE_LIMIT_PER_MINUTE", 30)
	viper.SetDefault("EXPIRATION_SWEEP_SCHEDULE", "*/10 * * * *")
	viper.AutomaticEnv()

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("APP_ENV")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("REDIS_URL")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("AUTH_SERVICE_URL")
	_ = viper.BindEnv("SESSION_COOKIE_NAME")
	_ = viper.BindEnv("SERVICE_TOKEN_SECRET")
	_ = viper.BindEnv("BINANCE_API_URL")
	_ = viper.BindEnv("QUOTE_CACHE_TTL_SECONDS")
	_ = viper.BindEnv("QUOTE_RATE_LIMIT_PER_MINUTE")
	_ = viper.BindEnv("EXPIRATION_SWEEP_SCHEDULE")

	if err = viper.Unmarshal(&config); err != nil {
		return
	}

	if config.DatabaseURL == "" {
		err = fmt.Errorf("DATABASE_URL is required")
	}
	return
}

package configs

import (
	"os"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Telegram  TelegramConfig
	Market    MarketConfig
	Portfolio PortfolioConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port     string
	Env      string
	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// TelegramConfig holds Telegram Bot API configuration
type TelegramConfig struct {
	Token string
}

// MarketConfig holds market data (MOEX ISS) configuration
type MarketConfig struct {
	BaseURL string
}

// PortfolioConfig holds portfolio advice settings.
// AutoRebalance and UpdateFrequency only shape the advice text sent to the
// user; no background rebalancing is performed.
type PortfolioConfig struct {
	AutoRebalance   bool
	UpdateFrequency string // monthly, quarterly, yearly
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:     getEnv("PORT", "8080"),
			Env:      getEnv("GO_ENV", "development"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Telegram: TelegramConfig{
			Token: getEnv("BOT_TOKEN", ""),
		},
		Market: MarketConfig{
			BaseURL: getEnv("MOEX_BASE_URL", "https://iss.moex.com"),
		},
		Portfolio: PortfolioConfig{
			AutoRebalance:   strings.EqualFold(getEnv("AUTO_REBALANCE", "true"), "true"),
			UpdateFrequency: getEnv("UPDATE_FREQUENCY", "quarterly"),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

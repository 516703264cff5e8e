package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Cooperative identity, printed on documents and mails.
	CoopName       string
	CoopStreet     string
	CoopCity       string
	CoopFromEmail  string
	CoopSharePrice decimal.Decimal

	// SMTP delivery settings for member notifications.
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string

	// Rate limit for the public registration endpoint, in limiter notation
	// such as "10-M" (10 requests per minute).
	RegisterRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "tapir-backend")
	viper.SetDefault("COOP_NAME", "SuperCoop Berlin eG")
	viper.SetDefault("COOP_STREET", "Oudenarder Str. 16")
	viper.SetDefault("COOP_CITY", "13347 Berlin")
	viper.SetDefault("COOP_FROM_EMAIL", "mitglied@supercoop.de")
	viper.SetDefault("COOP_SHARE_PRICE", "100")
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", "25")
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("REGISTER_RATE_LIMIT", "10-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if !cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	expiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_DURATION: %w", err)
	}
	cfg.JWTExpiryDuration = expiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.CoopName = viper.GetString("COOP_NAME")
	cfg.CoopStreet = viper.GetString("COOP_STREET")
	cfg.CoopCity = viper.GetString("COOP_CITY")
	cfg.CoopFromEmail = viper.GetString("COOP_FROM_EMAIL")

	sharePrice, err := decimal.NewFromString(viper.GetString("COOP_SHARE_PRICE"))
	if err != nil {
		return nil, fmt.Errorf("invalid COOP_SHARE_PRICE: %w", err)
	}
	cfg.CoopSharePrice = sharePrice

	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	cfg.SMTPPort = viper.GetString("SMTP_PORT")
	cfg.SMTPUsername = viper.GetString("SMTP_USERNAME")
	cfg.SMTPPassword = viper.GetString("SMTP_PASSWORD")

	cfg.RegisterRateLimit = viper.GetString("REGISTER_RATE_LIMIT")

	return cfg, nil
}

package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	PaystackSecretKey string

	DefaultCurrency     string
	DefaultDailyLimit   decimal.Decimal
	DefaultMonthlyLimit decimal.Decimal

	// RateLimit uses the limiter formatted syntax, e.g. "10-M" for 10 per minute.
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "vsend-wallet-backend")
	viper.SetDefault("PAYSTACK_SECRET_KEY", "")
	viper.SetDefault("DEFAULT_CURRENCY", "GHS")
	viper.SetDefault("DEFAULT_DAILY_LIMIT", "5000")
	viper.SetDefault("DEFAULT_MONTHLY_LIMIT", "50000")
	viper.SetDefault("RATE_LIMIT", "30-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.PaystackSecretKey = viper.GetString("PAYSTACK_SECRET_KEY")
	if cfg.PaystackSecretKey == "" {
		log.Println("Warning: PAYSTACK_SECRET_KEY not set. Top-ups and withdrawals will fail.")
	}

	cfg.DefaultCurrency = viper.GetString("DEFAULT_CURRENCY")

	dailyLimit, err := decimal.NewFromString(viper.GetString("DEFAULT_DAILY_LIMIT"))
	if err != nil {
		dailyLimit = decimal.NewFromInt(5000)
		log.Printf("Warning: Invalid DEFAULT_DAILY_LIMIT. Defaulting to %s.\n", dailyLimit.String())
	}
	cfg.DefaultDailyLimit = dailyLimit

	monthlyLimit, err := decimal.NewFromString(viper.GetString("DEFAULT_MONTHLY_LIMIT"))
	if err != nil {
		monthlyLimit = decimal.NewFromInt(50000)
		log.Printf("Warning: Invalid DEFAULT_MONTHLY_LIMIT. Defaulting to %s.\n", monthlyLimit.String())
	}
	cfg.DefaultMonthlyLimit = monthlyLimit

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}

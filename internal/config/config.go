package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Redis       RedisConfig
	SMS         SMSConfig
	Auth        AuthConfig
	Orders      OrdersConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SMSConfig configures the SMS gateway. With an empty URL or key the gateway
// runs in simulation mode and only logs outgoing messages.
type SMSConfig struct {
	APIURL string
	APIKey string
	Sender string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type OrdersConfig struct {
	// DeliveryFee is a flat fee in GNF. Zone-based pricing is a known
	// simplification; every order currently pays the same fee.
	DeliveryFee float64
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SMS_SENDER", "FASHOP")
	viper.SetDefault("DELIVERY_FEE", "15000")
	viper.SetDefault("TOKEN_TTL_HOURS", "24")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	deliveryFee, err := strconv.ParseFloat(getEnvOrViper("DELIVERY_FEE", "15000"), 64)
	if err != nil || deliveryFee < 0 {
		return nil, fmt.Errorf("DELIVERY_FEE must be a non-negative number")
	}

	ttlHours, err := strconv.Atoi(getEnvOrViper("TOKEN_TTL_HOURS", "24"))
	if err != nil || ttlHours < 1 {
		return nil, fmt.Errorf("TOKEN_TTL_HOURS must be a positive integer")
	}

	redisDB, _ := strconv.Atoi(getEnvOrViper("REDIS_DB", "0"))

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "fashop"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrViper("REDIS_ADDR", ""),
			Password: getEnvOrViper("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		SMS: SMSConfig{
			APIURL: getEnvOrViper("SMS_API_URL", ""),
			APIKey: getEnvOrViper("SMS_API_KEY", ""),
			Sender: getEnvOrViper("SMS_SENDER", "FASHOP"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnvOrViper("JWT_SECRET", ""),
			TokenTTL:  time.Duration(ttlHours) * time.Hour,
		},
		Orders: OrdersConfig{
			DeliveryFee: deliveryFee,
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DatasetPath   string `env:"DATASET_PATH" envDefault:"data/master_dataset.csv"`
	DatasetFormat string `env:"DATASET_FORMAT" envDefault:"csv"` // csv, xlsx or postgres

	ModelMode      string `env:"MODEL_MODE" envDefault:"local"` // local or remote
	RiskModelPath  string `env:"RISK_MODEL_PATH" envDefault:"models/risk_classifier.json"`
	YieldModelPath string `env:"YIELD_MODEL_PATH" envDefault:"models/yield_regressor.json"`

	ModelServerURL      string `env:"MODEL_SERVER_URL" envDefault:"http://localhost:8500"`
	ModelRequestTimeout int    `env:"MODEL_REQUEST_TIMEOUT" envDefault:"30"` // seconds
	ModelRateLimit      int    `env:"MODEL_RATE_LIMIT" envDefault:"5"`       // requests per second

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"agrishield"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"-"`
	DBName     string `env:"DB_NAME" envDefault:"agrishield"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.Port = getEnvWithDefault("PORT", "8080")
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")

	cfg.DatasetPath = getEnvWithDefault("DATASET_PATH", "data/master_dataset.csv")
	cfg.DatasetFormat = getEnvWithDefault("DATASET_FORMAT", "csv")

	cfg.ModelMode = getEnvWithDefault("MODEL_MODE", "local")
	cfg.RiskModelPath = getEnvWithDefault("RISK_MODEL_PATH", "models/risk_classifier.json")
	cfg.YieldModelPath = getEnvWithDefault("YIELD_MODEL_PATH", "models/yield_regressor.json")

	cfg.ModelServerURL = getEnvWithDefault("MODEL_SERVER_URL", "http://localhost:8500")
	cfg.ModelRequestTimeout = getEnvIntWithDefault("MODEL_REQUEST_TIMEOUT", 30)
	cfg.ModelRateLimit = getEnvIntWithDefault("MODEL_RATE_LIMIT", 5)

	cfg.DBHost = getEnvWithDefault("DB_HOST", "localhost")
	cfg.DBPort = getEnvWithDefault("DB_PORT", "5432")
	cfg.DBUser = getEnvWithDefault("DB_USER", "agrishield")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = getEnvWithDefault("DB_NAME", "agrishield")
	cfg.DBSSLMode = getEnvWithDefault("DB_SSLMODE", "disable")

	return &cfg, nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port             string
	LogLevel         string
	Storage          string
	DBConn           string
	RedisAddr        string
	JWTSecret        string
	HMACSecret       string
	CBRURL           string
	KeyRateCron      string
	KeyRateBenchmark bool
	LenderRatesFile  string
	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	SenderEmail      string
}

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		Storage:         getEnv("STORAGE", StorageMemory),
		DBConn:          getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=emi sslmode=disable"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		JWTSecret:       getEnv("JWT_SECRET", "secret"),
		HMACSecret:      getEnv("HMAC_SECRET", "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"),
		CBRURL:          getEnv("CBR_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		KeyRateCron:     getEnv("KEY_RATE_CRON", "@every 6h"),
		LenderRatesFile: getEnv("LENDER_RATES_FILE", ""),
		SMTPHost:        getEnv("SMTP_HOST", "localhost"),
		SMTPPort:        getEnv("SMTP_PORT", "1025"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SenderEmail:     getEnv("SENDER_EMAIL", "emi@localhost"),
	}

	benchmark, err := strconv.ParseBool(getEnv("KEY_RATE_BENCHMARK", "false"))
	if err != nil {
		return nil, fmt.Errorf("KEY_RATE_BENCHMARK must be a boolean: %w", err)
	}
	cfg.KeyRateBenchmark = benchmark

	switch cfg.Storage {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DBConn == "" {
			return nil, fmt.Errorf("DB_CONN is required")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE %q", cfg.Storage)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.HMACSecret == "" {
		return nil, fmt.Errorf("HMAC_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

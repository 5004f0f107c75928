// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"cashless-wallet/pkg/db"
)

// RedisConfig holds the optional Redis connection settings. An empty Addr
// disables caching entirely.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	// PublicBaseURL is the externally reachable address scan URLs are
	// built from.
	PublicBaseURL string
	DB            db.Config
	Redis         RedisConfig
}

// LoadConfig loads configuration from a .env file (if present) and the
// environment. It returns an AppConfig instance or an error if any variable
// is malformed.
func LoadConfig() (*AppConfig, error) {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	serverPort := getEnv("SERVER_PORT", "8080")
	publicBaseURL := getEnv("PUBLIC_BASE_URL", "http://localhost:"+serverPort)

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if redisDB, err = strconv.Atoi(raw); err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
	}

	return &AppConfig{
		ServerPort:    serverPort,
		PublicBaseURL: publicBaseURL,
		DB: db.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "cashlessdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
// The values are loaded from environment variables.
type AppConfig struct {
	// Core settings
	Port         string
	DatabasePath string
	LogLevel     string

	// Security settings
	JWTSecret         string
	OwnerPasswordHash string // bcrypt hash of the single owner's password
	AccessTokenExpiry time.Duration

	// CORS
	AllowedOrigins []string

	// Engine settings
	UpcomingWindowDays int   // default window for the upcoming-occurrences list
	MaxNavigationYears int   // how far month navigation may wander from today
	MaxImportSizeBytes int64 // upper bound on an import payload
}

// Cfg is a global instance of the AppConfig.
var Cfg *AppConfig

// LoadConfig loads configuration from environment variables or a .env file.
// It centralizes all configuration logic for the application.
func LoadConfig() {
	// 1. Try loading from the current directory (standard behavior)
	errEnv := godotenv.Load()

	// 2. If not found, try loading from the parent directory (common when running from /backend)
	if errEnv != nil {
		errEnv = godotenv.Load("../.env")
	}

	if errEnv != nil {
		if os.IsNotExist(errEnv) {
			log.Println("Info: No .env file found in current or parent directory. Relying on OS environment variables (expected in production).")
		} else {
			log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", errEnv)
		}
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	jwtSecret := getRequiredEnv("JWT_SECRET")
	ownerPasswordHash := getRequiredEnv("OWNER_PASSWORD_HASH")

	maxImportSizeStr := getEnv("MAX_IMPORT_SIZE_BYTES", "5242880") // 5MB default
	maxImportSize, err := strconv.ParseInt(maxImportSizeStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_IMPORT_SIZE_BYTES format '%s'. Using default 5MB. Error: %v", maxImportSizeStr, err)
		maxImportSize = 5 * 1024 * 1024
	}

	Cfg = &AppConfig{
		Port:         getEnv("PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "./prosper.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		JWTSecret:         jwtSecret,
		OwnerPasswordHash: ownerPasswordHash,
		AccessTokenExpiry: getEnvAsDuration("ACCESS_TOKEN_EXPIRY", 168*time.Hour), // 7 days

		AllowedOrigins: getOriginList("ALLOWED_ORIGINS", "http://localhost:3000"),

		UpcomingWindowDays: getEnvAsInt("UPCOMING_WINDOW_DAYS", 7),
		MaxNavigationYears: getEnvAsInt("MAX_NAVIGATION_YEARS", 10),
		MaxImportSizeBytes: maxImportSize,
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath)
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

// getRequiredEnv retrieves an environment variable or terminates the application if not set.
func getRequiredEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		log.Fatalf("FATAL: Required environment variable %s is not set or is empty. Application cannot start securely.", key)
	}
	return value
}

// getEnvAsInt retrieves an environment variable as an integer or returns a fallback.
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}

// getOriginList retrieves and parses a comma-separated list of allowed origins.
func getOriginList(key, fallback string) []string {
	originsStr := getEnv(key, fallback)
	origins := strings.Split(originsStr, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	return origins
}

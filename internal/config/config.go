package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Server
	Env  string
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Session cookie
	SessionSecret   string
	SessionTTL      time.Duration
	CookieSameSite  string // "lax", "strict", or "none"
	CookieSecure    bool

	// Google sign-in
	GoogleClientID string

	// Currency resolution
	GeoAPIURL       string
	DefaultCurrency string
}

var appConfig *Config

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "cashira"),
		DBPassword: getEnv("DB_PASSWORD", "cashira"),
		DBName:     getEnv("DB_NAME", "cashira"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		SessionSecret: getEnv("SESSION_SECRET", "fallback-secret-key-for-dev-only"),
		// "none" is required when the frontend is served from a different
		// origin than the API; it implies Secure. "lax" is the safer default
		// for same-site deployments.
		CookieSameSite: getEnv("COOKIE_SAMESITE", "lax"),
		CookieSecure:   getEnv("COOKIE_SECURE", "false") == "true",

		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),

		GeoAPIURL:       getEnv("GEO_API_URL", "https://ipapi.co/json/"),
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "USD"),
	}

	ttlStr := getEnv("SESSION_TTL", "120h") // 5 days
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		log.Printf("Warning: invalid SESSION_TTL value '%s', falling back to 120h\n", ttlStr)
		ttl = 120 * time.Hour
	}
	config.SessionTTL = ttl

	if config.CookieSameSite == "none" {
		// SameSite=None cookies are rejected by browsers unless Secure.
		config.CookieSecure = true
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration.
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Set replaces the cached configuration. Intended for tests.
func Set(c *Config) {
	appConfig = c
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

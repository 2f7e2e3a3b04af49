package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL  string
	SQLitePath   string
	Port         string
	GoEnv        string
	LogLevel     string
	OnlineWindow time.Duration
	StrictUsers  bool
}

var appConfig *Config

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	// Determine which environment file to load
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		// If environment-specific file doesn't exist, try .env
		if err := godotenv.Load(); err != nil {
			// In production, environment variables are set directly
			// so it's okay if .env files don't exist
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	onlineWindowSeconds, err := strconv.Atoi(getEnv("ONLINE_WINDOW_SECONDS", "120"))
	if err != nil || onlineWindowSeconds <= 0 {
		return nil, fmt.Errorf("ONLINE_WINDOW_SECONDS must be a positive integer")
	}

	strictUsers, err := strconv.ParseBool(getEnv("STRICT_USERS", "false"))
	if err != nil {
		return nil, fmt.Errorf("STRICT_USERS must be a boolean")
	}

	config := &Config{
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		SQLitePath:   getEnv("SQLITE_PATH", "data/gigconnect.db"),
		Port:         getEnv("PORT", "8080"),
		GoEnv:        getEnv("GO_ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		OnlineWindow: time.Duration(onlineWindowSeconds) * time.Second,
		StrictUsers:  strictUsers,
	}

	appConfig = config
	return config, nil
}

// GetConfig returns the loaded configuration, loading it on demand if needed
func GetConfig() *Config {
	if appConfig == nil {
		cfg, err := Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		appConfig = cfg
	}
	return appConfig
}

// SetConfig replaces the active configuration (used by tests)
func SetConfig(cfg *Config) {
	appConfig = cfg
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

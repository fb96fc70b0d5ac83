package server

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the service settings, read from the environment.
type Config struct {
	Port       string
	LogLevel   string
	FontDir    string
	Stationery string // optional institutional stationery PDF
}

// Load reads .env (if present) and builds the config from environment
// variables with defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	return Config{
		Port:       getEnv("PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		FontDir:    getEnv("FONT_DIR", ""),
		Stationery: getEnv("STATIONERY", ""),
	}
}

// getEnv reads an environment variable or returns the provided default.
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

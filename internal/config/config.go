package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Gemini AI
	GeminiAPIKey       string
	GeminiResponseMode string

	// Logging
	LogFile      string
	LogMaxSizeMB int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port: getEnvOrDefault("PORT", "8080"),
		Env:  getEnvOrDefault("ENV", "development"),
		// Not required at startup: a missing key is reported per request.
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiResponseMode: getEnvOrDefault("GEMINI_RESPONSE_MODE", "stream"),
		LogFile:            getEnvOrDefault("LOG_FILE", ""),
		LogMaxSizeMB:       getEnvAsIntOrDefault("LOG_MAX_SIZE_MB", 5),
		FrontendURL:        getEnvOrDefault("FRONTEND_URL", ""),
	}

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds process configuration resolved from the environment.
type Config struct {
	Port                         string
	ProjectID                    string
	WebAPIKey                    string // Identity Toolkit browser key for credential operations
	GoogleApplicationCredentials string // Path to service account JSON (optional)
	AuthRateLimitRPS             float64
	AuthRateLimitBurst           int
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:                         getEnv("PORT", "8080"),
		ProjectID:                    firstNonEmpty(os.Getenv("FIREBASE_PROJECT_ID"), os.Getenv("GOOGLE_CLOUD_PROJECT")),
		WebAPIKey:                    os.Getenv("FIREBASE_WEB_API_KEY"),
		GoogleApplicationCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		AuthRateLimitRPS:             getEnvFloat("AUTH_RATE_LIMIT_RPS", 1),
		AuthRateLimitBurst:           getEnvInt("AUTH_RATE_LIMIT_BURST", 5),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

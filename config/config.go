package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	// Remote candidate API
	APIBaseURL     string
	APITimeout     time.Duration
	APIInsecureTLS bool
	// UI
	NotificationDuration time.Duration
	MaxResumeBytes       int64
	CookieSecure         bool
	AllowedOrigins       []string
	// Logging
	LogLevel  string
	LogFormat string
	// Redis backs flash messages and rate limiting when configured
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitSubmitThreshold int
	// Optional clamd for resume scanning
	ClamAVAddress string
}

func LoadConfig() (*Config, error) {
	// .env is only present locally
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		APIBaseURL:           strings.TrimRight(getEnv("API_BASE_URL", "https://localhost:7294/api"), "/"),
		APITimeout:           time.Duration(getEnvInt("API_TIMEOUT_SECONDS", 15)) * time.Second,
		APIInsecureTLS:       getEnvBool("API_INSECURE_TLS", false),
		NotificationDuration: time.Duration(getEnvInt("NOTIFICATION_SECONDS", 3)) * time.Second,
		MaxResumeBytes:       int64(getEnvInt("MAX_RESUME_MB", 5)) << 20,
		CookieSecure:         getEnvBool("COOKIE_SECURE", false),
		AllowedOrigins:       splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitSubmitThreshold: getEnvInt("RATE_LIMIT_SUBMIT_THRESHOLD", 30),

		ClamAVAddress: getEnv("CLAMAV_ADDRESS", ""),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil && intVal > 0 {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimRight(strings.TrimSpace(part), "/"); part != "" {
			out = append(out, part)
		}
	}
	return out
}

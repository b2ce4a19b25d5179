package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Appointment webhook backend
	WebhookBaseURL string
	WebhookTimeout time.Duration

	// How often the appointment snapshot is re-validated.
	RefreshInterval time.Duration

	// Doctor roster storage
	DatabaseURL string

	// Session registry
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	SessionSecret        string
	SessionTTL           time.Duration
	RememberedSessionTTL time.Duration

	// Admin credentials. AdminPasswordHash is a bcrypt hash; the plaintext
	// password never appears in configuration.
	AdminEmail        string
	AdminPasswordHash string

	CORSAllowedOrigins []string

	// Login attempt rate limiting (requests/sec per IP, burst).
	LoginRateLimit float64
	LoginRateBurst int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		WebhookBaseURL: getEnv("WEBHOOK_BASE_URL", ""),
		WebhookTimeout: getEnvAsDuration("WEBHOOK_TIMEOUT", 10*time.Second),

		RefreshInterval: getEnvAsDuration("REFRESH_INTERVAL", 10*time.Second),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		SessionSecret:        getEnv("SESSION_SECRET", ""),
		SessionTTL:           getEnvAsDuration("SESSION_TTL", 12*time.Hour),
		RememberedSessionTTL: getEnvAsDuration("REMEMBERED_SESSION_TTL", 30*24*time.Hour),

		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil),

		LoginRateLimit: getEnvAsFloat("LOGIN_RATE_LIMIT", 1),
		LoginRateBurst: getEnvAsInt("LOGIN_RATE_BURST", 5),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

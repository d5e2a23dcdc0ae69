package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	LogLevel         string
	DBDriver         string
	DatabaseURL      string
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Artifact uploads
	MediaRoot      string
	MaxUploadBytes int64

	// Outbound mail
	MailTransport     string // "smtp", "gmail" or "console"
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPassword      string
	SMTPSkipTLSVerify bool
	DefaultFromEmail  string

	// Gmail API transport
	GoogleClientID     string
	GoogleClientSecret string
	GmailRefreshToken  string

	// AI completion
	AIProvider    string
	GeminiApiKey  string
	GeminiModel   string
	OllamaBaseURL string
	OllamaModel   string
	AITimeout     time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	accessExpiry := getDuration("JWT_ACCESS_EXPIRY", 15*time.Minute)
	refreshExpiry := getDuration("JWT_REFRESH_EXPIRY", 168*time.Hour) // 7 days

	return &Config{
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DBDriver:         getEnv("DB_DRIVER", "postgres"),
		DatabaseURL:      getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=fundraise port=5432 sslmode=disable"),
		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTAccessExpiry:  accessExpiry,
		JWTRefreshExpiry: refreshExpiry,

		MediaRoot:      getEnv("MEDIA_ROOT", "media"),
		MaxUploadBytes: int64(getInt("MAX_UPLOAD_MB", 25)) << 20,

		MailTransport:     getEnv("MAIL_TRANSPORT", "smtp"),
		SMTPHost:          getEnv("SMTP_HOST", "localhost"),
		SMTPPort:          getInt("SMTP_PORT", 587),
		SMTPUser:          getEnv("SMTP_USER", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		SMTPSkipTLSVerify: getEnv("SMTP_SKIP_TLS_VERIFY", "") == "YES",
		DefaultFromEmail:  getEnv("DEFAULT_FROM_EMAIL", "noreply@localhost"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GmailRefreshToken:  getEnv("GMAIL_REFRESH_TOKEN", ""),

		AIProvider:    getEnv("AI_PROVIDER", "gemini"),
		GeminiApiKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", ""),
		OllamaModel:   getEnv("OLLAMA_MODEL", ""),
		AITimeout:     getDuration("AI_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

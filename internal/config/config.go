package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	SMTP       SMTPConfig
	Mail       MailConfig
	Gocardless GocardlessConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type MailConfig struct {
	// Sender for outgoing service mail.
	FromEmail string
	// Recipient of approval request emails.
	BoardEmail string
}

type GocardlessConfig struct {
	BaseURL       string
	AccessToken   string
	WebhookSecret string
	Currency      string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Space Federation"),
		},
		Mail: MailConfig{
			FromEmail:  getEnv("DEFAULT_FROM_EMAIL", "noreply@spacefed.example"),
			BoardEmail: getEnv("BOARD_EMAIL", "board@spacefed.example"),
		},
		Gocardless: GocardlessConfig{
			BaseURL:       getEnv("GOCARDLESS_BASE_URL", "https://api-sandbox.gocardless.com"),
			AccessToken:   getEnv("GOCARDLESS_ACCESS_TOKEN", ""),
			WebhookSecret: getEnv("GOCARDLESS_WEBHOOK_SECRET", ""),
			Currency:      getEnv("GOCARDLESS_CURRENCY", "GBP"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

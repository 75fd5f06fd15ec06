package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string
	Port      string
	Env       string

	// Payment gateway
	GatewayAccessToken string
	GatewayBaseURL     string

	// Public base URL used to build back URLs and the webhook
	// notification URL handed to the gateway.
	PublicBaseURL string

	// Operator notification channel
	SMTPHost   string
	SMTPPort   string
	SMTPUser   string
	SMTPPass   string
	SMTPFrom   string
	AdminEmail string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// A missing .env file is fine in deployed environments where the
	// variables are injected directly.
	_ = godotenv.Load()

	config := &Config{
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             os.Getenv("DB_PORT"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		Port:               os.Getenv("PORT"),
		Env:                os.Getenv("ENV"),
		GatewayAccessToken: os.Getenv("GATEWAY_ACCESS_TOKEN"),
		GatewayBaseURL:     os.Getenv("GATEWAY_BASE_URL"),
		PublicBaseURL:      os.Getenv("PUBLIC_BASE_URL"),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           os.Getenv("SMTP_PORT"),
		SMTPUser:           os.Getenv("SMTP_USERNAME"),
		SMTPPass:           os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:           os.Getenv("SMTP_FROM"),
		AdminEmail:         os.Getenv("ADMIN_NOTIFY_EMAIL"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the configuration the pipeline cannot run without
// is present. Gateway and SMTP credentials are re-checked at first use so
// a misconfigured channel fails the affected request, not the whole boot.
func (c *Config) Validate() error {
	required := map[string]string{
		"DB_HOST":         c.DBHost,
		"DB_PORT":         c.DBPort,
		"DB_USER":         c.DBUser,
		"DB_NAME":         c.DBName,
		"JWT_SECRET":      c.JWTSecret,
		"PUBLIC_BASE_URL": c.PublicBaseURL,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("missing required configuration: %s", name)
		}
	}
	return nil
}

package config

import (
	"os"
	"strconv"
	"time"
)

// Smtp holds outbound mail transport settings.
type Smtp struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Config is the process-wide configuration, built once at startup and passed
// by reference to every component that needs it. There is no runtime reload;
// rotating the signing key requires a restart.
type Config struct {
	HTTPAddr string

	// JwtKey is the symmetric signing secret for bearer tokens.
	JwtKey   string
	TokenTTL time.Duration

	// ApiKeyName is the query parameter name checked against ApiKey; it lets
	// trusted integrations call authenticated routes without a bearer token.
	ApiKeyName string
	ApiKey     string

	Smtp     Smtp
	MailFrom string

	ImageDir string

	CategoryCacheTTL time.Duration
}

// FromEnv reads configuration from environment variables, applying defaults
// where sensible.
func FromEnv() Config {
	cfg := Config{
		HTTPAddr:         getEnv("HTTP_ADDR", "0.0.0.0:8080"),
		JwtKey:           os.Getenv("JWT_KEY"),
		TokenTTL:         time.Duration(getEnvInt("TOKEN_TTL_HOURS", 8)) * time.Hour,
		ApiKeyName:       os.Getenv("API_KEY_NAME"),
		ApiKey:           os.Getenv("API_KEY"),
		MailFrom:         getEnv("MAIL_FROM", "no-reply@localhost"),
		ImageDir:         getEnv("IMAGE_DIR", "storage/images"),
		CategoryCacheTTL: time.Hour,
	}
	cfg.Smtp = Smtp{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     getEnvInt("SMTP_PORT", 587),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

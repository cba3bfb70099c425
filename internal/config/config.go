package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Auth   AuthConfig
	Email  EmailConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

type AuthConfig struct {
	SessionSecret   string
	SessionExpiry   time.Duration
	VerificationTTL time.Duration
	ResetTTL        time.Duration
}

type EmailConfig struct {
	// Mode selects the notification transport: "ses" or "log".
	Mode        string
	AWSRegion   string
	FromAddress string
	LinkBaseURL string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	sessionSecret := getEnv("SESSION_SECRET", "")
	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	env := getEnv("ENV", "development")

	if err := validateSessionSecret(sessionSecret, env); err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            env,
			AllowedOrigins: parseAllowedOrigins(),
		},
		Auth: AuthConfig{
			SessionSecret:   sessionSecret,
			SessionExpiry:   getEnvAsDuration("SESSION_EXPIRY", 12*time.Hour),
			VerificationTTL: getEnvAsDuration("VERIFICATION_TOKEN_TTL", 24*time.Hour),
			ResetTTL:        getEnvAsDuration("RESET_TOKEN_TTL", 1*time.Hour),
		},
		Email: EmailConfig{
			Mode:        getEnv("EMAIL_MODE", "log"),
			AWSRegion:   getEnv("AWS_REGION", "us-east-1"),
			FromAddress: getEnv("EMAIL_FROM", "no-reply@greenstrikas.example"),
			LinkBaseURL: getEnv("EMAIL_LINK_BASE_URL", "http://localhost:3000"),
		},
	}

	if cfg.Email.Mode != "ses" && cfg.Email.Mode != "log" {
		return nil, fmt.Errorf("EMAIL_MODE must be \"ses\" or \"log\" (got %q)", cfg.Email.Mode)
	}
	if cfg.Email.Mode == "ses" && cfg.Email.FromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM is required when EMAIL_MODE=ses")
	}

	return cfg, nil
}

// validateSessionSecret enforces minimum strength for the signing secret
func validateSessionSecret(secret, env string) error {
	minLength := 16
	if env == "production" {
		minLength = 32
	}

	if len(secret) < minLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters in %s environment (got %d)",
			minLength, env, len(secret))
	}

	weakSecrets := []string{
		"secret", "test", "password", "12345", "changeme",
		"admin", "root", "default", "example",
	}

	secretLower := strings.ToLower(secret)
	for _, weak := range weakSecrets {
		if secretLower == weak {
			return fmt.Errorf("SESSION_SECRET cannot be a common weak value")
		}
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

func parseAllowedOrigins() []string {
	originsStr := getEnv("ALLOWED_ORIGINS", "")
	if originsStr == "" {
		return nil
	}
	origins := strings.Split(originsStr, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	return origins
}

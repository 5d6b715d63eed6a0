package config

import (
	"os"
	"strconv"
	"strings"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// VerifierConfig holds settings for the external ML verification service.
// TimeoutSec bounds each verification call; on expiry the certificate stays
// SUBMITTED and is eligible for an operator-triggered re-check.
type VerifierConfig struct {
	Endpoint   string
	APIKey     string
	TimeoutSec int
}

// AuthConfig holds settings for the bearer-token boundary.
// AllowedDomain is the institution email domain accepted at sign-in.
type AuthConfig struct {
	AllowedDomain string
}

// ArchiveConfig holds object storage settings for the export audit archive.
// The archive is optional; with Enabled false exports are stream-only.
type ArchiveConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Sections []string
	Database DatabaseConfig
	Verifier VerifierConfig
	Auth     AuthConfig
	Archive  ArchiveConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"), // default only for non-sensitive value
		Sections: getEnvList("KNOWN_SECTIONS", []string{"A", "B", "C", "D"}),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Verifier: VerifierConfig{
			Endpoint:   getEnv("ML_VERIFIER_ENDPOINT", ""),
			APIKey:     getEnv("ML_VERIFIER_API_KEY", ""),
			TimeoutSec: getEnvInt("ML_VERIFIER_TIMEOUT_SEC", 30),
		},
		Auth: AuthConfig{
			AllowedDomain: getEnv("AUTH_ALLOWED_DOMAIN", ""),
		},
		Archive: ArchiveConfig{
			Enabled:   getEnvBool("EXPORT_ARCHIVE_ENABLED", false),
			Endpoint:  getEnv("EXPORT_ARCHIVE_ENDPOINT", ""),
			AccessKey: getEnv("EXPORT_ARCHIVE_ACCESS_KEY", ""),
			SecretKey: getEnv("EXPORT_ARCHIVE_SECRET_KEY", ""),
			Bucket:    getEnv("EXPORT_ARCHIVE_BUCKET", ""),
			UseSSL:    getEnvBool("EXPORT_ARCHIVE_USE_SSL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Admin    AdminConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig holds PostgreSQL connection settings. URL, when set, wins
// over the component fields.
type DatabaseConfig struct {
	URL            string // e.g. postgres://localhost:5432/acm?sslmode=disable
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxConns       int32
	MinConns       int32
	ConnectTimeout int // seconds
}

// SessionConfig holds admin session cookie signing settings.
type SessionConfig struct {
	Secret      string
	ExpireHours int
}

// AdminConfig holds the dashboard credentials. PasswordHash, when set,
// takes precedence over Password and is compared with bcrypt.
type AdminConfig struct {
	Username     string
	Password     string
	PasswordHash string
}

// DSN returns the PostgreSQL connection string.
// If DatabaseConfig.URL is set (DATABASE_URL env), it is used as-is; otherwise built from components.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// Load reads configuration from environment, with optional .env file.
// Every value has a local-development default.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout: getEnvInt("WRITE_TIMEOUT_SEC", 30),
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			DBName:         getEnv("DB_NAME", "acm"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConns:       int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns:       int32(getEnvInt("DB_MIN_CONNS", 2)),
			ConnectTimeout: getEnvInt("DB_CONNECT_TIMEOUT_SEC", 5),
		},
		Session: SessionConfig{
			Secret:      getEnv("SESSION_SECRET", "fallback_secret"),
			ExpireHours: getEnvInt("SESSION_EXPIRE_HOURS", 12),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USER", "admin"),
			Password:     getEnv("ADMIN_PASS", "acmvitap"),
			PasswordHash: getEnv("ADMIN_PASS_HASH", ""),
		},
	}
	return cfg, nil
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

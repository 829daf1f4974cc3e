package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds every runtime setting read from the environment.
type Config struct {
	AppName string
	Port    string

	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string
	DBTimeZone  string

	JWTSecret string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	TokenRateLimit int

	LogLevel  string
	LogFormat string
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on system env")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() *Config {
	return &Config{
		AppName: Getenv("APP_NAME", "Bakery Back Office v1.0"),
		Port:    Getenv("PORT", "3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      Getenv("DB_HOST", "localhost"),
		DBUser:      Getenv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      Getenv("DB_NAME", "bakery"),
		DBPort:      Getenv("DB_PORT", "5432"),
		DBSSLMode:   Getenv("DB_SSLMODE", "disable"),
		DBTimeZone:  Getenv("DB_TIMEZONE", "UTC"),

		JWTSecret: Getenv("JWT_SECRET", "your-super-secret-key-change-in-production"),

		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        GetenvInt("REDIS_DB", 0),
		TokenRateLimit: GetenvInt("TOKEN_RATE_LIMIT", 10),

		LogLevel:  Getenv("LOG_LEVEL", "info"),
		LogFormat: Getenv("LOG_FORMAT", "console"),
	}
}

// DSN returns DATABASE_URL when set, otherwise a key/value postgres DSN.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.DBTimeZone,
	)
}

// Getenv retrieves the value of the environment variable named by the key.
// If the variable is not present or empty, Getenv returns the fallback.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

// GetenvInt is Getenv for integers; unparsable values yield the fallback.
func GetenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("invalid integer in env, using default")
		return fallback
	}
	return n
}

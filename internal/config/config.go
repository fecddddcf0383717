package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is loaded once at startup and treated as read-only afterwards.
type Config struct {
	DatabaseURL    string
	ConnectTimeout time.Duration

	Port         string
	AllowOrigins []string

	RedisURL      string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	ExposeErrorDetail bool

	LogLevel  string
	LogPretty bool
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	connectTimeout, err := getEnvAsDuration("DB_CONNECT_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	redisDB, err := getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getEnvAsDuration("CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	exposeDetail, err := getEnvAsBool("EXPOSE_ERROR_DETAIL", false)
	if err != nil {
		return nil, err
	}
	logPretty, err := getEnvAsBool("LOG_PRETTY", false)
	if err != nil {
		return nil, err
	}

	return &Config{
		DatabaseURL:       getEnv("DATABASE_URL", buildDSN()),
		ConnectTimeout:    connectTimeout,
		Port:              getEnv("PORT", "8000"),
		AllowOrigins:      splitList(os.Getenv("ALLOW_ORIGINS")),
		RedisURL:          getEnv("REDIS_URL", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           redisDB,
		CacheTTL:          cacheTTL,
		ExposeErrorDetail: exposeDetail,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogPretty:         logPretty,
	}, nil
}

// Addr is the listen address; the server binds all interfaces.
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

// CacheEnabled reports whether the Redis read cache should be wired in.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

func buildDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "app_user"),
		getEnv("DB_PASSWORD", "postgres_password"),
		getEnv("DB_NAME", "app_db"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return intValue, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}

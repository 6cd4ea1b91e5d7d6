package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	Environment   string
	LogLevel      string
	HTTPAddr      string
	DBDSN         string
	MigrationsDir string
	TelegramToken string
	CORSOrigins   []string
	RateLimitRPS  int

	SessionBackend       string
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Environment:    getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", ""),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		DBDSN:          os.Getenv("DB_DSN"),
		MigrationsDir:  getEnv("MIGRATIONS_DIR", "migrations"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		SessionBackend: getEnv("SESSION_BACKEND", SessionBackendMemory),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	if cfg.SessionBackend != SessionBackendMemory && cfg.SessionBackend != SessionBackendRedis {
		return nil, fmt.Errorf("invalid SESSION_BACKEND %q: want %s or %s",
			cfg.SessionBackend, SessionBackendMemory, SessionBackendRedis)
	}

	var err error
	if cfg.SessionTTL, err = getEnvAsDuration("SESSION_TTL", 2*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SessionSweepInterval, err = getEnvAsDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getEnvAsInt("RATE_LIMIT_RPS", 20); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction production-окружение
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// NotificationsEnabled уведомления инструкторам включаются токеном бота
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramToken != ""
}

func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, raw, err)
	}
	return val, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, raw, err)
	}
	return val, nil
}

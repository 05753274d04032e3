package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Session  SessionConfig
	Seed     bool
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Driver     string // postgres | sqlite
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SSLMode    string
	SQLitePath string
	MaxRetries int
}

type RedisConfig struct {
	Addr       string
	MaxRetries int
}

type KafkaConfig struct {
	Broker        string
	ConsumerGroup string
	PollInterval  time.Duration
	MetricsPort   string
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// Load reads .env when present, then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppEnv: getEnvString("APP_ENV", "development"),
		Server: ServerConfig{
			Port:         getEnvString("PORT", "3000"),
			ReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnvString("DB_DRIVER", "postgres")),
			Host:       getEnvString("DB_HOST", "localhost"),
			User:       getEnvString("DB_USER", "postgres"),
			Password:   getEnvString("DB_PASSWORD", ""),
			Name:       getEnvString("DB_NAME", "employee_admin"),
			Port:       getEnvString("DB_PORT", "5432"),
			SSLMode:    getEnvString("DB_SSLMODE", "disable"),
			SQLitePath: getEnvString("SQLITE_PATH", "employee_admin.db"),
			MaxRetries: getEnvInt("DB_MAX_RETRIES", 5),
		},
		Redis: RedisConfig{
			Addr:       getEnvString("REDIS_ADDR", "localhost:6379"),
			MaxRetries: getEnvInt("REDIS_MAX_RETRIES", 5),
		},
		Kafka: KafkaConfig{
			Broker:        getEnvString("KAFKA_BROKER", ""),
			ConsumerGroup: getEnvString("KAFKA_CONSUMER_GROUP", "employee-admin-cache"),
			PollInterval:  getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
			MetricsPort:   getEnvString("METRICS_PORT", "9100"),
		},
		Session: SessionConfig{
			Secret: getEnvString("JWT_SECRET", ""),
			TTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
		},
		Seed: getEnvBool("SEED_DEFAULTS", true),
	}
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnvString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

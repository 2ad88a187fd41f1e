package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Server     ServerConfig
	DB         PostgresConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Storefront StorefrontConfig
	Tracking   TrackingConfig
}

type AppConfig struct {
	Name string
	Env  string
}

type ServerConfig struct {
	Host string
	Port int
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers       []string
	PurchaseTopic string
	ConsumerGroup string
}

// StorefrontConfig points at the upstream store API that owns the raw
// order records.
type StorefrontConfig struct {
	BaseURL   string
	APIKey    string
	StoreID   string
	PageSize  int
	SleepMS   int
	TimeoutMS int
}

// TrackingConfig controls the purchase-tracking gate and how order ids
// are rendered as display order numbers ("full" or "short8").
type TrackingConfig struct {
	StorageKey string
	IDStyle    string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "fineyst_orders"),
			Env:  getEnv("APP_ENV", "local"),
		},
		Server: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnvAsInt("HTTP_PORT", 8040),
		},
		DB: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			DBName:   getEnv("POSTGRES_DB", "postgres"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:       splitAndTrim(getEnv("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092")),
			PurchaseTopic: getEnv("KAFKA_PURCHASE_TOPIC", "purchase_events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "fineyst-orders"),
		},
		Storefront: StorefrontConfig{
			BaseURL:   getEnv("STOREFRONT_API_URL", "https://api.fineyst.com/api"),
			APIKey:    getEnv("STOREFRONT_API_KEY", ""),
			StoreID:   getEnv("STOREFRONT_STORE_ID", ""),
			PageSize:  getEnvAsInt("STOREFRONT_PAGE_SIZE", 100),
			SleepMS:   getEnvAsInt("STOREFRONT_SLEEP_MS", 1000),
			TimeoutMS: getEnvAsInt("STOREFRONT_TIMEOUT_MS", 30000),
		},
		Tracking: TrackingConfig{
			StorageKey: getEnv("TRACKING_STORAGE_KEY", "tracked_orders"),
			IDStyle:    getEnv("ORDER_NUMBER_STYLE", "short8"),
		},
	}

	return cfg, cfg.validate()
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

/* ================= helpers ================= */

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("HTTP_PORT is invalid")
	}
	if c.DB.Host == "" || c.DB.User == "" || c.DB.DBName == "" {
		return fmt.Errorf("database config is incomplete")
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers is empty")
	}
	if c.Storefront.BaseURL == "" {
		return fmt.Errorf("STOREFRONT_API_URL is empty")
	}
	if c.Tracking.IDStyle != "full" && c.Tracking.IDStyle != "short8" {
		return fmt.Errorf("ORDER_NUMBER_STYLE must be full or short8")
	}
	// API key and store id are optional: the public order endpoint does not
	// require them, only the store-scoped sync path does.
	return nil
}

func getEnv(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if val := strings.TrimSpace(p); val != "" {
			out = append(out, val)
		}
	}
	return out
}

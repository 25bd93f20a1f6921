package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MemoConfig controls the LLM-backed credit memo adapter. With an empty
// APIKey the service falls back to the deterministic template memo.
type MemoConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	MaxRetries int
}

// ThresholdConfig exposes the underwriting cutoffs as deployment knobs.
// Zero values mean "use the built-in default".
type ThresholdConfig struct {
	MinDSCR          float64
	MaxVolatility    float64
	MaxDebtToRevenue float64
	ApproveScore     int
	DeclineScore     int
}

type Config struct {
	GRPCPort    int
	HTTPPort    int
	DB          DatabaseConfig
	Kafka       KafkaConfig
	Redis       RedisConfig
	Memo        MemoConfig
	Thresholds  ThresholdConfig
	RateLimit   float64
	ServiceName string
}

func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
}

func Load() Config {
	// Local development reads .env; absence is not an error.
	_ = godotenv.Load()

	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9091),
		HTTPPort: getEnvInt("HTTP_PORT", 8091),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "credit"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "credit_analysis"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "credit-analysis-events"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Memo: MemoConfig{
			APIKey:     getEnv("OPENAI_API_KEY", ""),
			Model:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			MaxRetries: getEnvInt("OPENAI_MAX_RETRIES", 3),
		},
		Thresholds: ThresholdConfig{
			MinDSCR:          getEnvFloat("UW_MIN_DSCR", 0),
			MaxVolatility:    getEnvFloat("UW_MAX_VOLATILITY", 0),
			MaxDebtToRevenue: getEnvFloat("UW_MAX_DEBT_TO_REVENUE", 0),
			ApproveScore:     getEnvInt("UW_APPROVE_SCORE", 0),
			DeclineScore:     getEnvInt("UW_DECLINE_SCORE", 0),
		},
		RateLimit:   getEnvFloat("RATE_LIMIT_RPS", 20),
		ServiceName: "credit-service",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"backoffice-service/pkg/database"

	"go.uber.org/zap"
)

type Config struct {
	Port      string
	GRPCPort  string
	OpTimeout time.Duration
	DB        DB
	Redis     Redis

	KafkaBrokers []string
	KafkaTopic   string
}

type DB struct {
	database.Config
}

type Redis struct {
	Enabled    bool
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

func (r Redis) TTL() time.Duration { return time.Duration(r.TTLSeconds) * time.Second }

// EventsEnabled reports whether order events should go to Kafka.
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0 && c.KafkaTopic != ""
}

func Load(log *zap.Logger) *Config {
	cfg := &Config{
		Port:      getEnv("APP_PORT", log),
		GRPCPort:  getEnvDefault("GRPC_PORT", ":9090"),
		OpTimeout: durationDefault(os.Getenv("OP_TIMEOUT"), 5*time.Second),
		DB: DB{
			Config: database.Config{
				Host:            getEnv("DB_HOST", log),
				Port:            getEnv("DB_PORT", log),
				User:            getEnv("DB_USER", log),
				Password:        getEnv("DB_PASSWORD", log),
				Name:            getEnv("DB_NAME", log),
				SSLMode:         getEnvDefault("DB_SSLMODE", "disable"),
				MaxOpenConns:    atoiDefault(os.Getenv("DB_MAX_OPEN_CONNS"), 10),
				MaxIdleConns:    atoiDefault(os.Getenv("DB_MAX_IDLE_CONNS"), 5),
				ConnMaxLifetime: durationDefault(os.Getenv("DB_CONN_MAX_LIFETIME"), 30*time.Minute),
			},
		},
		Redis: Redis{
			Enabled:    os.Getenv("REDIS_ENABLED") == "true",
			Addr:       getEnvDefault("REDIS_ADDR", "localhost:6379"),
			Password:   os.Getenv("REDIS_PASSWORD"),
			DB:         atoiDefault(os.Getenv("REDIS_DB"), 0),
			TTLSeconds: atoiDefault(os.Getenv("CACHE_TTL_SECONDS"), 60),
		},
		KafkaBrokers: splitAndTrim(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   os.Getenv("KAFKA_TOPIC_ORDERS"),
	}
	return cfg
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func durationDefault(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}

package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultAppEnv      = "dev"
	defaultHTTPAddr    = ":8080"
	defaultDatabaseURL = "staybnb.db"
	defaultJWTSecret   = "change-me-jwt-secret"
	defaultJWTTTL      = "24h"
	defaultKafkaTopic  = "staybnb.events"
)

type Config struct {
	AppEnv   string         `yaml:"app_env"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Kafka    KafkaConfig    `yaml:"kafka"`
}

type HTTPConfig struct {
	Address            string   `yaml:"address"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	JWTTTL    time.Duration `yaml:"jwt_ttl"`
}

// KafkaConfig is optional. With no brokers configured events only go to
// websocket subscribers.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

// Load builds the runtime configuration. A .env file is loaded when present,
// then the YAML file named by CONFIG_PATH (if any) provides the base values
// and environment variables override them.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}

	cfg := &Config{}
	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config: env=%s addr=%s kafka=%t", cfg.AppEnv, cfg.HTTP.Address, cfg.Kafka.Enabled())
	return cfg, nil
}

func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", orDefault(cfg.AppEnv, defaultAppEnv))))
	cfg.HTTP.Address = strings.TrimSpace(getEnv("HTTP_ADDR", orDefault(cfg.HTTP.Address, defaultHTTPAddr)))
	cfg.Database.URL = strings.TrimSpace(getEnv("DATABASE_URL", orDefault(cfg.Database.URL, defaultDatabaseURL)))
	cfg.Auth.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", orDefault(cfg.Auth.JWTSecret, defaultJWTSecret)))

	if v := os.Getenv("JWT_TTL"); v != "" || cfg.Auth.JWTTTL == 0 {
		ttl, err := parseDurationEnv("JWT_TTL", defaultJWTTTL)
		if err != nil {
			return err
		}
		cfg.Auth.JWTTTL = ttl
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.CORSAllowedOrigins = splitList(v)
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	cfg.Kafka.Topic = strings.TrimSpace(getEnv("KAFKA_TOPIC", orDefault(cfg.Kafka.Topic, defaultKafkaTopic)))
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.Auth.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.HTTP.Address == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.Kafka.Enabled() && cfg.Kafka.Topic == "" {
		return fmt.Errorf("KAFKA_TOPIC must not be empty when KAFKA_BROKERS is set")
	}
	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.Auth.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func IsProdLike(env string) bool { return isProdLike(env) }

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

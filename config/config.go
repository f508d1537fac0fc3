package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
	Booking  BookingConfig  `yaml:"booking"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Health   HealthConfig   `yaml:"health"`
}

type HTTPConfig struct {
	Address                  string   `yaml:"address"`
	SwaggerDir               string   `yaml:"swagger_dir"`
	CORSOrigins              []string `yaml:"cors_origins"`
	ReadHeaderTimeoutSeconds int      `yaml:"read_header_timeout_seconds"`
	ShutdownTimeoutSeconds   int      `yaml:"shutdown_timeout_seconds"`
}

func (h HTTPConfig) ReadHeaderTimeout() time.Duration {
	return time.Duration(h.ReadHeaderTimeoutSeconds) * time.Second
}

func (h HTTPConfig) ShutdownTimeout() time.Duration {
	return time.Duration(h.ShutdownTimeoutSeconds) * time.Second
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int32  `yaml:"max_conns"`
}

// DSN prefers an explicit URL over the discrete fields.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig with an empty Addr disables the catalog cache.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// KafkaConfig with no brokers disables booking event publishing.
type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingEventsTopic string   `yaml:"booking_events_topic"`
	GroupID            string   `yaml:"group_id"`
	PublishTimeoutMS   int      `yaml:"publish_timeout_ms"`
}

func (k KafkaConfig) PublishTimeout() time.Duration {
	return time.Duration(k.PublishTimeoutMS) * time.Millisecond
}

type AuthConfig struct {
	JWTSecret            string `yaml:"jwt_secret"`
	BcryptCost           int    `yaml:"bcrypt_cost"`
	AllowLegacyPlaintext bool   `yaml:"allow_legacy_plaintext"`
}

type BookingConfig struct {
	EnforceSeatInventory bool `yaml:"enforce_seat_inventory"`
}

type CatalogConfig struct {
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
	FeaturedLimit   int `yaml:"featured_limit"`
}

func (c CatalogConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

type HealthConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
	TimeoutSeconds  int `yaml:"timeout_seconds"`
}

func (h HealthConfig) Interval() time.Duration {
	return time.Duration(h.IntervalSeconds) * time.Second
}

func (h HealthConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutSeconds) * time.Second
}

func defaults() Config {
	return Config{
		HTTP: HTTPConfig{
			Address:                  ":8080",
			ReadHeaderTimeoutSeconds: 10,
			ShutdownTimeoutSeconds:   5,
		},
		Database: DatabaseConfig{Port: 5432, SSLMode: "disable", MaxConns: 10},
		Kafka:    KafkaConfig{BookingEventsTopic: "booking-events", GroupID: "travelbooking-notifier", PublishTimeoutMS: 500},
		Auth:     AuthConfig{BcryptCost: 10},
		Booking:  BookingConfig{EnforceSeatInventory: true},
		Catalog:  CatalogConfig{CacheTTLSeconds: 300, FeaturedLimit: 3},
		Health:   HealthConfig{IntervalSeconds: 5, TimeoutSeconds: 2},
	}
}

// LoadConfig reads the YAML file at path on top of the defaults, then
// applies .env and environment overrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		var brokers []string
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		c.Kafka.Brokers = brokers
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		c.HTTP.Address = v
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret (or JWT_SECRET) is required"))
	}
	if c.Kafka.PublishTimeoutMS <= 0 {
		errs = append(errs, errors.New("kafka.publish_timeout_ms must be positive"))
	}
	if c.Health.IntervalSeconds <= 0 {
		errs = append(errs, errors.New("health.interval_seconds must be positive"))
	}
	if c.Database.MaxConns <= 0 {
		errs = append(errs, errors.New("database.max_conns must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

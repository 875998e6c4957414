package config

import (
	"fmt"
	"strings"
	"time"

	pkgconfig "github.com/Humanoid-1/Web-backend/pkg/config"
	"github.com/Humanoid-1/Web-backend/pkg/database"
)

// Payment providers.
const (
	PaymentRazorpay = "razorpay"
	PaymentMock     = "mock"
)

// Config holds all configuration for the web backend.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`

	// HTTP server
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"5000"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"webbackend"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"webbackend_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"webbackend"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Database pool
	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINUTES" envDefault:"30"`

	// Redis facet cache and event idempotency
	RedisHost     string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int           `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	FacetCacheTTL time.Duration `env:"FACET_CACHE_TTL" envDefault:"10m"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	KafkaGroupID string   `env:"KAFKA_GROUP_ID" envDefault:"web-backend"`

	// Auth
	JWTSecret  string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	JWTExpiry  time.Duration `env:"JWT_EXPIRY" envDefault:"720h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	// Payments
	PaymentProvider   string        `env:"PAYMENT_PROVIDER" envDefault:"mock"`
	RazorpayKeyID     string        `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string        `env:"RAZORPAY_KEY_SECRET"`
	RazorpayBaseURL   string        `env:"RAZORPAY_BASE_URL" envDefault:"https://api.razorpay.com/v1"`
	RazorpayTimeout   time.Duration `env:"RAZORPAY_TIMEOUT" envDefault:"10s"`

	// Public URL that relative image paths are resolved against
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:5000"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Per-IP limit for contact and auth submissions
	ContactRateLimitEvery time.Duration `env:"CONTACT_RATE_LIMIT_EVERY" envDefault:"12s"`
	ContactRateLimitBurst int           `env:"CONTACT_RATE_LIMIT_BURST" envDefault:"5"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Sentry
	SentryDSN        string  `env:"SENTRY_DSN"`
	SentrySampleRate float64 `env:"SENTRY_TRACES_SAMPLE_RATE" envDefault:"0"`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8,::1/128" envSeparator:","`

	// Slow query logging
	SlowQueryThresholdMs int `env:"LOG_SLOW_QUERY_MS" envDefault:"500"`

	// Catalog fixtures loaded by the seed command
	SeedFile string `env:"SEED_FILE" envDefault:"seed/catalog.yaml"`
}

// Load reads configuration from the environment and an optional .env file.
func Load(dotenvFiles ...string) (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg, dotenvFiles...); err != nil {
		return nil, fmt.Errorf("load web-backend config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the env tags cannot express.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.PostgresHost == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}
	if c.PostgresUser == "" {
		return fmt.Errorf("POSTGRES_USER is required")
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProduction() && c.JWTSecret == "change-me-in-production" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.JWTExpiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive, got %s", c.JWTExpiry)
	}
	switch c.PaymentProvider {
	case PaymentMock:
	case PaymentRazorpay:
		if c.RazorpayKeyID == "" || c.RazorpayKeySecret == "" {
			return fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are required for the razorpay provider")
		}
	default:
		return fmt.Errorf("unknown PAYMENT_PROVIDER %q", c.PaymentProvider)
	}
	if c.ContactRateLimitEvery <= 0 || c.ContactRateLimitBurst < 1 {
		return fmt.Errorf("contact rate limit must be positive")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	if c.SentrySampleRate < 0 || c.SentrySampleRate > 1.0 {
		return fmt.Errorf("SENTRY_TRACES_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.SentrySampleRate)
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.Environment == "production" }

// PaymentSecret is the key checkout signatures are verified with.
func (c *Config) PaymentSecret() string {
	if c.PaymentProvider == PaymentMock && c.RazorpayKeySecret == "" {
		return "mock-secret"
	}
	return c.RazorpayKeySecret
}

// Postgres returns the pool configuration.
func (c *Config) Postgres() *database.PostgresConfig {
	return &database.PostgresConfig{
		Host:            c.PostgresHost,
		Port:            c.PostgresPort,
		User:            c.PostgresUser,
		Password:        c.PostgresPass,
		DBName:          c.PostgresDB,
		SSLMode:         c.PostgresSSL,
		MaxConns:        c.DBMaxConns,
		MinConns:        c.DBMinConns,
		MaxConnLifetime: time.Duration(c.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(c.DBMaxConnIdleTimeMins) * time.Minute,
	}
}

// Redis returns the redis client configuration.
func (c *Config) Redis() database.RedisConfig {
	return database.RedisConfig{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port           string        `env:"PORT,            default=8080"`
	Env            string        `env:"ENV,             default=development"`
	JWTSecret      string        `env:"JWT_SECRET"`
	LogLevel       string        `env:"LOG_LEVEL,       default=info"`
	SessionTTL     time.Duration `env:"SESSION_TTL,     default=360h"`
	CookieSecure   bool          `env:"COOKIE_SECURE,   default=false"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=15s"`
	TaxRate        float64       `env:"TAX_RATE,        default=0"`
	EventWorkers   int           `env:"EVENT_WORKERS,   default=4"`

	Mongo     MongoConfig
	Redis     RedisConfig
	RabbitMQ  RabbitMQConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR, default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,   default=0"`
	CartTTL  time.Duration `env:"CART_TTL,   default=720h"`
}

// RabbitMQConfig is optional; with an empty URL events and mail go to the log.
type RabbitMQConfig struct {
	URL      string `env:"RABBITMQ_URL"`
	Exchange string `env:"RABBITMQ_EXCHANGE, default=storefront.events"`
}

type RateLimitConfig struct {
	Max     int           `env:"RATE_LIMIT_MAX,     default=5"`
	Window  time.Duration `env:"RATE_LIMIT_WINDOW,  default=15m"`
	Backend string        `env:"RATE_LIMIT_BACKEND, default=redis"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith is Load with an explicit lookuper, for tests.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.TaxRate < 0 || c.TaxRate > 1 {
		return fmt.Errorf("TAX_RATE must be between 0 and 1, got %v", c.TaxRate)
	}
	switch c.RateLimit.Backend {
	case "redis", "memory":
	default:
		return fmt.Errorf("RATE_LIMIT_BACKEND must be redis or memory, got %q", c.RateLimit.Backend)
	}
	if c.RateLimit.Max <= 0 || c.RateLimit.Window <= 0 {
		return errors.New("RATE_LIMIT_MAX and RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadMongo reads only the MongoDB settings, for tooling that never serves
// requests.
func LoadMongo(ctx context.Context, l envconfig.Lookuper) (*MongoConfig, error) {
	var mc MongoConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &mc, Lookuper: l}); err != nil {
		return nil, err
	}
	return &mc, nil
}

package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Auth    AuthConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type AuthConfig struct {
	// DemoSecret is the password shared by the demo accounts.
	DemoSecret   string        `env:"AUTH_DEMO_SECRET, default=password123"`
	Delay        time.Duration `env:"AUTH_DELAY,       default=1s"`
	Timeout      time.Duration `env:"AUTH_TIMEOUT,     default=10s"`
	LoginWorkers int           `env:"LOGIN_WORKERS,    default=4"`
}

type SessionConfig struct {
	TTL   time.Duration `env:"SESSION_TTL,   default=24h"`
	Store string        `env:"SESSION_STORE, default=redis"`
	// SweepInterval is how often expired sessions are evicted from memory.
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL, default=1m"`
	CookieSecure  bool          `env:"COOKIE_SECURE,          default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=moderndash"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables. It panics on malformed
// input or an invalid combination of settings.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Session.Store {
	case SessionStoreRedis, SessionStoreMemory:
	default:
		errs = append(errs, fmt.Errorf("SESSION_STORE must be %q or %q, got %q", SessionStoreRedis, SessionStoreMemory, c.Session.Store))
	}
	if c.JWTSecret == "" && !c.IsDevelopment() {
		errs = append(errs, errors.New("JWT_SECRET is required outside development"))
	}
	if c.Auth.DemoSecret == "" {
		errs = append(errs, errors.New("AUTH_DEMO_SECRET must not be empty"))
	}
	if c.Auth.Delay < 0 {
		errs = append(errs, errors.New("AUTH_DELAY must not be negative"))
	}
	if c.Auth.Timeout <= 0 {
		errs = append(errs, errors.New("AUTH_TIMEOUT must be positive"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.Session.SweepInterval <= 0 {
		errs = append(errs, errors.New("SESSION_SWEEP_INTERVAL must be positive"))
	}
	return errors.Join(errs...)
}

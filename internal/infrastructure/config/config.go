package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// UpcomingHorizonDays bounds the agenda window.
	UpcomingHorizonDays int `env:"UPCOMING_HORIZON_DAYS, default=14"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Passcode PasscodeConfig
	Mail     MailConfig
	Notify   NotifyConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=learning_platform"`
}

type RedisConfig struct {
	Addr      string        `env:"REDIS_ADDR,       default=localhost:6379"`
	Password  string        `env:"REDIS_PASSWORD"`
	DB        int           `env:"REDIS_DB,         default=0"`
	PoolSize  int           `env:"REDIS_POOL_SIZE,  default=10"`
	Timeout   time.Duration `env:"REDIS_TIMEOUT,    default=5s"`
	KeyPrefix string        `env:"REDIS_KEY_PREFIX, default=learning:"`
}

type PasscodeConfig struct {
	TTL time.Duration `env:"PASSCODE_TTL, default=10m"`
}

type MailConfig struct {
	Provider       string `env:"MAIL_PROVIDER,     default=console"`
	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	FromName       string `env:"MAIL_FROM_NAME,    default=Learning Platform"`
	FromAddress    string `env:"MAIL_FROM_ADDRESS, default=no-reply@localhost"`
}

type NotifyConfig struct {
	Workers int `env:"NOTIFY_WORKERS, default=2"`
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith resolves the configuration from lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if cfg.UpcomingHorizonDays <= 0 {
		return nil, fmt.Errorf("config: UPCOMING_HORIZON_DAYS must be positive")
	}
	return &cfg, nil
}

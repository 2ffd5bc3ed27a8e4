package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"4000" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	StoreDriver   string `env:"STORE_DRIVER" envDefault:"postgres" validate:"oneof=postgres mongo"`
	DatabaseURL   string `env:"DATABASE_URL"   validate:"required_if=StoreDriver postgres"`
	MongoURI      string `env:"MONGO_URI"      validate:"required_if=StoreDriver mongo"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"uptask"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	JWTTTL    time.Duration `env:"JWT_TTL"   envDefault:"720h" validate:"min=1m"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"10m"  validate:"min=1m"`

	JanitorCron string `env:"JANITOR_CRON" envDefault:"@every 5m" validate:"required"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
	FrontendURL  string `env:"FRONTEND_URL"   envDefault:"http://localhost:5173" validate:"required,url"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v8"
	"github.com/go-playground/validator/v10"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

type Config struct {
	Telegram Telegram
	Storage  Storage
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn warning error"`
}

type Telegram struct {
	Token          string        `env:"TG_TOKEN" validate:"required"`
	Timeout        int           `env:"TELEGRAM_TIMEOUT" envDefault:"60" validate:"gt=0"`
	Debug          bool          `env:"TELEGRAM_DEBUG" envDefault:"false"`
	ConfirmTimeout time.Duration `env:"CONFIRM_TIMEOUT" envDefault:"1m" validate:"gt=0"`
}

// Storage selects the key-value backend the trackers persist into.
type Storage struct {
	Backend string        `env:"STORAGE_BACKEND" envDefault:"memory" validate:"oneof=memory redis mongo postgres"`
	Timeout time.Duration `env:"STORAGE_TIMEOUT" envDefault:"10s" validate:"gt=0"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379" validate:"required_if=Backend redis"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0" validate:"gte=0"`

	MongoURI      string `env:"MONGO_URI" validate:"required_if=Backend mongo"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"trackers"`

	PostgresEndpoint string `env:"POSTGRES_ENDPOINT" validate:"required_if=Backend postgres"`
}

// Load parses the environment into Config and validates it.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config couldn't parse environment: %v", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config is invalid: %v", err)
	}
	return &cfg, nil
}

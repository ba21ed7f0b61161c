package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals

type Config struct {
	App  App
	Bot  Bot
	Deal Deal
	HTTP HTTP
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"tg-escrow"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

type Bot struct {
	Token    string `env:"BOT_TOKEN,required" json:"-" validate:"required"`
	Username string `env:"BOT_USERNAME,required" validate:"required"`
	// AdminID — первый оператор; остальных он назначает сам.
	AdminID int64 `env:"ADMIN_ID,required" validate:"gt=0"`
	// LogChatID — чат для событий аудита, 0 выключает аудит.
	LogChatID int64  `env:"LOG_CHAT_ID"`
	Manager   string `env:"MANAGER_USERNAME" envDefault:"@Donatovgift_manager"`
}

type Deal struct {
	Timeout       time.Duration `env:"DEAL_TIMEOUT" envDefault:"1h" validate:"gt=0"`
	SweepInterval time.Duration `env:"DEAL_SWEEP_INTERVAL" envDefault:"5m" validate:"gt=0"`
	CreateLimit   int           `env:"DEAL_CREATE_LIMIT" envDefault:"5" validate:"gt=0"`
}

type HTTP struct {
	OpsAddress      string        `env:"OPS_LISTEN_ADDRESS" envDefault:":8080"`
	MetricsAddress  string        `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
	ProbeAddress    string        `env:"PROBE_LISTEN_ADDRESS" envDefault:":8091"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogFieldMaxLen  int           `env:"HTTP_LOG_FIELD_MAX_LEN" envDefault:"2048"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := validate.Struct(config); err != nil {
		return Config{}, fmt.Errorf("config validate: %w", err)
	}

	return config, nil
}

package config

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv          string `env:"APP_ENV" default:"development"`
	Port            string `env:"PORT" default:"8080"`
	AppURL          string `env:"APP_URL" default:"http://localhost:8080"`
	TrafficDataPath string `env:"TRAFFIC_DATA_PATH" default:"traffic_data.json"`
	LogLevel        string `env:"LOG_LEVEL" default:"info"`
	LogFormat       string `env:"LOG_FORMAT" default:"text"`

	MaxWebSocketConnections int `env:"MAX_WEBSOCKET_CONNECTIONS" default:"10000"`

	WSRatePerSecond float64 `env:"WS_RATE_PER_SECOND" default:"5"`
	WSRateBurst     int     `env:"WS_RATE_BURST" default:"10"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.MaxWebSocketConnections <= 0 {
		return fmt.Errorf("MAX_WEBSOCKET_CONNECTIONS must be positive, got %d", cfg.MaxWebSocketConnections)
	}
	if cfg.WSRatePerSecond <= 0 {
		return fmt.Errorf("WS_RATE_PER_SECOND must be positive, got %g", cfg.WSRatePerSecond)
	}
	if cfg.WSRateBurst <= 0 {
		return fmt.Errorf("WS_RATE_BURST must be positive, got %d", cfg.WSRateBurst)
	}
	if u, err := url.Parse(cfg.AppURL); err != nil || u.Host == "" {
		return fmt.Errorf("APP_URL must be a valid URL, got %q", cfg.AppURL)
	}
	return nil
}

// IsDevelopment reports whether the app runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

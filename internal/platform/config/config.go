package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string `env:"SERVICE_NAME, default=merx"`
	HTTPPort    string `env:"HTTP_PORT, default=8080"`
	PostgresDSN string `env:"POSTGRES_DSN"`

	SweepInterval  time.Duration `env:"CAMPAIGN_SWEEP_INTERVAL, default=1m"`
	SweepBatchSize int           `env:"CAMPAIGN_SWEEP_BATCH_SIZE, default=100"`

	EnableWindowExpirer bool `env:"ENABLE_WINDOW_EXPIRER, default=true"`
}

func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment config: %w", err)
	}
	return cfg, nil
}

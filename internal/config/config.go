package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config holds the CLI settings read from the environment. Command line flags
// take precedence over these values.
type Config struct {
	KeyDir     string `env:"ECCWALLET_KEY_DIR" envDefault:"."`
	Passphrase string `env:"ECCWALLET_PASSPHRASE"`
	LogLevel   string `env:"ECCWALLET_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// Package config loads the pushover CLI's environment configuration.
package config

import (
	"fmt"

	"github.com/Netflix/go-env"
)

type Config struct {
	Token          string `env:"PUSHOVER_TOKEN,required=true"`
	DefaultUser    string `env:"PUSHOVER_USER"`
	Endpoint       string `env:"PUSHOVER_ENDPOINT"`
	LogLevel       string `env:"LOG_LEVEL,default=info"`
	SendTimeoutSec int    `env:"SEND_TIMEOUT_SEC,default=10"`
}

func Load() (*Config, error) {
	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration. Every field has a default, so
// the game runs with an empty environment.
type Config struct {
	APIURL         string        `env:"NOVASTRIKE_API_URL" envDefault:"http://localhost:5000"`
	WindowWidth    int           `env:"NOVASTRIKE_WINDOW_WIDTH" envDefault:"1280"`
	WindowHeight   int           `env:"NOVASTRIKE_WINDOW_HEIGHT" envDefault:"860"`
	TickRate       int           `env:"NOVASTRIKE_TICK_RATE" envDefault:"50"`
	RequestTimeout time.Duration `env:"NOVASTRIKE_REQUEST_TIMEOUT" envDefault:"10s"`
	TokenFile      string        `env:"NOVASTRIKE_TOKEN_FILE"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays environment variables onto cfg. Variables that are not
// set leave the existing (default) values untouched.
func parseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

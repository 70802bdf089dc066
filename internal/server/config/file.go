package config

import (
	"fmt"

	"github.com/dmitrijs2005/arcaives/internal/flagx"
	"github.com/ilyakaznacheev/cleanenv"
)

// parseFile overlays the config file named by -c/-config (yaml, json or
// toml, chosen by extension) and then ARCAIVES_* environment variables.
// Without a file only the environment is read. Unset variables leave the
// current values alone.
func parseFile(cfg *Config) error {
	path := flagx.ConfigFileFlag()

	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return fmt.Errorf("config: read env: %w", err)
		}
		return nil
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}

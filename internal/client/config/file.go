package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/arcaives/internal/flagx"
	"github.com/dmitrijs2005/arcaives/internal/timex"
)

// fileConfig is a DTO for config files. Absent keys leave the current value
// untouched.
type fileConfig struct {
	GatewayURL          *string         `json:"gateway_url"           toml:"gateway_url"`
	APIKey              *string         `json:"api_key"               toml:"api_key"`
	SessionDSN          *string         `json:"session_dsn"           toml:"session_dsn"`
	RequestTimeout      *timex.Duration `json:"request_timeout"       toml:"request_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval" toml:"online_check_interval"`
	LogLevel            *string         `json:"log_level"             toml:"log_level"`
	ImageBucket         *string         `json:"image_bucket"          toml:"image_bucket"`
}

// parseFile overlays cfg with the file named by -c/-config. It panics on
// read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}
	if err := ApplyFile(cfg, path); err != nil {
		panic(err)
	}
}

// ApplyFile overlays cfg with the JSON or TOML file at path, chosen by
// extension.
func ApplyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &fc)
	} else {
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	fc.applyTo(cfg)
	return nil
}

func (fc fileConfig) applyTo(cfg *Config) {
	if fc.GatewayURL != nil {
		cfg.GatewayURL = *fc.GatewayURL
	}
	if fc.APIKey != nil {
		cfg.APIKey = *fc.APIKey
	}
	if fc.SessionDSN != nil {
		cfg.SessionDSN = *fc.SessionDSN
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.ImageBucket != nil {
		cfg.ImageBucket = *fc.ImageBucket
	}
}

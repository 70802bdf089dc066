package config

import (
	"time"
)

// Config holds runtime settings for the site client.
//
// SessionDSN names the sqlite database that keeps the admin flag. The
// default is a private in-memory database, so the flag lasts for one run,
// like a browser tab session. ImageBucket is the gateway bucket that
// receives contact images.
type Config struct {
	GatewayURL          string
	APIKey              string
	SessionDSN          string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	LogLevel            string
	ImageBucket         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.GatewayURL = "http://127.0.0.1:8080"
	c.APIKey = ""
	c.SessionDSN = ":memory:"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.LogLevel = "warn"
	c.ImageBucket = "contacts"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}

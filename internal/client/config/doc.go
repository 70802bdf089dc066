// Package config loads runtime configuration for the arcaives site client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .toml are decoded as TOML, anything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   gateway base URL
//	-k string   gateway API key
//	-s string   session store DSN (sqlite)
//	-t int      request timeout (seconds)
//	-i int      online check interval (seconds)
//	-v          verbose logging
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds (JSON only):
//
//	{
//	  "gateway_url": "https://data.example.org",
//	  "api_key": "eyJ...",
//	  "session_dsn": "session.db",
//	  "request_timeout": "10s",
//	  "online_check_interval": "5s"
//	}
package config

package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/arcaives/internal/flagx"
)

// Flags lists the value flags parseFlags understands; BoolFlags the switches.
// The command tree declares the same names so both parsers accept them.
var (
	Flags     = []string{"a", "k", "s", "t", "i"}
	BoolFlags = []string{"v"}
)

// parseFlags populates selected Config fields from command-line flags.
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with subcommand arguments.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], Flags, BoolFlags...)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.GatewayURL, "a", cfg.GatewayURL, "gateway base URL")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "gateway API key")
	fs.StringVar(&cfg.SessionDSN, "s", cfg.SessionDSN, "session store DSN")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	verbose := fs.Bool("v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	if *verbose {
		cfg.LogLevel = "debug"
	}
}

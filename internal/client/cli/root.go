package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/arcaives/internal/buildinfo"
	"github.com/dmitrijs2005/arcaives/internal/client/config"
	"github.com/dmitrijs2005/arcaives/internal/flagx"
	"github.com/spf13/cobra"
)

// Test seams for config loading and App construction.
var (
	loadConfig = config.LoadConfig
	buildApp   = NewApp
)

const skipApp = "skip-app"

// NewRootCmd builds the command tree. Every command except version gets an
// App built from the merged config; the root command itself runs the shell.
func NewRootCmd() *cobra.Command {
	var app *App

	run := func(fn func(*App, context.Context, []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			return fn(app, cmd.Context(), args)
		}
	}

	root := &cobra.Command{
		Use:           "arcaives",
		Short:         "Terminal client for the arcaives site",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipApp] != "" {
				return nil
			}
			cfg := loadConfig()
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}
			a, err := buildApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			a.out = cmd.OutOrStdout()
			app = a
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
		RunE: run((*App).Shell),
	}

	pf := root.PersistentFlags()
	pf.StringP("config", "c", "", "config file (json or toml)")
	pf.StringP("gateway", "a", "", "gateway base URL")
	pf.StringP("key", "k", "", "gateway API key")
	pf.StringP("session", "s", "", "session store DSN")
	pf.IntP("timeout", "t", 0, "request timeout (in seconds)")
	pf.IntP("interval", "i", 0, "online check interval (in seconds)")
	pf.BoolP("verbose", "v", false, "verbose logging")

	root.AddCommand(
		&cobra.Command{
			Use:   "shell",
			Short: "Interactive shell (default)",
			Args:  cobra.NoArgs,
			RunE:  run((*App).Shell),
		},
		&cobra.Command{
			Use:   "home",
			Short: "Landing page: shelves, latest memos and shortcuts",
			Args:  cobra.NoArgs,
			RunE:  run((*App).Home),
		},
		&cobra.Command{
			Use:     "arcaives",
			Aliases: []string{"list"},
			Short:   "List archive entries",
			Args:    cobra.NoArgs,
			RunE:    run((*App).Arcaives),
		},
		&cobra.Command{
			Use:   "open <n|id>",
			Short: "Open an entry from the list, answering its password challenge",
			Args:  cobra.ExactArgs(1),
			RunE:  run((*App).Open),
		},
		&cobra.Command{
			Use:   "arcaive <id>",
			Short: "Show one archive entry",
			Args:  cobra.ExactArgs(1),
			RunE:  run((*App).Arcaive),
		},
		&cobra.Command{
			Use:   "memo [tag]",
			Short: "List public memos, optionally by category",
			Args:  cobra.MaximumNArgs(1),
			RunE:  run((*App).Memo),
		},
		adminCmd(run),
		&cobra.Command{
			Use:         "version",
			Short:       "Print build information",
			Args:        cobra.NoArgs,
			Annotations: map[string]string{skipApp: "true"},
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
			},
		},
	)
	return root
}

// adminCmd logs in and then runs one manager command, if given.
func adminCmd(run func(func(*App, context.Context, []string) error) func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin console (password required)",
		Args:  cobra.NoArgs,
		RunE:  run((*App).Login),
	}

	manager := func(use, short string, fn func(*App, context.Context, []string) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: run(func(a *App, ctx context.Context, args []string) error {
				if err := a.Login(ctx, nil); err != nil {
					return err
				}
				if !a.isAdmin() {
					return nil
				}
				return fn(a, ctx, args)
			}),
		}
	}

	cmd.AddCommand(
		manager("entries [list|add|edit <id>|delete <id>]", "Manage archive entries", (*App).Entries),
		manager("memos [list|add|edit <id>|delete <id>]", "Manage memos", (*App).Memos),
		manager("contacts [list|add|edit <id>|delete <id>|image <id> <path>]", "Manage shortcut contacts", (*App).Contacts),
		&cobra.Command{
			Use:   "logout",
			Short: "Clear the admin session",
			Args:  cobra.NoArgs,
			RunE:  run((*App).Logout),
		},
	)
	return cmd
}

// applyFlags overlays cfg with the flags set on the command line. The config
// package already parsed the short forms; this also covers the long ones.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	fs := cmd.Flags()

	if path, _ := fs.GetString("config"); path != "" && path != flagx.ConfigFileFlag() {
		if err := config.ApplyFile(cfg, path); err != nil {
			return err
		}
	}
	if fs.Changed("gateway") {
		cfg.GatewayURL, _ = fs.GetString("gateway")
	}
	if fs.Changed("key") {
		cfg.APIKey, _ = fs.GetString("key")
	}
	if fs.Changed("session") {
		cfg.SessionDSN, _ = fs.GetString("session")
	}
	if fs.Changed("timeout") {
		n, _ := fs.GetInt("timeout")
		cfg.RequestTimeout = time.Duration(n) * time.Second
	}
	if fs.Changed("interval") {
		n, _ := fs.GetInt("interval")
		cfg.OnlineCheckInterval = time.Duration(n) * time.Second
	}
	if v, _ := fs.GetBool("verbose"); v {
		cfg.LogLevel = "debug"
	}
	return nil
}

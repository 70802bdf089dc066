package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/arcaives/internal/buildinfo"
)

// Shell prints the banner, starts the connectivity watcher and runs the
// REPL until the user exits or ctx is cancelled.
func (a *App) Shell(ctx context.Context, _ []string) error {
	buildinfo.PrintBuildData(a.out)
	fmt.Fprintln(a.out, "Welcome to arcaives (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.checkOnline(ctx)
	if a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	if err := a.Home(ctx, nil); err != nil {
		printlnFn(noticeStyle.Render("! " + describe(err)))
	}
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		return 1
	}
	return 0
}

// Package logging is the structured logger shared by the gateway, the site
// client and the apikey tool. Key-value pairs attached to a context with
// ContextWith are added to every record logged with that context.
package logging

import "context"

// Logger takes alternating key-value args after the message:
//
//	log.Info(ctx, "gateway listening", "addr", addr)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger whose records always carry args.
	With(args ...any) Logger
}

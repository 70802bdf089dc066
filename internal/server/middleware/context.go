package middleware

import (
	"context"

	"github.com/dmitrijs2005/arcaives/internal/logging"
	"github.com/dmitrijs2005/arcaives/internal/server/auth"
)

type ctxKey string

const (
	requestIDKey ctxKey = "requestID"
	roleKey      ctxKey = "role"
	accessKey    ctxKey = "access"
)

// accessRecord is shared between Logger and the handlers it wraps so the
// access line can report values set further down the chain.
type accessRecord struct {
	role auth.Role
}

// RequestIDFrom returns the request id stored by RequestID, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RoleFrom returns the caller's role stored by APIKey.
func RoleFrom(ctx context.Context) (auth.Role, bool) {
	r, ok := ctx.Value(roleKey).(auth.Role)
	return r, ok
}

// WithRole stores role in ctx and tags log records made with it.
func WithRole(ctx context.Context, role auth.Role) context.Context {
	if rec, ok := ctx.Value(accessKey).(*accessRecord); ok {
		rec.role = role
	}
	ctx = logging.ContextWith(ctx, "role", string(role))
	return context.WithValue(ctx, roleKey, role)
}

package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/dmitrijs2005/arcaives/internal/logging"
)

// Recovery turns a handler panic into a 500 and logs it with the stack.
func Recovery(logger logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					logger.Error(r.Context(), "panic recovered",
						"error", fmt.Sprint(p),
						"stack", string(debug.Stack()),
						"method", r.Method,
						"path", r.URL.Path,
					)
					writeError(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/arcaives/internal/logging"
)

// Logger writes one access-log line per request. Server errors are logged
// at error level. Request id and role come from the logging context.
func Logger(logger logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			rec := &accessRecord{}

			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), accessKey, rec)))

			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start),
			}
			if rec.role != "" {
				args = append(args, "role", string(rec.role))
			}

			if sw.status >= 500 {
				logger.Error(r.Context(), "http.request", args...)
				return
			}
			logger.Info(r.Context(), "http.request", args...)
		})
	}
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

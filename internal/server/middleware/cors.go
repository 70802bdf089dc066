package middleware

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/arcaives/internal/common"
)

const (
	corsMethods = "GET, POST, PATCH, DELETE, OPTIONS"
	corsMaxAge  = "600"
)

var corsHeaders = strings.Join([]string{
	"Authorization", "Content-Type", common.APIKeyHeaderName, common.RequestIDHeaderName,
}, ", ")

// CORS answers preflight requests and echoes allowed origins. "*" allows
// every origin.
func CORS(origins []string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && isAllowedOrigin(origin, origins) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", corsMethods)
				w.Header().Set("Access-Control-Allow-Headers", corsHeaders)
				w.Header().Set("Access-Control-Max-Age", corsMaxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isAllowedOrigin(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

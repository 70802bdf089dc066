package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/arcaives/internal/common"
	"github.com/dmitrijs2005/arcaives/internal/server/auth"
)

// APIKey requires a valid key in the apikey header or as a bearer token.
// Read requests pass with any role; writes with an anon key pass only when
// allowAnonWrites is set.
func APIKey(secretKey []byte, allowAnonWrites bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := extractKey(r)
			if key == "" {
				writeError(w, http.StatusUnauthorized, "missing api key")
				return
			}

			role, err := auth.RoleFromKey(key, secretKey)
			if err != nil {
				msg := "invalid api key"
				if errors.Is(err, common.ErrTokenExpired) {
					msg = "api key expired"
				}
				writeError(w, http.StatusUnauthorized, msg)
				return
			}

			if isWrite(r.Method) && role != auth.RoleService && !allowAnonWrites {
				writeError(w, http.StatusForbidden, "write requires service_role key")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithRole(r.Context(), role)))
		})
	}
}

func extractKey(r *http.Request) string {
	if k := strings.TrimSpace(r.Header.Get(common.APIKeyHeaderName)); k != "" {
		return k
	}
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func isWrite(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message}) //nolint:errcheck
}

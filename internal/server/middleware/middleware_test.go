package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/arcaives/internal/common"
	"github.com/dmitrijs2005/arcaives/internal/logging"
	"github.com/dmitrijs2005/arcaives/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(mark("a"), mark("b"), mark("c"))(okHandler)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rec.Header().Get(common.RequestIDHeaderName))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(common.RequestIDHeaderName, "abc")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "abc", seen)
		assert.Equal(t, "abc", rec.Header().Get(common.RequestIDHeaderName))
	})
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	h := Recovery(logging.New("info", "json", &buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "boom")
}

func TestLogger_LevelsByStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
	}{
		{name: "ok", status: http.StatusOK, level: `"level":"INFO"`},
		{name: "client error", status: http.StatusNotFound, level: `"level":"INFO"`},
		{name: "server error", status: http.StatusBadGateway, level: `"level":"ERROR"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := Chain(RequestID, Logger(logging.New("info", "json", &buf)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/rest/v1/memos", nil))

			out := buf.String()
			assert.Contains(t, out, tt.level)
			assert.Contains(t, out, `"path":"/rest/v1/memos"`)
			assert.Contains(t, out, `"request_id"`)
		})
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://site.example"})(okHandler)

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://site.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "https://site.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("foreign origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://site.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "apikey")
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	})
}

func TestAPIKey(t *testing.T) {
	secret := []byte("test-secret")
	anon, err := auth.GenerateKey(auth.RoleAnon, secret, 0)
	require.NoError(t, err)
	service, err := auth.GenerateKey(auth.RoleService, secret, time.Hour)
	require.NoError(t, err)
	foreign, err := auth.GenerateKey(auth.RoleService, []byte("other"), 0)
	require.NoError(t, err)

	var gotRole auth.Role
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole, _ = RoleFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		allowAnon  bool
		method     string
		apikey     string
		bearer     string
		wantStatus int
		wantRole   auth.Role
		wantBody   string
	}{
		{name: "missing", allowAnon: true, method: http.MethodGet, wantStatus: http.StatusUnauthorized, wantBody: "missing api key"},
		{name: "garbage", allowAnon: true, method: http.MethodGet, apikey: "nope", wantStatus: http.StatusUnauthorized, wantBody: "invalid api key"},
		{name: "wrong secret", allowAnon: true, method: http.MethodGet, apikey: foreign, wantStatus: http.StatusUnauthorized},
		{name: "anon read", allowAnon: false, method: http.MethodGet, apikey: anon, wantStatus: http.StatusOK, wantRole: auth.RoleAnon},
		{name: "anon write allowed", allowAnon: true, method: http.MethodPost, apikey: anon, wantStatus: http.StatusOK, wantRole: auth.RoleAnon},
		{name: "anon write denied", allowAnon: false, method: http.MethodDelete, apikey: anon, wantStatus: http.StatusForbidden},
		{name: "service write via bearer", allowAnon: false, method: http.MethodPatch, bearer: service, wantStatus: http.StatusOK, wantRole: auth.RoleService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotRole = ""
			h := APIKey(secret, tt.allowAnon)(next)

			req := httptest.NewRequest(tt.method, "/rest/v1/memos", strings.NewReader("{}"))
			if tt.apikey != "" {
				req.Header.Set(common.APIKeyHeaderName, tt.apikey)
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRole, gotRole)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestAPIKey_Expired(t *testing.T) {
	secret := []byte("s")
	key, err := auth.GenerateKey(auth.RoleAnon, secret, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(common.APIKeyHeaderName, key)
	rec := httptest.NewRecorder()
	APIKey(secret, true)(okHandler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "api key expired")
}

func TestLogger_ReportsRoleFromInnerAPIKey(t *testing.T) {
	secret := []byte("test-secret")
	key, err := auth.GenerateKey(auth.RoleService, secret, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	log := logging.New("info", "json", &buf)
	h := Chain(RequestID, Logger(log), APIKey(secret, false))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info(r.Context(), "handler")
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/rest/v1/memos?id=eq.1", nil)
	req.Header.Set(common.APIKeyHeaderName, key)
	req.Header.Set(common.RequestIDHeaderName, "req-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"msg":"handler"`)
	assert.Contains(t, lines[0], `"role":"service_role"`)
	assert.Contains(t, lines[0], `"request_id":"req-42"`)
	assert.Contains(t, lines[1], `"msg":"http.request"`)
	assert.Contains(t, lines[1], `"role":"service_role"`)
	assert.Contains(t, lines[1], `"request_id":"req-42"`)
}

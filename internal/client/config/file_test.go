package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_parseFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("json", func(t *testing.T) {
		path := writeTemp(t, "cfg.json", `{"gateway_url":"https://a.example","request_timeout":"4s","online_check_interval":2000000000}`)
		os.Args = []string{"cli", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "https://a.example", cfg.GatewayURL)
		assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 2*time.Second, cfg.OnlineCheckInterval)
		assert.Equal(t, ":memory:", cfg.SessionDSN, "absent keys keep defaults")
	})

	t.Run("toml", func(t *testing.T) {
		path := writeTemp(t, "cfg.toml", "gateway_url = \"https://b.example\"\napi_key = \"k\"\nsession_dsn = \"s.db\"\nrequest_timeout = \"1m\"\nimage_bucket = \"covers\"\n")
		os.Args = []string{"cli", "-c", path, "home"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "https://b.example", cfg.GatewayURL)
		assert.Equal(t, "k", cfg.APIKey)
		assert.Equal(t, "s.db", cfg.SessionDSN)
		assert.Equal(t, time.Minute, cfg.RequestTimeout)
		assert.Equal(t, "covers", cfg.ImageBucket)
	})

	t.Run("no file", func(t *testing.T) {
		os.Args = []string{"cli"}
		cfg := &Config{GatewayURL: "keep"}
		parseFile(cfg)
		assert.Equal(t, "keep", cfg.GatewayURL)
	})

	t.Run("invalid json panics", func(t *testing.T) {
		path := writeTemp(t, "bad.json", `{ nope`)
		os.Args = []string{"cli", "-c", path}
		require.Panics(t, func() { parseFile(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"cli", "-c", filepath.Join(t.TempDir(), "absent.toml")}
		require.Panics(t, func() { parseFile(&Config{}) })
	})
}

func TestApplyFile(t *testing.T) {
	path := writeTemp(t, "cfg.json", `{"api_key":"from-file","log_level":"debug"}`)

	cfg := &Config{APIKey: "old", LogLevel: "warn", GatewayURL: "keep"}
	require.NoError(t, ApplyFile(cfg, path))
	assert.Equal(t, &Config{APIKey: "from-file", LogLevel: "debug", GatewayURL: "keep"}, cfg)

	bad := writeTemp(t, "cfg.toml", "api_key = ")
	require.ErrorContains(t, ApplyFile(cfg, bad), "decode")

	require.Error(t, ApplyFile(cfg, filepath.Join(t.TempDir(), "missing.json")))
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func env(kv map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := kv[key]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	assert.NoError(t, err)
	assert.Equal(t, Config{
		Port:        8080,
		DBPath:      "./data/splitsmart.db",
		JWTSecret:   DevJWTSecret,
		TokenTTL:    24 * time.Hour,
		LogLevel:    "info",
		LogFormat:   "text",
		RequireAuth: true,
	}, cfg)
	assert.True(t, cfg.UsingDevSecret())
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"PORT":         "9090",
		"DB_PATH":      "/tmp/x.db",
		"JWT_SECRET":   "s3cret",
		"TOKEN_TTL":    "90m",
		"LOG_FORMAT":   "json",
		"REQUIRE_AUTH": "false",
	}))
	assert.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.RequireAuth)
	assert.False(t, cfg.UsingDevSecret())
}

func TestFromEnvErrors(t *testing.T) {
	tests := map[string]map[string]string{
		"port not a number": {"PORT": "eighty"},
		"port out of range": {"PORT": "70000"},
		"bad ttl":           {"TOKEN_TTL": "forever"},
		"negative ttl":      {"TOKEN_TTL": "-1h"},
		"bad require auth":  {"REQUIRE_AUTH": "maybe"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(env(kv))
			assert.Error(t, err)
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	assert.NoError(t, os.WriteFile(path, []byte("SPLITSMART_TEST_DB=/from/file.db\n"), 0o600))
	t.Setenv("SPLITSMART_TEST_DB", "")
	os.Unsetenv("SPLITSMART_TEST_DB")

	_, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "/from/file.db", os.Getenv("SPLITSMART_TEST_DB"))
}

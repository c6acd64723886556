package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMustLoad(t *testing.T) {
	path := writeConfig(t, `
env: local
storage_driver: file
storage_path: ./state.json
http_server:
  addresshttp: localhost:8082
  timeouthttp: 4s
  idle_timeout: 30s
jwttoken:
  jwt_secret_key: test-secret-key
  token_ttl: 24h
`)
	t.Setenv("CONFIG_PATH", path)

	cfg := MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "file", cfg.StorageDriver)
	assert.Equal(t, "./state.json", cfg.StoragePath)
	assert.Equal(t, "localhost:8082", cfg.AddressHTTP)
	assert.Equal(t, 4*time.Second, cfg.TimeoutHTTP)
	assert.Equal(t, "test-secret-key", cfg.JWTSecretKey)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	// Адрес Redis не задан: кеш каталога выключен.
	assert.Empty(t, cfg.AddressRedis)
}

func TestMustLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
jwttoken:
  jwt_secret_key: test-secret-key
`)
	t.Setenv("CONFIG_PATH", path)

	cfg := MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "file", cfg.StorageDriver)
	assert.Equal(t, "./database.json", cfg.StoragePath)
	assert.Equal(t, "localhost:8080", cfg.AddressHTTP)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}

func TestMustLoadSecretFromEnv(t *testing.T) {
	path := writeConfig(t, `
env: prod
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("JWT_SECRET_KEY", "env-secret")

	cfg := MustLoad()

	assert.Equal(t, "env-secret", cfg.JWTSecretKey)
}

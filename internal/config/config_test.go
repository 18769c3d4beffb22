package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingDefaultPathUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "askdesk.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingExplicitPathFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), true)
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "askdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen: ":9090"
operator_token: "tok123"
log_level: debug
store:
  backend: redis
  redis:
    addr: "redis.internal:6379"
    db: 3
`), 0o644))

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "tok123", cfg.OperatorToken)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "redis.internal:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 3, cfg.Store.Redis.DB)
	// Unset file keys keep their defaults.
	assert.Equal(t, ".", cfg.Store.Path)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "askdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":9090\"\n"), 0o644))

	t.Setenv("ASKDESK_LISTEN", ":7070")
	t.Setenv("ASKDESK_STORE_BACKEND", "sqlite")
	t.Setenv("ASKDESK_REDIS_DB", "7")

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Listen)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, 7, cfg.Store.Redis.DB)
}

func TestUnknownBackendRejected(t *testing.T) {
	t.Setenv("ASKDESK_STORE_BACKEND", "cassandra")
	_, err := Load(filepath.Join(t.TempDir(), "askdesk.yaml"), false)
	require.ErrorContains(t, err, "unknown store backend")
}

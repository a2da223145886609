package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/ndtm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ndtm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
optimize: true
dialect:
  blank: "."
  initial: "^"
  fold_directions: true
server:
  addr: ":9090"
store:
  dir: ./programs
redis:
  addr: localhost:6379
  db: "2"
  ttl: 90s
mcp:
  transport: sse
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Optimize)
	assert.Equal(t, domain.Symbol('.'), cfg.Dialect.Blank)
	assert.Equal(t, domain.Symbol('^'), cfg.Dialect.Initial)
	assert.Equal(t, 'R', cfg.Dialect.Right, "unset markers keep their default")
	assert.True(t, cfg.Dialect.FoldDirections)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "./programs", cfg.Store.Dir)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 90*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "ndtm:program:", cfg.Redis.Prefix)
	assert.Equal(t, "sse", cfg.MCP.Transport)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log_level: debug\nserver:\n  addr: \":9090\"\n")
	t.Setenv("NDTM_LOG_LEVEL", "warn")
	t.Setenv("NDTM_REDIS_TTL", "5m")
	t.Setenv("NDTM_OPTIMIZE", "true")
	t.Setenv("NDTM_STORE_DIR", "/var/lib/ndtm")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.True(t, cfg.Optimize)
	assert.Equal(t, "/var/lib/ndtm", cfg.Store.Dir)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown key":       "verbose: true\n",
		"long marker":       "dialect:\n  blank: \"__\"\n",
		"clashing markers":  "dialect:\n  blank: \">\"\n",
		"bad level":         "log_level: loud\n",
		"bad transport":     "mcp:\n  transport: grpc\n",
		"malformed yaml":    "server: [\n",
		"duration not text": "redis:\n  ttl: soon\n",
	}

	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, text))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

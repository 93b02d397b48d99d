package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "scribe.yaml", `
vault: ./notes
depth_scope: redis
date_syntax: strftime
log_level: debug
http:
  port: 9090
redis:
  addr: redis:6379
  db: 2
  ttl: 30s
host:
  filesystem_paths: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./notes", cfg.Vault)
	assert.Equal(t, "redis", cfg.DepthScope)
	assert.Equal(t, "strftime", cfg.DateSyntax)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "scribe:depth", cfg.Redis.Key, "unset keys keep defaults")
	assert.False(t, cfg.Host.FilesystemPaths)
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "scribe.json", `{"vault": "docs", "http": {"port": 7000}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "docs", cfg.Vault)
	assert.Equal(t, 7000, cfg.HTTP.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "scribe.yaml", "vault: from-file\nhttp:\n  port: 9090\n")
	t.Setenv("SCRIBE_VAULT", "from-env")
	t.Setenv("SCRIBE_HTTP_PORT", "7777")
	t.Setenv("SCRIBE_REDIS_TTL", "1m")
	t.Setenv("SCRIBE_FILESYSTEM_PATHS", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Vault)
	assert.Equal(t, 7777, cfg.HTTP.Port)
	assert.Equal(t, time.Minute, cfg.Redis.TTL)
	assert.False(t, cfg.Host.FilesystemPaths)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown scope":  "depth_scope: global\n",
		"unknown syntax": "date_syntax: php\n",
		"unknown level":  "log_level: loud\n",
		"unknown key":    "colour: blue\n",
		"bad port":       "http:\n  port: 70000\n",
		"bad yaml":       "vault: [\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "scribe.yaml", content))
			assert.Error(t, err)
		})
	}
}

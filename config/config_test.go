package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 60, cfg.RateLimit.MaxRequests)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
rate_limit:
  window: 30s
  max_requests: 10
redis:
  addr: "redis:6379"
logging:
  level: debug
`), 0o600))

	t.Setenv("DEALDESK_RATE_LIMIT_MAX", "25")
	t.Setenv("DEALDESK_LOG_LEVEL", "WARN")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, 25, cfg.RateLimit.MaxRequests)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "dealdesk:ratelimit:", cfg.Redis.Prefix)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	t.Setenv("DEALDESK_RATE_LIMIT_MAX", "0")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_RejectsBadEnv(t *testing.T) {
	t.Setenv("DEALDESK_RATE_LIMIT_WINDOW", "soon")
	_, err := Load("")
	assert.ErrorContains(t, err, "DEALDESK_RATE_LIMIT_WINDOW")
}

func TestLoad_RejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rate_limit: [oops"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse yaml")
}

func TestLoad_AdminAndTrustedProxies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  trusted_proxies: ["10.0.0.0/8"]
admin:
  token: from-yaml
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.Server.TrustedProxies)
	assert.Equal(t, "from-yaml", cfg.Admin.Token)

	t.Setenv("DEALDESK_TRUSTED_PROXIES", "10.0.0.1,192.168.0.0/16")
	t.Setenv("DEALDESK_ADMIN_TOKEN", "from-env")

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, cfg.Server.TrustedProxies)
	assert.Equal(t, "from-env", cfg.Admin.Token)
}

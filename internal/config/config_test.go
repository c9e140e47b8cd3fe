package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigContent = `
[development]
host = "localhost"
port = 9000
log_level = "trace"
logs_path = ""
log_to_stdout = true
prometheus_metrics_host = "localhost"
prometheus_metrics_port = "2112"
redis_host = "localhost"
redis_port = "6379"
analysis_rate_limit_allowed_per_min = 50
analysis_cache_size_megabytes = 16
analysis_cache_expire_seconds = 300
sentry_enabled = false

[production]
host = "0.0.0.0"
port = 9000
log_level = "debug"
logs_path = "/var/log/formcoach/service.log"
log_to_stdout = false
prometheus_metrics_host = "0.0.0.0"
prometheus_metrics_port = "2112"
redis_host = "redis"
redis_port = "6379"
analysis_rate_limit_allowed_per_min = 200
analysis_cache_size_megabytes = 64
analysis_cache_expire_seconds = 600
sentry_enabled = true
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigContent), 0o600))
	return path
}

func TestLoad_Development(t *testing.T) {
	cfg, err := Load("development", writeTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.True(t, cfg.LogToStdout)
	assert.Equal(t, "2112", cfg.PrometheusMetricsPort)
	assert.Equal(t, 50, cfg.AnalysisRateLimitAllowedPerMin)
	assert.Equal(t, 16, cfg.AnalysisCacheSizeMegabytes)
	assert.False(t, cfg.SentryEnabled)
}

func TestLoad_Production(t *testing.T) {
	cfg, err := Load("prod", writeTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "/var/log/formcoach/service.log", cfg.LogsPath)
	assert.Equal(t, 200, cfg.AnalysisRateLimitAllowedPerMin)
	assert.True(t, cfg.SentryEnabled)
}

func TestLoad_UnknownEnv(t *testing.T) {
	cfg, err := Load("staging", writeTestConfig(t))
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "unknown env")
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("development", "/invalid/path/config.toml")
	require.Error(t, err)
	assert.Nil(t, cfg)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CONFIG_FILE", "HTTP_LISTEN_ADDR", "METRICS_LISTEN_ADDR", "LOG_LEVEL", "LOG_FILE",
	"SERVICE_NAME", "CLOUDFLARE_API_URL", "PROVIDER_TIMEOUT", "REQUEST_TIMEOUT", "CLIENT_IP_HEADER",
	"NOTIFY_URL", "NOTIFY_TIMEOUT",
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPListenAddr)
	assert.Equal(t, ":9090", cfg.MetricsListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.LogFile)
	assert.Equal(t, "ddns", cfg.ServiceName)
	assert.Equal(t, "https://api.cloudflare.com/client/v4", cfg.CloudflareAPIURL)
	assert.Equal(t, 30*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)
	assert.Equal(t, "CF-Connecting-IP", cfg.ClientIPHeader)
	assert.Equal(t, "", cfg.NotifyURL)
	assert.Equal(t, 10*time.Second, cfg.NotifyTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_AllEnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_LISTEN_ADDR", ":7071")
	t.Setenv("METRICS_LISTEN_ADDR", ":7072")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/var/log/ddns.log")
	t.Setenv("SERVICE_NAME", "ddns-edge")
	t.Setenv("CLOUDFLARE_API_URL", "http://cf.internal/client/v4")
	t.Setenv("PROVIDER_TIMEOUT", "5s")
	t.Setenv("REQUEST_TIMEOUT", "45s")
	t.Setenv("CLIENT_IP_HEADER", "X-Real-IP")
	t.Setenv("NOTIFY_URL", "https://ntfy.example.com/ddns")
	t.Setenv("NOTIFY_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7071", cfg.HTTPListenAddr)
	assert.Equal(t, ":7072", cfg.MetricsListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/var/log/ddns.log", cfg.LogFile)
	assert.Equal(t, "ddns-edge", cfg.ServiceName)
	assert.Equal(t, "http://cf.internal/client/v4", cfg.CloudflareAPIURL)
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "X-Real-IP", cfg.ClientIPHeader)
	assert.Equal(t, "https://ntfy.example.com/ddns", cfg.NotifyURL)
	assert.Equal(t, 2*time.Second, cfg.NotifyTimeout)
}

func TestLoad_EmptyMetricsAddrDisablesListener(t *testing.T) {
	clearEnv(t)
	t.Setenv("METRICS_LISTEN_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.MetricsListenAddr)
}

func TestLoad_InvalidDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROVIDER_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROVIDER_TIMEOUT")
}

func TestLoad_ConfigFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "ddns.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_listen_addr: ":9000"
log_level: warn
notify_url: https://hooks.example.com/ddns
notify_timeout: 3s
client_ip_header: X-Forwarded-For
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPListenAddr)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "https://hooks.example.com/ddns", cfg.NotifyURL)
	assert.Equal(t, 3*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, "X-Forwarded-For", cfg.ClientIPHeader)
	assert.Equal(t, 30*time.Second, cfg.ProviderTimeout)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "ddns.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_listen_addr: [unterminated"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidate_MissingFields(t *testing.T) {
	cfg := &Config{LogLevel: "info"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_LISTEN_ADDR")
	assert.Contains(t, err.Error(), "CLOUDFLARE_API_URL")
	assert.Contains(t, err.Error(), "CLIENT_IP_HEADER")
	assert.Contains(t, err.Error(), "PROVIDER_TIMEOUT")
	assert.Contains(t, err.Error(), "REQUEST_TIMEOUT")
	assert.Contains(t, err.Error(), "NOTIFY_TIMEOUT")
}

func TestValidate_InvalidNotifyURL(t *testing.T) {
	cfg := defaults()
	cfg.NotifyURL = "not a url"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOTIFY_URL")
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := defaults()
	cfg.LogLevel = "verbose"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestValidate_AllPresent(t *testing.T) {
	cfg := defaults()
	cfg.NotifyURL = "https://ntfy.example.com/ddns"
	assert.NoError(t, cfg.Validate())
}

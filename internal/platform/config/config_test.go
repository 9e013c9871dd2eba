package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rai/myapp-backend/internal/platform/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, ":8080", cfg.Server.Addr())
}

func TestLoad_YAMLFile(t *testing.T) {
	want := config.Default()
	want.Server.Host = "127.0.0.1"
	want.Server.Port = 9090
	want.Log.Level = "debug"
	want.Log.Format = "text"
	want.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	data, err := yaml.Marshal(map[string]any{
		"server": map[string]any{
			"host":          want.Server.Host,
			"port":          want.Server.Port,
			"read_timeout":  "15s",
			"write_timeout": "15s",
		},
		"log": map[string]any{
			"level":  want.Log.Level,
			"format": want.Log.Format,
		},
		"cors": map[string]any{
			"allowed_origins": want.CORS.AllowedOrigins,
		},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "myapp.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := config.Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, want, cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MYAPP_SERVER_PORT", "7000")
	t.Setenv("MYAPP_SERVER_SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("MYAPP_SERVICE_VERSION", "2.3.4")

	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "2.3.4", cfg.Service.Version)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("MYAPP_LOG_FORMAT", "xml")

	_, err := config.Load(viper.New(), "")
	require.ErrorIs(t, err, config.ErrInvalidLogFormat)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr error
	}{
		{"defaults", func(c *config.Config) {}, nil},
		{"port zero", func(c *config.Config) { c.Server.Port = 0 }, config.ErrInvalidPort},
		{"port too large", func(c *config.Config) { c.Server.Port = 70000 }, config.ErrInvalidPort},
		{"negative timeout", func(c *config.Config) { c.Server.ReadTimeout = -time.Second }, config.ErrInvalidTimeout},
		{"unknown level", func(c *config.Config) { c.Log.Level = "trace" }, config.ErrInvalidLogLevel},
		{"upper-case level", func(c *config.Config) { c.Log.Level = "WARN" }, nil},
		{"unknown format", func(c *config.Config) { c.Log.Format = "logfmt" }, config.ErrInvalidLogFormat},
		{"blank service name", func(c *config.Config) { c.Service.Name = " " }, config.ErrServiceName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

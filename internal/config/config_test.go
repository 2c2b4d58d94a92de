package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger().Level)
	assert.Equal(t, "console", cfg.Logger().Format)
	assert.Equal(t, 30*time.Second, cfg.Network().Timeout)
	assert.Equal(t, "http://example.com", cfg.Browser().StartURL)
	assert.Equal(t, 4, cfg.Render().Concurrency)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidation(t *testing.T) {
	t.Run("single problem", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.RenderCfg.Concurrency = 0
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "render.concurrency must be a positive integer")
	})

	t.Run("every problem is reported", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.LoggerCfg.Format = "xml"
		cfg.NetworkCfg.Timeout = 0
		cfg.BrowserCfg.StartURL = ""
		cfg.BrowserCfg.Width = -1
		cfg.RenderCfg.FontSize = 0
		err := cfg.Validate()
		require.Error(t, err)
		assert.Len(t, multierr.Errors(err), 5)
	})
}

func TestNewConfigFromViper(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(`
network:
  timeout: 5s
browser:
  start_url: file:///tmp/index.html
render:
  concurrency: 2
`)))

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Network().Timeout)
	assert.Equal(t, "file:///tmp/index.html", cfg.Browser().StartURL)
	assert.Equal(t, 2, cfg.Render().Concurrency)
	assert.Equal(t, 800, cfg.Browser().Width, "unset keys keep their defaults")
}

func TestNewConfigFromViper_Invalid(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("render.concurrency", -3)

	_, err := NewConfigFromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestBindEnv(t *testing.T) {
	t.Setenv("WISP_BROWSER_START_URL", "http://env.example/")
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example/", cfg.Browser().StartURL)
}

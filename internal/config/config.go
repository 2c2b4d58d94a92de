package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. WISP_BROWSER_START_URL.
const EnvPrefix = "WISP"

type Config struct {
	LoggerCfg  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	NetworkCfg NetworkConfig `mapstructure:"network" yaml:"network"`
	BrowserCfg BrowserConfig `mapstructure:"browser" yaml:"browser"`
	RenderCfg  RenderConfig  `mapstructure:"render" yaml:"render"`
}

func (c *Config) Logger() LoggerConfig   { return c.LoggerCfg }
func (c *Config) Network() NetworkConfig { return c.NetworkCfg }
func (c *Config) Browser() BrowserConfig { return c.BrowserCfg }
func (c *Config) Render() RenderConfig   { return c.RenderCfg }

type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

type NetworkConfig struct {
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
}

type BrowserConfig struct {
	StartURL string `mapstructure:"start_url" yaml:"start_url"`
	Width    int    `mapstructure:"width" yaml:"width"`
	Height   int    `mapstructure:"height" yaml:"height"`
}

type RenderConfig struct {
	Concurrency int    `mapstructure:"concurrency" yaml:"concurrency"`
	OutputDir   string `mapstructure:"output_dir" yaml:"output_dir"`
	// TrueType files for PNG output; empty keeps the built-in face.
	FontRegular string  `mapstructure:"font_regular" yaml:"font_regular"`
	FontItalic  string  `mapstructure:"font_italic" yaml:"font_italic"`
	FontSize    float64 `mapstructure:"font_size" yaml:"font_size"`
}

// NewDefaultConfig returns the configuration made of the defaults alone.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "wisp")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)

	// -- Network --
	v.SetDefault("network.timeout", "30s")
	v.SetDefault("network.user_agent", "wisp/0.1 (compatible; Go)")

	// -- Browser --
	v.SetDefault("browser.start_url", "http://example.com")
	v.SetDefault("browser.width", 800)
	v.SetDefault("browser.height", 600)

	// -- Render --
	v.SetDefault("render.concurrency", 4)
	v.SetDefault("render.output_dir", ".")
	v.SetDefault("render.font_regular", "")
	v.SetDefault("render.font_italic", "")
	v.SetDefault("render.font_size", 13.0)
}

// BindEnv makes every key overridable from WISP_-prefixed environment
// variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// NewConfigFromViper decodes and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate reports every invalid value at once.
func (c *Config) Validate() error {
	var err error
	switch c.LoggerCfg.Format {
	case "console", "json":
	default:
		err = multierr.Append(err, fmt.Errorf("logger.format must be console or json, got %q", c.LoggerCfg.Format))
	}
	if c.NetworkCfg.Timeout <= 0 {
		err = multierr.Append(err, errors.New("network.timeout must be positive"))
	}
	if c.BrowserCfg.StartURL == "" {
		err = multierr.Append(err, errors.New("browser.start_url is required"))
	}
	if c.BrowserCfg.Width <= 0 || c.BrowserCfg.Height <= 0 {
		err = multierr.Append(err, errors.New("browser.width and browser.height must be positive integers"))
	}
	if c.RenderCfg.Concurrency <= 0 {
		err = multierr.Append(err, errors.New("render.concurrency must be a positive integer"))
	}
	if c.RenderCfg.FontSize <= 0 {
		err = multierr.Append(err, errors.New("render.font_size must be positive"))
	}
	return err
}

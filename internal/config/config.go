// Package config loads the demo configuration with viper: defaults, then a
// tether.yaml file, then TETHER_* environment variables, then bound flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/crgimenes/tether"
	"github.com/crgimenes/tether/internal/logging"
	"github.com/crgimenes/tether/internal/resources"
	"github.com/spf13/viper"
)

// Config is the demo configuration.
type Config struct {
	Window    WindowConfig   `mapstructure:"window"`
	Host      string         `mapstructure:"host"`      // interception host
	Resources string         `mapstructure:"resources"` // directory; empty serves the embedded tree
	Watch     bool           `mapstructure:"watch"`     // reload the page when resources change
	Log       logging.Config `mapstructure:"log"`
}

// WindowConfig holds the window options.
type WindowConfig struct {
	Title      string `mapstructure:"title"`
	Width      uint   `mapstructure:"width"`
	Height     uint   `mapstructure:"height"`
	MinWidth   uint   `mapstructure:"min_width"`
	MinHeight  uint   `mapstructure:"min_height"`
	Borderless bool   `mapstructure:"borderless"`
	Debug      bool   `mapstructure:"debug"`
}

// New returns a viper instance with defaults, search paths and environment
// bindings set.
func New() *viper.Viper {
	v := viper.New()

	v.SetConfigName("tether")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "tether"))
	}

	v.SetEnvPrefix("TETHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.title", "itch lite")
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.min_width", tether.DefaultMinimumWidth)
	v.SetDefault("window.min_height", tether.DefaultMinimumHeight)
	v.SetDefault("window.borderless", false)
	v.SetDefault("window.debug", false)
	v.SetDefault("host", resources.DefaultHost)
	v.SetDefault("resources", "")
	v.SetDefault("watch", false)

	log := logging.DefaultConfig()
	v.SetDefault("log.level", log.Level)
	v.SetDefault("log.format", log.Format)
}

// Load reads the config file, if any, and returns the merged configuration.
// A missing config file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks values viper cannot check by itself.
func (c *Config) Validate() error {
	if c.Host == "" || strings.ContainsAny(c.Host, "/?#@ ") {
		return fmt.Errorf("invalid host %q", c.Host)
	}
	if c.Window.Width < c.Window.MinWidth || c.Window.Height < c.Window.MinHeight {
		return fmt.Errorf("window size %dx%d is below the minimum %dx%d",
			c.Window.Width, c.Window.Height, c.Window.MinWidth, c.Window.MinHeight)
	}
	if c.Watch && c.Resources == "" {
		return errors.New("watch needs a resources directory")
	}
	if c.Resources != "" {
		info, err := os.Stat(c.Resources)
		if err != nil {
			return fmt.Errorf("resources: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("resources: %s is not a directory", c.Resources)
		}
	}
	return nil
}

// WindowOptions converts the window section to tether options.
func (c *Config) WindowOptions(h tether.Handler) tether.Options {
	return tether.Options{
		InitialWidth:  c.Window.Width,
		InitialHeight: c.Window.Height,
		MinimumWidth:  c.Window.MinWidth,
		MinimumHeight: c.Window.MinHeight,
		Borderless:    c.Window.Borderless,
		Debug:         c.Window.Debug,
		Handler:       h,
	}
}

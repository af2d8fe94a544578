// Package cliconfig loads resiliencectl's own configuration. It is the only
// place in this module that depends on viper or fsnotify — every library
// package stays free of config-file concerns so it can be embedded in a
// caller with its own configuration story.
package cliconfig

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/resilientgo/core/pkg/rlog"
)

// Config is resiliencectl's own settings, distinct from anything a demo
// subcommand configures on the library types it exercises.
type Config struct {
	Verbose   bool   `mapstructure:"verbose"`
	LogFormat string `mapstructure:"log_format"`
}

// Load reads resilience.yaml (or the file named by cfgFile) from the
// current directory, overlays RESILIENCE_-prefixed environment variables,
// and watches the file for changes for the lifetime of the process.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("verbose", false)
	v.SetDefault("log_format", "text")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("resilience")
	}

	v.SetEnvPrefix("RESILIENCE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Fprintf(os.Stderr, "config file changed: %s\n", e.Name)
	})

	return &cfg, nil
}

// RlogFormat resolves cfg.LogFormat to an rlog.Format, defaulting to text on
// any unrecognized value.
func (c *Config) RlogFormat() rlog.Format {
	if c.LogFormat == "json" {
		return rlog.JSONFormat
	}
	return rlog.TextFormat
}

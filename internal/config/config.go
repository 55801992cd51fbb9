// Package config loads lookbook settings with viper.
//
// Settings come from, in increasing priority: built-in defaults, an optional
// config file (lookbook.yaml, lookbook.toml or lookbook.json in the working
// directory, $XDG_CONFIG_HOME/lookbook or ~/.config/lookbook), LOOKBOOK_*
// environment variables (LOOKBOOK_EXPORT_DELAY for export.delay) and
// command-line flags bound by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "LOOKBOOK"

// Config is the resolved configuration.
type Config struct {
	// Deck is the deck file to export.
	Deck    string
	Export  *Export
	Render  *Render
	Deliver *Deliver
	Cache   *Cache
	Assets  *Assets
	// File is the config file that was read, if any.
	File  string
	Viper *viper.Viper
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deck", "deck.toml")
	setExportDefaults(v)
	setRenderDefaults(v)
	setDeliverDefaults(v)
	setCacheDefaults(v)
	setAssetsDefaults(v)
}

// Load reads the config file (configPath, or the first lookbook.* found in
// the search path) into v and resolves every section. A missing file is
// fine unless configPath names it explicitly.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("lookbook")
		v.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "lookbook"))
		}
		v.AddConfigPath("$HOME/.config/lookbook")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Deck:    expandHome(v.GetString("deck")),
		Export:  getExportConfig(v),
		Deliver: getDeliverConfig(v),
		Cache:   getCacheConfig(v),
		Assets:  getAssetsConfig(v),
		File:    v.ConfigFileUsed(),
		Viper:   v,
	}

	var err error
	if cfg.Render, err = getRenderConfig(v); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	if c.Export.Delay < 0 || c.Export.Display < 0 {
		return fmt.Errorf("export.delay and export.display must not be negative")
	}
	if c.Deliver.Grace < 0 {
		return fmt.Errorf("deliver.grace must not be negative")
	}
	if c.Render.Config.Scale <= 0 || c.Render.Config.Scale > 8 {
		return fmt.Errorf("render.scale must be in (0, 8], got %v", c.Render.Config.Scale)
	}
	if c.Export.BatchScale <= 0 || c.Export.BatchScale > 8 {
		return fmt.Errorf("export.batch_scale must be in (0, 8], got %v", c.Export.BatchScale)
	}
	return nil
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

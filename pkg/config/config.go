// Package config loads lil-go settings. LIL_* environment variables override
// the YAML file, which overrides the built-in defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"lil-go/pkg/bstr"
	"lil-go/pkg/transform"
)

type Config struct {
	Debug         bool   `mapstructure:"debug"`
	StoreFile     string `mapstructure:"store_file"` // relative names live in the app directory
	LogFile       string `mapstructure:"log_file"`   // empty disables the SQLite log sink
	APIListenAddr string `mapstructure:"api_listen_address"`
	DefaultBudget int    `mapstructure:"default_budget"` // budget for buffers created without one
	Compression   string `mapstructure:"compression"`    // none, gzip or zstd
	ConfigFile    string `mapstructure:"config_file"`
}

func DefaultConfig() *Config {
	return &Config{
		Debug:         false,
		StoreFile:     "buffers.db",
		LogFile:       "lil.db",
		APIListenAddr: "127.0.0.1:7780",
		DefaultBudget: 64,
		Compression:   transform.Zstd,
		ConfigFile:    "lil",
	}
}

// LoadConfig reads file, or when file is empty searches ".", /etc/lil-go and
// $HOME/.lil-go for lil.yaml. A missing config file is not an error.
func LoadConfig(file string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	v.SetDefault("debug", cfg.Debug)
	v.SetDefault("store_file", cfg.StoreFile)
	v.SetDefault("log_file", cfg.LogFile)
	v.SetDefault("api_listen_address", cfg.APIListenAddr)
	v.SetDefault("default_budget", cfg.DefaultBudget)
	v.SetDefault("compression", cfg.Compression)
	v.SetDefault("config_file", cfg.ConfigFile)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(cfg.ConfigFile)
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/lil-go/")
		v.AddConfigPath("$HOME/.lil-go")
	}
	v.SetConfigType("yaml")
	v.SetEnvPrefix("LIL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		cfg.ConfigFile = used
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that other packages would reject later.
func (c *Config) Validate() error {
	if _, err := bstr.New(c.DefaultBudget); err != nil {
		return fmt.Errorf("config: default_budget: %w", err)
	}
	if _, err := transform.ForName(c.Compression); err != nil {
		return fmt.Errorf("config: compression: %w", err)
	}
	if c.StoreFile == "" {
		return errors.New("config: store_file is empty")
	}
	return nil
}

// Transform returns the snapshot transform named by Compression.
func (c *Config) Transform() (transform.Transform, error) {
	return transform.ForName(c.Compression)
}

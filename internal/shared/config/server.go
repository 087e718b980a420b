package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig contains all configuration for the mrjerbd launch service.
type ServerConfig struct {
	LauncherConfig `mapstructure:",squash"`

	REST    RESTConfig `mapstructure:"rest"`
	Workers int        `mapstructure:"workers"`
}

// RESTConfig contains REST API server configuration.
type RESTConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// LoadServer loads the launch service configuration from the given path.
// If configPath is empty, it looks for mrjerbd.yaml in the config/ directory.
// Environment variables with MRJERBD_ prefix override config file values.
func LoadServer(configPath string) (*ServerConfig, error) {
	v := viper.New()

	v.SetDefault("rest.addr", ":8080")
	v.SetDefault("rest.read_timeout", 15*time.Second)
	v.SetDefault("rest.write_timeout", 15*time.Second)
	v.SetDefault("rest.idle_timeout", 60*time.Second)
	v.SetDefault("workers", 2)
	setLauncherDefaults(v)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	var cfg ServerConfig
	if err := load(v, configPath, "mrjerbd", "MRJERBD", &cfg); err != nil {
		return nil, err
	}
	if cfg.Workers <= 0 {
		return nil, fmt.Errorf("workers must be > 0, got %d", cfg.Workers)
	}
	if err := cfg.LauncherConfig.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

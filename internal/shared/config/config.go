package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig contains logging-related configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// load reads the optional config file and environment overrides into out.
// If configPath is empty, it looks for <name>.yaml in the config/ directory.
func load(v *viper.Viper, configPath, name, envPrefix string, out any) error {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(name)
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}
	return nil
}

package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// LauncherConfig contains all configuration for the mrjerb CLI.
type LauncherConfig struct {
	Streaming StreamingConfig `mapstructure:"streaming"`
	Cleanup   CleanupConfig   `mapstructure:"cleanup"`
	Jobs      JobsConfig      `mapstructure:"jobs"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// StreamingConfig controls how mrjob commands are rendered and executed.
type StreamingConfig struct {
	Interpreter  string `mapstructure:"interpreter"`
	HadoopBinary string `mapstructure:"hadoop_binary"`
	Shell        string `mapstructure:"shell"`
	ExecMode     string `mapstructure:"exec_mode"`
}

// CleanupConfig selects how output paths are deleted before a launch.
// Backend is "shell" (hadoop fs -rmr) or "hdfs" (native RPC client).
type CleanupConfig struct {
	Backend   string   `mapstructure:"backend"`
	Namenodes []string `mapstructure:"namenodes"`
	User      string   `mapstructure:"user"`
}

// JobsConfig lists the glob patterns of job definition files.
type JobsConfig struct {
	Patterns []string `mapstructure:"patterns"`
}

const (
	CleanupBackendShell = "shell"
	CleanupBackendHDFS  = "hdfs"
)

func setLauncherDefaults(v *viper.Viper) {
	v.SetDefault("streaming.interpreter", "python")
	v.SetDefault("streaming.hadoop_binary", "hadoop")
	v.SetDefault("streaming.shell", "/bin/sh")
	v.SetDefault("streaming.exec_mode", "shell")
	v.SetDefault("cleanup.backend", CleanupBackendShell)
	v.SetDefault("cleanup.namenodes", []string{})
	v.SetDefault("cleanup.user", "")
	v.SetDefault("jobs.patterns", []string{"jobs/**/*.yaml"})
}

// LoadLauncher loads the CLI configuration from the given path.
// If configPath is empty, it looks for mrjerb.yaml in the config/ directory.
// Environment variables with MRJERB_ prefix override config file values.
func LoadLauncher(configPath string) (*LauncherConfig, error) {
	v := viper.New()

	setLauncherDefaults(v)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	var cfg LauncherConfig
	if err := load(v, configPath, "mrjerb", "MRJERB", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *LauncherConfig) validate() error {
	switch c.Streaming.ExecMode {
	case "shell", "direct":
	default:
		return fmt.Errorf("invalid streaming.exec_mode %q: want shell or direct", c.Streaming.ExecMode)
	}
	switch c.Cleanup.Backend {
	case CleanupBackendShell:
	case CleanupBackendHDFS:
		if len(c.Cleanup.Namenodes) == 0 {
			return fmt.Errorf("cleanup.namenodes is required for the hdfs backend")
		}
	default:
		return fmt.Errorf("invalid cleanup.backend %q: want shell or hdfs", c.Cleanup.Backend)
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadLauncher_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadLauncher("")
	require.NoError(t, err)

	require.Equal(t, "python", cfg.Streaming.Interpreter)
	require.Equal(t, "hadoop", cfg.Streaming.HadoopBinary)
	require.Equal(t, "/bin/sh", cfg.Streaming.Shell)
	require.Equal(t, "shell", cfg.Streaming.ExecMode)
	require.Equal(t, CleanupBackendShell, cfg.Cleanup.Backend)
	require.Equal(t, []string{"jobs/**/*.yaml"}, cfg.Jobs.Patterns)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadLauncher_File(t *testing.T) {
	path := writeConfig(t, `
streaming:
  interpreter: /usr/bin/python2.7
  hadoop_binary: /opt/hadoop/bin/hadoop
cleanup:
  backend: hdfs
  namenodes: ["nn1:8020", "nn2:8020"]
  user: etl
jobs:
  patterns: ["/etc/mrjerb/**/*.yaml"]
logging:
  level: debug
`)

	cfg, err := LoadLauncher(path)
	require.NoError(t, err)

	require.Equal(t, "/usr/bin/python2.7", cfg.Streaming.Interpreter)
	require.Equal(t, "/opt/hadoop/bin/hadoop", cfg.Streaming.HadoopBinary)
	require.Equal(t, CleanupBackendHDFS, cfg.Cleanup.Backend)
	require.Equal(t, []string{"nn1:8020", "nn2:8020"}, cfg.Cleanup.Namenodes)
	require.Equal(t, "etl", cfg.Cleanup.User)
	require.Equal(t, []string{"/etc/mrjerb/**/*.yaml"}, cfg.Jobs.Patterns)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadLauncher_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MRJERB_STREAMING_HADOOP_BINARY", "/usr/local/bin/hadoop")
	t.Setenv("MRJERB_LOGGING_LEVEL", "warn")

	cfg, err := LoadLauncher("")
	require.NoError(t, err)
	require.Equal(t, "/usr/local/bin/hadoop", cfg.Streaming.HadoopBinary)
	require.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadLauncher_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"exec mode", "streaming:\n  exec_mode: ssh\n"},
		{"backend", "cleanup:\n  backend: s3\n"},
		{"hdfs without namenodes", "cleanup:\n  backend: hdfs\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLauncher(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestLoadServer_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadServer("")
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.REST.Addr)
	require.Equal(t, 15*time.Second, cfg.REST.ReadTimeout)
	require.Equal(t, 60*time.Second, cfg.REST.IdleTimeout)
	require.Equal(t, 2, cfg.Workers)
	require.Equal(t, "python", cfg.Streaming.Interpreter)
	require.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadServer_File(t *testing.T) {
	path := writeConfig(t, `
rest:
  addr: ":9999"
  read_timeout: 5s
workers: 8
streaming:
  exec_mode: direct
`)

	cfg, err := LoadServer(path)
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.REST.Addr)
	require.Equal(t, 5*time.Second, cfg.REST.ReadTimeout)
	require.Equal(t, 8, cfg.Workers)
	require.Equal(t, "direct", cfg.Streaming.ExecMode)
}

func TestLoadServer_InvalidWorkers(t *testing.T) {
	_, err := LoadServer(writeConfig(t, "workers: 0\n"))
	require.ErrorContains(t, err, "workers")
}

// Package launcher assembles a streaming.Launcher from configuration.
package launcher

import (
	"io"

	"github.com/tellapart/mrjerb/internal/hdfs"
	"github.com/tellapart/mrjerb/internal/process"
	"github.com/tellapart/mrjerb/internal/shared/config"
	"github.com/tellapart/mrjerb/internal/shared/logging"
	"github.com/tellapart/mrjerb/pkg/streaming"
)

// Option adjusts the process runner behind the launcher.
type Option func(*process.Runner)

// WithStdin connects r to the stdin of launched commands. Without it they
// read from the null device.
func WithStdin(r io.Reader) Option {
	return func(p *process.Runner) {
		p.Stdin = r
	}
}

// New builds a launcher for cfg. The returned close function releases the
// HDFS connection when the hdfs cleanup backend is used.
func New(cfg config.LauncherConfig, logger logging.Logger, opts ...Option) (*streaming.Launcher, func() error, error) {
	runner := process.NewRunner(cfg.Streaming.Shell)
	for _, opt := range opts {
		opt(runner)
	}
	closeFn := func() error { return nil }

	var cleaner streaming.OutputCleaner
	switch cfg.Cleanup.Backend {
	case config.CleanupBackendHDFS:
		c, err := hdfs.NewCleaner(cfg.Cleanup.Namenodes, cfg.Cleanup.User)
		if err != nil {
			return nil, nil, err
		}
		cleaner = c
		closeFn = c.Close
	default:
		cleaner = &streaming.ShellCleaner{Binary: cfg.Streaming.HadoopBinary, Runner: runner}
	}

	l := streaming.NewLauncher(
		streaming.WithExecutor(runner),
		streaming.WithCleaner(cleaner),
		streaming.WithInterpreter(cfg.Streaming.Interpreter),
		streaming.WithExecMode(streaming.ExecMode(cfg.Streaming.ExecMode)),
		streaming.WithLogger(logger),
	)
	return l, closeFn, nil
}

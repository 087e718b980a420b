// Package streaming renders and launches mrjob streaming jobs on a hadoop
// cluster.
package streaming

import (
	"context"
	"errors"
	"fmt"

	"github.com/tellapart/mrjerb/internal/process"
	"github.com/tellapart/mrjerb/internal/shared/logging"
)

var (
	ErrCleanup = errors.New("output cleanup failed")
	ErrLaunch  = errors.New("job launch failed")
)

// Executor runs external commands and waits for them to exit.
type Executor interface {
	RunShell(ctx context.Context, line string) error
	Run(ctx context.Context, name string, args ...string) error
}

type ExecMode string

const (
	// ExecShell hands the rendered line to the shell.
	ExecShell ExecMode = "shell"
	// ExecDirect runs the argument vector without a shell.
	ExecDirect ExecMode = "direct"
)

type Launcher struct {
	builder  Builder
	executor Executor
	cleaner  OutputCleaner
	mode     ExecMode
	logger   logging.Logger
}

type Option func(*Launcher)

func WithExecutor(e Executor) Option {
	return func(l *Launcher) { l.executor = e }
}

// WithCleaner replaces the default "hadoop fs -rmr" cleaner.
func WithCleaner(c OutputCleaner) Option {
	return func(l *Launcher) { l.cleaner = c }
}

func WithInterpreter(interpreter string) Option {
	return func(l *Launcher) { l.builder.Interpreter = interpreter }
}

func WithExecMode(mode ExecMode) Option {
	return func(l *Launcher) { l.mode = mode }
}

func WithLogger(logger logging.Logger) Option {
	return func(l *Launcher) { l.logger = logger }
}

func NewLauncher(opts ...Option) *Launcher {
	l := &Launcher{
		mode:   ExecShell,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.executor == nil {
		l.executor = process.NewRunner("")
	}
	if l.cleaner == nil {
		l.cleaner = &ShellCleaner{Binary: DefaultHadoopBinary, Runner: l.executor}
	}
	return l
}

// Command renders req the way Launch would run it.
func (l *Launcher) Command(req JobRequest) Command {
	return l.builder.Build(req)
}

// Launch runs the job and reports whether it exited successfully. Failures are
// logged, never returned.
func (l *Launcher) Launch(ctx context.Context, req JobRequest) bool {
	return l.Run(ctx, req) == nil
}

// Run removes the output first when req.DeleteOutput is set, then runs the job
// and waits for it. Errors wrap ErrCleanup or ErrLaunch.
func (l *Launcher) Run(ctx context.Context, req JobRequest) error {
	cmd := l.builder.Build(req)

	if req.DeleteOutput {
		if err := l.removeOutput(ctx, req); err != nil {
			l.logger.Error("Failed to delete hdfs output path",
				"path", req.Output,
				"error", err,
			)
			return fmt.Errorf("%w: %s: %w", ErrCleanup, req.Output, err)
		}
	}

	line := cmd.String()
	l.logger.Info("Launching mrjob streaming job", "command", line)

	var err error
	if l.mode == ExecDirect {
		argv := cmd.Argv()
		err = l.executor.Run(ctx, argv[0], argv[1:]...)
	} else {
		err = l.executor.RunShell(ctx, line)
	}
	if err != nil {
		l.logger.Error("Cannot run mrjob job; skipping",
			"command", line,
			"error", err,
		)
		return fmt.Errorf("%w: %w", ErrLaunch, err)
	}
	return nil
}

func (l *Launcher) removeOutput(ctx context.Context, req JobRequest) error {
	if bc, ok := l.cleaner.(binaryCleaner); ok {
		return bc.removeOutputWith(ctx, req.HadoopBinary, req.Output)
	}
	return l.cleaner.RemoveOutput(ctx, req.Output)
}

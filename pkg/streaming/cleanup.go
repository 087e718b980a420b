package streaming

import (
	"context"
	"strings"
)

// OutputCleaner removes a job's output location before it is launched.
type OutputCleaner interface {
	RemoveOutput(ctx context.Context, path string) error
}

// ShellCleaner removes the output through "<hadoop> fs -rmr <path>".
type ShellCleaner struct {
	Binary string
	Runner Executor
}

func (c *ShellCleaner) RemoveOutput(ctx context.Context, path string) error {
	return c.removeOutputWith(ctx, "", path)
}

// binaryCleaner is implemented by cleaners that honor a per-request hadoop
// binary.
type binaryCleaner interface {
	removeOutputWith(ctx context.Context, binary, path string) error
}

func (c *ShellCleaner) removeOutputWith(ctx context.Context, binary, path string) error {
	if binary == "" {
		binary = c.Binary
	}
	if binary == "" {
		binary = DefaultHadoopBinary
	}
	return c.Runner.RunShell(ctx, strings.Join([]string{binary, "fs", "-rmr", path}, " "))
}

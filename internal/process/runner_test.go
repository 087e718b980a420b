package process

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunner_RunShell_Success(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{Stdout: &out}

	err := r.RunShell(context.Background(), `echo "hello world"`)
	require.NoError(t, err)
	require.Equal(t, "hello world\n", out.String())
}

func TestRunner_RunShell_ExitCode(t *testing.T) {
	r := NewRunner("")

	err := r.RunShell(context.Background(), "exit 3")
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 3, exitErr.Code)
	require.Equal(t, "exit 3", exitErr.Command)
	require.Contains(t, err.Error(), "status 3")
}

func TestRunner_RunShell_MissingShell(t *testing.T) {
	r := NewRunner("/nonexistent/shell")

	err := r.RunShell(context.Background(), "true")
	require.Error(t, err)

	var exitErr *ExitError
	require.False(t, errors.As(err, &exitErr))
}

func TestRunner_Run_DoesNotInterpretShell(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{Stdout: &out}

	err := r.Run(context.Background(), "echo", "$HOME", "a;b")
	require.NoError(t, err)
	require.Equal(t, "$HOME a;b\n", out.String())
}

func TestRunner_Run_NonZero(t *testing.T) {
	r := NewRunner("")

	err := r.Run(context.Background(), "false")

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 1, exitErr.Code)
}

func TestRunner_RunShell_ContextCancel(t *testing.T) {
	r := NewRunner("")
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := r.RunShell(ctx, "sleep 5")
	require.Error(t, err)
	require.Less(t, time.Since(start), 4*time.Second)
}

func TestRunner_Stdin(t *testing.T) {
	t.Run("not connected by default", func(t *testing.T) {
		var out bytes.Buffer
		r := &Runner{Stdout: &out}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		require.NoError(t, r.RunShell(ctx, "cat"))
		require.Empty(t, out.String())
	})

	t.Run("opt in", func(t *testing.T) {
		var out bytes.Buffer
		r := &Runner{Stdin: strings.NewReader("answer"), Stdout: &out}

		require.NoError(t, r.RunShell(context.Background(), "cat"))
		require.Equal(t, "answer", out.String())
	})
}

package streaming

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultInterpreter = "python"

	// archiveLabel makes the job archive referencible as ./code on the workers.
	archiveLabel = "#code"
)

// token is one element of the rendered command line. shell is the literal text
// joined into the shell line, argv is what the shell hands to the process for
// that text when caller values carry no metacharacters.
type token struct {
	shell string
	argv  []string
}

func plain(s string) token {
	return token{shell: s, argv: []string{s}}
}

// Command is a rendered mrjob invocation.
type Command struct {
	tokens []token
}

// String returns the command line as it is handed to the shell.
func (c Command) String() string {
	parts := make([]string, len(c.tokens))
	for i, t := range c.tokens {
		parts[i] = t.shell
	}
	return strings.Join(parts, " ")
}

// Argv returns the command as an explicit argument vector, with the quoting of
// the shell line removed. Running it directly bypasses shell interpretation of
// caller supplied values.
func (c Command) Argv() []string {
	var argv []string
	for _, t := range c.tokens {
		argv = append(argv, t.argv...)
	}
	return argv
}

// Builder renders JobRequests into mrjob command lines.
type Builder struct {
	// Interpreter runs the job script. Defaults to python.
	Interpreter string
}

// BuildCommand renders req with the default interpreter.
func BuildCommand(req JobRequest) Command {
	return Builder{}.Build(req)
}

func (b Builder) Build(req JobRequest) Command {
	interpreter := b.Interpreter
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}

	tokens := []token{
		plain(interpreter),
		plain(req.Script),
		{shell: "-r hadoop", argv: []string{"-r", "hadoop"}},
		{shell: "-o ", argv: []string{"-o"}},
		plain(req.Output),
		{
			shell: fmt.Sprintf(`--cmdenv "PYTHONPATH=%s"`, req.PythonPath),
			argv:  []string{"--cmdenv", "PYTHONPATH=" + req.PythonPath},
		},
	}

	tokens = append(tokens, plain("--archive="+req.Archive+archiveLabel))
	if req.JarPaths != nil {
		for _, jar := range req.JarPaths {
			tokens = append(tokens, plain("--archive="+jar))
		}
	}

	compress := req.Compress
	if compress == "" {
		compress = CompressionOff
	}
	tokens = append(tokens,
		jobconf("mapred.output.compress", string(compress)),
		jobconf("mapred.job.name", req.Name),
	)
	if req.NumReduceTasks > 0 {
		tokens = append(tokens, jobconf("mapred.reduce.tasks", strconv.Itoa(req.NumReduceTasks)))
	}

	if req.JarPaths != nil {
		tokens = append(tokens,
			hadoopExtraArg("-libjars", strings.Join(req.JarPaths, ",")),
			hadoopExtraArg("-partitioner", req.PartitionerClass),
		)
	}

	if req.OutputProtocol != "" {
		tokens = append(tokens, plain(fmt.Sprintf("--output-protocol=%s", req.OutputProtocol)))
	}

	cleanup := req.Cleanup
	if cleanup == "" {
		cleanup = DefaultCleanup
	}
	tokens = append(tokens, plain(fmt.Sprintf("--cleanup=%s", cleanup)))

	tokens = append(tokens, token{
		shell: strings.Join(req.Inputs, " "),
		argv:  append([]string(nil), req.Inputs...),
	})

	return Command{tokens: tokens}
}

func jobconf(key, value string) token {
	return token{
		shell: fmt.Sprintf(`--jobconf="%s=%s"`, key, value),
		argv:  []string{fmt.Sprintf("--jobconf=%s=%s", key, value)},
	}
}

// hadoopExtraArg renders a passthrough hadoop argument. The shell splits the
// flag from its value, and an empty value disappears.
func hadoopExtraArg(flag, value string) token {
	t := token{
		shell: fmt.Sprintf("--hadoop_extra_arg=%s %s", flag, value),
		argv:  []string{"--hadoop_extra_arg=" + flag},
	}
	if value != "" {
		t.argv = append(t.argv, value)
	}
	return t
}

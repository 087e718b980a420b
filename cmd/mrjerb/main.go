package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/tellapart/mrjerb/internal/launcher"
	"github.com/tellapart/mrjerb/internal/shared/config"
	"github.com/tellapart/mrjerb/internal/shared/logging"
	"github.com/tellapart/mrjerb/pkg/jobs"
	"github.com/tellapart/mrjerb/pkg/streaming"
)

// listFlag collects a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mrjerb", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath  = fs.String("config", "", "path to config file")
		jobName     = fs.String("job", "", "registered job definition to launch")
		jobPatterns = fs.String("jobs", "", "comma-separated glob patterns of job definition files (overrides config)")
		listJobs    = fs.Bool("list", false, "list registered job definitions and exit")
		dryRun      = fs.Bool("dry-run", false, "print the rendered command without running it")

		inputs         listFlag
		jars           listFlag
		output         = fs.String("output", "", "hdfs output path")
		script         = fs.String("script", "", "mrjob python file")
		archive        = fs.String("archive", "", "code archive shipped with the job")
		name           = fs.String("name", "", "hadoop job name")
		pythonPath     = fs.String("pythonpath", "", "PYTHONPATH for the job, colon separated")
		reducers       = fs.Int("reducers", 0, "number of reduce tasks (0 keeps the cluster default)")
		partitioner    = fs.String("partitioner", "", "java partitioner class, used with -jar")
		outputProtocol = fs.String("output-protocol", "", "mrjob output protocol override")
		cleanup        = fs.String("cleanup", "", "mrjob cleanup policy (default ALL)")
		deleteOutput   = fs.Bool("delete-output", false, "delete the output path before launching")
		compress       = fs.Bool("compress", false, "compress job output")
		hadoopBinary   = fs.String("hadoop", "", "hadoop binary used to delete the output path")
	)
	fs.Var(&inputs, "input", "input path, local or hdfs (repeatable)")
	fs.Var(&jars, "jar", "library jar passed with -libjars (repeatable)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.LoadLauncher(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	patterns := cfg.Jobs.Patterns
	if *jobPatterns != "" {
		patterns = strings.Split(*jobPatterns, ",")
	}

	var req streaming.JobRequest
	if *jobName != "" || *listJobs {
		registry := jobs.NewRegistry()
		if _, err := registry.LoadFiles(patterns...); err != nil {
			logger.Error("Failed to load job definitions", "patterns", patterns, "error", err)
			return 1
		}
		if *listJobs {
			for _, n := range registry.List() {
				fmt.Fprintln(stdout, n)
			}
			return 0
		}
		req, err = registry.Get(*jobName)
		if err != nil {
			logger.Error("Unknown job", "job", *jobName, "available", registry.List())
			return 1
		}
	}

	// Explicit flags override the registered definition.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			req.Inputs = inputs
		case "jar":
			req.JarPaths = jars
		case "output":
			req.Output = *output
		case "script":
			req.Script = *script
		case "archive":
			req.Archive = *archive
		case "name":
			req.Name = *name
		case "pythonpath":
			req.PythonPath = *pythonPath
		case "reducers":
			req.NumReduceTasks = *reducers
		case "partitioner":
			req.PartitionerClass = *partitioner
		case "output-protocol":
			req.OutputProtocol = streaming.OutputProtocol(*outputProtocol)
		case "cleanup":
			req.Cleanup = streaming.CleanupPolicy(*cleanup)
		case "delete-output":
			req.DeleteOutput = *deleteOutput
		case "compress":
			req.Compress = streaming.CompressionOff
			if *compress {
				req.Compress = streaming.CompressionOn
			}
		case "hadoop":
			req.HadoopBinary = *hadoopBinary
		}
	})

	if err := req.Validate(); err != nil {
		logger.Error("Invalid job request", "error", err)
		return 1
	}
	if req.OutputProtocol != "" && !req.OutputProtocol.Known() {
		logger.Warn("Unknown output protocol, passing through", "output_protocol", string(req.OutputProtocol))
	}
	if req.Cleanup != "" && !req.Cleanup.Known() {
		logger.Warn("Unknown cleanup policy, passing through", "cleanup", string(req.Cleanup))
	}
	if req.PartitionerClass != "" && req.JarPaths == nil {
		logger.Warn("Partitioner is only passed to hadoop along with -jar, ignoring", "partitioner", req.PartitionerClass)
	}

	if *dryRun {
		builder := streaming.Builder{Interpreter: cfg.Streaming.Interpreter}
		fmt.Fprintln(stdout, builder.Build(req).String())
		return 0
	}

	l, closeLauncher, err := launcher.New(*cfg, logger, launcher.WithStdin(os.Stdin))
	if err != nil {
		logger.Error("Failed to create launcher", "error", err)
		return 1
	}
	defer closeLauncher()

	launchID := uuid.New()
	logger.Info("Starting launch",
		"launch_id", launchID.String(),
		"job", *jobName,
		"name", req.Name,
		"output", req.Output,
	)

	if !l.Launch(ctx, req) {
		logger.Error("Launch failed", "launch_id", launchID.String())
		return 1
	}

	logger.Info("Launch completed successfully", "launch_id", launchID.String())
	return 0
}

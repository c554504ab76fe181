// Package cli implements the plspend command line.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/preston-bernstein/pl-spend-service/internal/app/pipeline"
	"github.com/preston-bernstein/pl-spend-service/internal/config"
	"github.com/preston-bernstein/pl-spend-service/internal/logging"
	"github.com/preston-bernstein/pl-spend-service/internal/metrics"
	"github.com/preston-bernstein/pl-spend-service/internal/season"
)

// Exit codes returned by Run.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

const serviceName = "pl-spend-service"

// Version is reported in logs; set with -ldflags at build time.
var Version = "dev"

// usageError marks bad invocations so Run can exit with ExitUsage.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// env is what every command receives.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func (e *env) runner() *pipeline.Runner {
	return pipeline.New(e.cfg, e.logger, metrics.NewRecorder(), e.stdout)
}

type command struct {
	summary string
	run     func(ctx context.Context, e *env, args []string) error
}

var commands = map[string]command{
	"ingest":     {"stack workbook sheets into the stacked CSV", runIngest},
	"prepare":    {"clean the stacked CSV into the analysis-ready CSV", runPrepare},
	"regress":    {"fit the standard models and write regression outputs", runRegress},
	"wages":      {"scrape wage tables for a season range", runWages},
	"reconcile":  {"merge scraped wages into the stacked CSV", runReconcile},
	"efficiency": {"write spend-per-point rankings", runEfficiency},
	"store":      {"load club-seasons and wages into the database", runStore},
	"publish":    {"upload outputs to the artifact store", runPublish},
	"serve":      {"serve the analysis-ready dataset over HTTP", runServe},
}

// Run executes plspend with args (excluding the program name) and returns
// the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("plspend", flag.ContinueOnError)
	global.SetOutput(stderr)
	envFile := global.String("env", "", "dotenv file to load before reading the environment (default .env)")
	global.Usage = func() { printUsage(stderr, global) }

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}
	rest := global.Args()
	if len(rest) == 0 {
		printUsage(stderr, global)
		return ExitUsage
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", rest[0])
		printUsage(stderr, global)
		return ExitUsage
	}

	if err := config.LoadDotenv(*envFile); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return ExitFailure
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "error: invalid configuration:", err)
		return ExitFailure
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
		Version: Version,
		Output:  stderr,
	})

	e := &env{cfg: cfg, logger: logger, stdout: stdout, stderr: stderr}
	return exitCode(cmd.run(ctx, e, rest[1:]), stderr)
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	var ue usageError
	if errors.As(err, &ue) || errors.Is(err, season.ErrLongFormat) {
		fmt.Fprintln(stderr, "usage error:", err)
		return ExitUsage
	}
	fmt.Fprintln(stderr, "error:", err)
	return ExitFailure
}

func printUsage(w io.Writer, global *flag.FlagSet) {
	fmt.Fprintln(w, "usage: plspend [-env file] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-11s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "global flags:")
	global.PrintDefaults()
}

// parseFlags parses a subcommand's flags and rejects positional arguments.
func parseFlags(fs *flag.FlagSet, e *env, args []string) error {
	fs.SetOutput(e.stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usagef("%s: %v", fs.Name(), err)
	}
	if fs.NArg() > 0 {
		return usagef("%s: unexpected arguments: %s", fs.Name(), strings.Join(fs.Args(), " "))
	}
	return nil
}

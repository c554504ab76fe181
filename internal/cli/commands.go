package cli

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/pl-spend-service/internal/logging"
	"github.com/preston-bernstein/pl-spend-service/internal/server"
)

func runIngest(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("ingest", flag.ContinueOnError)
	workbook := fs.String("workbook", e.cfg.Paths.Workbook, "financials workbook (.xlsx)")
	out := fs.String("out", e.cfg.Paths.Stacked, "stacked CSV output")
	if err := parseFlags(fs, e, args); err != nil {
		return err
	}
	e.cfg.Paths.Workbook = *workbook
	e.cfg.Paths.Stacked = *out
	_, err := e.runner().Ingest(ctx)
	return err
}

func runPrepare(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("prepare", flag.ContinueOnError)
	in := fs.String("in", e.cfg.Paths.Stacked, "stacked CSV input")
	out := fs.String("out", e.cfg.Paths.AnalysisReady, "analysis-ready CSV output")
	if err := parseFlags(fs, e, args); err != nil {
		return err
	}
	e.cfg.Paths.Stacked = *in
	e.cfg.Paths.AnalysisReady = *out
	_, err := e.runner().Prepare(ctx)
	return err
}

func runRegress(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("regress", flag.ContinueOnError)
	in := fs.String("in", e.cfg.Paths.AnalysisReady, "analysis-ready CSV input")
	out := fs.String("out", e.cfg.Paths.Regression, "regression summary output")
	if err := parseFlags(fs, e, args); err != nil {
		return err
	}
	e.cfg.Paths.AnalysisReady = *in
	e.cfg.Paths.Regression = *out
	_, err := e.runner().Regress(ctx)
	return err
}

func runWages(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("wages", flag.ContinueOnError)
	start := fs.String("start", e.cfg.FBref.StartSeason, "first season, YYYY-YYYY")
	end := fs.String("end", e.cfg.FBref.EndSeason, "last season, YYYY-YYYY")
	provider := fs.String("provider", e.cfg.Provider, "wage provider (fbref or fixture)")
	outDir := fs.String("out", e.cfg.Paths.WagesDir, "directory for wage CSVs")
	sleep := fs.Duration("sleep", e.cfg.FBref.Sleep, "pause between season requests, 0 disables")
	if err := parseFlags(fs, e, args); err != nil {
		return err
	}
	if *sleep < 0 {
		return usagef("-sleep must not be negative, got %s", *sleep)
	}
	e.cfg.FBref.Sleep = *sleep
	e.cfg.Provider = *provider
	e.cfg.Paths.WagesDir = *outDir
	_, err := e.runner().Wages(ctx, *start, *end)
	return err
}

func runReconcile(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("reconcile", flag.ContinueOnError)
	overwrite := fs.Bool("overwrite", false, "replace wage bills that are already present")
	wagesDir := fs.String("wages", e.cfg.Paths.WagesDir, "directory of scraped wage CSVs")
	if err := parseFlags(fs, e, args); err != nil {
		return err
	}
	e.cfg.Paths.WagesDir = *wagesDir
	_, err := e.runner().Reconcile(ctx, *overwrite)
	return err
}

func runEfficiency(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("efficiency", flag.ContinueOnError)
	out := fs.String("out", e.cfg.Paths.Efficiency, "efficiency CSV output")
	if err := parseFlags(fs, e, args); err != nil {
		return err
	}
	e.cfg.Paths.Efficiency = *out
	_, err := e.runner().Efficiency(ctx)
	return err
}

func runStore(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("store", flag.ContinueOnError)
	driver := fs.String("driver", e.cfg.Database.Driver, "database driver (sqlite or postgres)")
	dsn := fs.String("dsn", e.cfg.Database.DSN, "database DSN or sqlite file")
	if err := parseFlags(fs, e, args); err != nil {
		return err
	}
	e.cfg.Database.Driver = *driver
	e.cfg.Database.DSN = *dsn
	_, err := e.runner().Store(ctx)
	return err
}

func runPublish(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("publish", flag.ContinueOnError)
	local := fs.Bool("local", false, "publish to the artifacts directory even when MinIO is configured")
	if err := parseFlags(fs, e, args); err != nil {
		return err
	}
	if *local {
		e.cfg.MinIO.Endpoint = ""
	}
	r := e.runner()
	dest, err := r.ArtifactStore(ctx)
	if err != nil {
		return err
	}
	published, err := r.Publish(ctx, dest)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Published %d artifact(s) to %s\n", len(published), dest.Location())
	return nil
}

// newServer is swapped in tests.
var newServer = server.New

func runServe(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	port := fs.String("port", e.cfg.Port, "HTTP listen port")
	storeKind := fs.String("store", e.cfg.Store, "club-season store (memory or sql)")
	data := fs.String("data", e.cfg.Paths.AnalysisReady, "analysis-ready CSV to serve")
	if err := parseFlags(fs, e, args); err != nil {
		return err
	}
	e.cfg.Port = *port
	e.cfg.Store = *storeKind
	e.cfg.Paths.AnalysisReady = *data

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := newServer(ctx, e.cfg, e.logger)
	if err != nil {
		return err
	}
	logging.Info(e.logger, "serving dataset", logging.FieldFile, e.cfg.Paths.AnalysisReady, "port", e.cfg.Port)
	srv.Run(ctx, stop)
	return nil
}

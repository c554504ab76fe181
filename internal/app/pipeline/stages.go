package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/preston-bernstein/pl-spend-service/internal/dataset"
	"github.com/preston-bernstein/pl-spend-service/internal/domain/wages"
	"github.com/preston-bernstein/pl-spend-service/internal/ingest"
	"github.com/preston-bernstein/pl-spend-service/internal/logging"
	"github.com/preston-bernstein/pl-spend-service/internal/reconcile"
	"github.com/preston-bernstein/pl-spend-service/internal/regression"
	"github.com/preston-bernstein/pl-spend-service/internal/snapshots"
)

// Ingest stacks the workbook sheets, prints the integrity report and writes
// the stacked CSV.
func (r *Runner) Ingest(ctx context.Context) (*ingest.Result, error) {
	var result *ingest.Result
	err := r.stage(ctx, StageIngest, func(ctx context.Context, logger *slog.Logger) (int, error) {
		res, err := ingest.ReadWorkbookFile(ctx, r.cfg.Paths.Workbook, logger)
		if err != nil {
			return 0, err
		}
		if err := res.Report.WriteText(r.out); err != nil {
			return 0, err
		}
		if err := dataset.WriteCSVFile(r.cfg.Paths.Stacked, res.Table); err != nil {
			return 0, err
		}
		r.printf("\nSaved %s\n", r.cfg.Paths.Stacked)
		result = res
		return res.Table.Len(), nil
	})
	return result, err
}

// Prepare normalises the stacked CSV, prints missing counts and
// correlations, and writes the analysis-ready CSV.
func (r *Runner) Prepare(ctx context.Context) (*dataset.Prepared, error) {
	var prepared *dataset.Prepared
	err := r.stage(ctx, StagePrepare, func(ctx context.Context, logger *slog.Logger) (int, error) {
		stacked, err := dataset.ReadCSVFile(r.cfg.Paths.Stacked)
		if err != nil {
			return 0, err
		}
		p := dataset.Prepare(stacked)
		r.printf("Missing values in key columns:\n")
		for _, m := range p.Missing {
			r.printf("  %-28s %d\n", m.Column, m.Missing)
		}
		if err := writeCorrelations(r.out, p.Correlations); err != nil {
			return 0, err
		}
		if err := dataset.WriteCSVFile(r.cfg.Paths.AnalysisReady, p.Table); err != nil {
			return 0, err
		}
		r.printf("\nSaved %s\n", r.cfg.Paths.AnalysisReady)
		prepared = p
		return p.Table.Len(), nil
	})
	return prepared, err
}

// Regress fits the standard models, prints their summaries and writes the
// regression output file.
func (r *Runner) Regress(ctx context.Context) ([]regression.Fitted, error) {
	var fitted []regression.Fitted
	err := r.stage(ctx, StageRegress, func(ctx context.Context, logger *slog.Logger) (int, error) {
		t, err := dataset.ReadCSVFile(r.cfg.Paths.AnalysisReady)
		if err != nil {
			return 0, err
		}
		inputs := regression.PrepareInputs(t)
		r.printf("Rows used for modelling: %d\n", inputs.Len())

		res, err := regression.RunStandard(ctx, inputs, logger)
		if err != nil {
			return 0, err
		}
		var buf bytes.Buffer
		if err := regression.WriteOutputs(&buf, res); err != nil {
			return 0, err
		}
		if err := writeFileAtomic(r.cfg.Paths.Regression, buf.Bytes()); err != nil {
			return 0, err
		}
		for _, f := range res {
			r.printf("\n=== %s ===\n%s", f.Spec.Title, f.Result.Summary())
		}
		r.printf("\nSaved %s\n", r.cfg.Paths.Regression)
		fitted = res
		return inputs.Len(), nil
	})
	return fitted, err
}

// Reconcile merges scraped wage CSVs into the stacked CSV and rewrites it.
func (r *Runner) Reconcile(ctx context.Context, overwrite bool) (reconcile.Report, error) {
	var report reconcile.Report
	err := r.stage(ctx, StageReconcile, func(ctx context.Context, logger *slog.Logger) (int, error) {
		stacked, err := dataset.ReadCSVFile(r.cfg.Paths.Stacked)
		if err != nil {
			return 0, err
		}
		all, err := snapshots.NewFSStore(r.cfg.Paths.WagesDir).LoadAll()
		if err != nil {
			return 0, err
		}
		if len(all) == 0 {
			return 0, fmt.Errorf("no wage files in %s", r.cfg.Paths.WagesDir)
		}
		var merged []wages.Row
		for _, sw := range all {
			merged = append(merged, sw.Rows...)
		}
		report = reconcile.MergeWages(stacked, merged, reconcile.Options{Overwrite: overwrite})
		for _, u := range report.UnmatchedRows {
			logging.Warn(logger, "no wage row for club", logging.FieldSeason, u.Season, "club", u.Club)
		}
		if err := dataset.WriteCSVFile(r.cfg.Paths.Stacked, stacked); err != nil {
			return 0, err
		}
		r.printf("Matched: %d  Filled: %d  Unmatched rows: %d  Unmatched wages: %d  Duplicate wages: %d\n",
			len(report.Matched), report.Filled, len(report.UnmatchedRows), len(report.UnmatchedWages), len(report.DuplicateWages))
		return report.Filled, nil
	})
	return report, err
}

// Efficiency computes and ranks spend-per-point metrics and writes them.
func (r *Runner) Efficiency(ctx context.Context) ([]dataset.Efficiency, error) {
	var ranked []dataset.Efficiency
	err := r.stage(ctx, StageEfficiency, func(ctx context.Context, logger *slog.Logger) (int, error) {
		t, err := dataset.ReadCSVFile(r.cfg.Paths.AnalysisReady)
		if err != nil {
			return 0, err
		}
		ranked = dataset.RankEfficiency(dataset.ComputeEfficiency(dataset.ClubSeasons(t)))
		if err := dataset.WriteCSVFile(r.cfg.Paths.Efficiency, dataset.EfficiencyTable(ranked)); err != nil {
			return 0, err
		}
		r.printf("Saved %s (%d club-seasons)\n", r.cfg.Paths.Efficiency, len(ranked))
		return len(ranked), nil
	})
	return ranked, err
}

func writeCorrelations(w io.Writer, c dataset.Correlations) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	sections := []struct {
		title string
		rows  []dataset.Correlation
	}{
		{"\nCorrelation with points_total:", c.Points},
		{"\nCorrelation with league_position (lower is better):", c.Position},
	}
	for _, sec := range sections {
		fmt.Fprintln(tw, sec.title)
		for _, row := range sec.rows {
			if !row.Valid {
				fmt.Fprintf(tw, "  %s\tNaN\tn=%d\n", row.Column, row.N)
				continue
			}
			fmt.Fprintf(tw, "  %s\t%.6f\tn=%d\n", row.Column, row.R, row.N)
		}
	}
	return tw.Flush()
}

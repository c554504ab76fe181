// Package ingest stacks the per-season sheets of the financials workbook into
// a single club-season table.
package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/preston-bernstein/pl-spend-service/internal/dataset"
	"github.com/preston-bernstein/pl-spend-service/internal/domain/clubs"
	"github.com/preston-bernstein/pl-spend-service/internal/logging"
	"github.com/preston-bernstein/pl-spend-service/internal/season"
)

// Result is the stacked table and its integrity report.
type Result struct {
	Table  *dataset.Table
	Report Report
}

// ReadWorkbookFile opens an .xlsx file and stacks its sheets.
func ReadWorkbookFile(ctx context.Context, path string, logger *slog.Logger) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()
	return stack(ctx, f, logger)
}

// ReadWorkbook stacks the sheets of a workbook read from r.
func ReadWorkbook(ctx context.Context, r io.Reader, logger *slog.Logger) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return stack(ctx, f, logger)
}

func stack(ctx context.Context, f *excelize.File, logger *slog.Logger) (*Result, error) {
	logger = logging.FromContext(ctx, logger)
	out := dataset.NewTable()

	for _, sheet := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		added := appendSheet(out, sheet, rows)
		logging.Info(logger, "sheet stacked",
			slog.String("sheet", sheet),
			slog.String(logging.FieldSeason, season.Normalize(sheet)),
			slog.Int(logging.FieldCount, added),
		)
	}

	return &Result{Table: out, Report: BuildReport(out)}, nil
}

// appendSheet normalises one sheet's header, forces the season from the sheet
// name and appends its non-blank rows. It returns the number of rows added.
func appendSheet(out *dataset.Table, sheet string, rows [][]string) int {
	if len(rows) == 0 {
		return 0
	}
	header := NormalizeHeader(rows[0])
	seasonLabel := season.Normalize(sheet)

	added := 0
	for _, raw := range rows[1:] {
		if blank(raw) {
			continue
		}
		values := make(map[string]string, len(header)+1)
		for i, col := range header {
			if i < len(raw) {
				values[col] = raw[i]
			} else {
				values[col] = ""
			}
		}
		values[clubs.ColSeason] = seasonLabel
		appendOrdered(out, header, values)
		added++
	}
	return added
}

// appendOrdered keeps first-seen column order across sheets.
func appendOrdered(out *dataset.Table, header []string, values map[string]string) {
	for _, col := range header {
		out.EnsureColumn(col)
	}
	out.EnsureColumn(clubs.ColSeason)
	out.Append(values)
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Package xlsx exports report bundles as Excel workbooks for analysts who
// consume the daily table outside the report pipeline.
package xlsx

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sragwatch/srag-data-etl/internal/domain"
)

const (
	dailySheet = "Daily"
	ratesSheet = "Rates"
)

var dailyHeader = []string{"Date", "Cases", "Deaths", "ICU", "Vaccinated"}

var ratesHeader = []string{"Metric", "Window (days)", "Value (%)"}

// Exporter writes report bundles to a two-sheet xlsx workbook.
// It implements pipeline.Publisher.
type Exporter struct {
	path   string
	logger *slog.Logger
}

// NewExporter creates an exporter targeting the given file path. The file is
// overwritten on every run.
func NewExporter(path string, logger *slog.Logger) *Exporter {
	return &Exporter{path: path, logger: logger}
}

func (e *Exporter) Name() string { return "xlsx" }

// PublishReport renders the bundle's daily table and rate set into the
// workbook and saves it.
func (e *Exporter) PublishReport(_ context.Context, bundle domain.ReportBundle) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := e.writeDailySheet(f, bundle, headerStyle); err != nil {
		return err
	}
	if err := e.writeRatesSheet(f, bundle, headerStyle); err != nil {
		return err
	}

	// Drop the default sheet so the workbook opens on the daily table.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	if err := f.SaveAs(e.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	e.logger.Info("workbook written", "path", e.path, "days", len(bundle.Daily))
	return nil
}

func (e *Exporter) writeDailySheet(f *excelize.File, bundle domain.ReportBundle, headerStyle int) error {
	if _, err := f.NewSheet(dailySheet); err != nil {
		return fmt.Errorf("create %s sheet: %w", dailySheet, err)
	}
	if err := writeRow(f, dailySheet, 1, toAny(dailyHeader)); err != nil {
		return err
	}
	if err := styleHeader(f, dailySheet, len(dailyHeader), headerStyle); err != nil {
		return err
	}

	for i, d := range bundle.Daily {
		row := []any{
			d.Date.Format(time.DateOnly),
			d.CaseCount,
			d.DeathCount,
			d.ICUCount,
			d.VaccinatedCount,
		}
		if err := writeRow(f, dailySheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeRatesSheet(f *excelize.File, bundle domain.ReportBundle, headerStyle int) error {
	if _, err := f.NewSheet(ratesSheet); err != nil {
		return fmt.Errorf("create %s sheet: %w", ratesSheet, err)
	}
	if err := writeRow(f, ratesSheet, 1, toAny(ratesHeader)); err != nil {
		return err
	}
	if err := styleHeader(f, ratesSheet, len(ratesHeader), headerStyle); err != nil {
		return err
	}

	names := make([]string, 0, len(bundle.Rates))
	for name := range bundle.Rates {
		names = append(names, name)
	}
	// Stable output regardless of map order.
	sort.Strings(names)

	for i, name := range names {
		rate := bundle.Rates[name]
		value := any("undefined")
		if !rate.Undefined {
			value = rate.Value
		}
		if err := writeRow(f, ratesSheet, i+2, []any{name, rate.PeriodDays, value}); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func styleHeader(f *excelize.File, sheet string, cols, style int) error {
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// Command validate loads a snapshot, re-runs the whole aggregation, and
// checks the data-integrity properties the pipeline relies on: row
// conservation, daily table ordering and uniqueness, chart grid continuity,
// and the partial-month flag. It prints every computed rate so a snapshot
// can be eyeballed before it feeds the report pipeline.
//
// Usage:
//
//	go run ./cmd/validate -snapshot data/mock/srag_snapshot.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sragwatch/srag-data-etl/internal/adapter/snapshot"
	"github.com/sragwatch/srag-data-etl/internal/config"
	"github.com/sragwatch/srag-data-etl/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	snapshotPath := flag.String("snapshot", "", "path to the SRAG snapshot CSV")
	separator := flag.String("sep", ";", "snapshot field separator")
	flag.Parse()

	if *snapshotPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*snapshotPath, *separator); code != 0 {
		os.Exit(code)
	}
}

func run(snapshotPath, separator string) int {
	fmt.Println("=== SRAG Snapshot Validation ===")
	fmt.Println()

	cfg := &config.Config{SnapshotPath: snapshotPath, CSVSeparator: rune(separator[0])}
	reader := snapshot.NewReader(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rows, err := reader.ExtractRows(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: extract snapshot: %v\n", err)
		return 1
	}

	var cases []domain.CaseRecord
	malformed := 0
	for _, row := range rows {
		rec, err := domain.ParseCaseRow(row)
		if err != nil {
			malformed++
			continue
		}
		cases = append(cases, rec)
	}
	fmt.Printf("rows: %d  parsed: %d  malformed: %d\n\n", len(rows), len(cases), malformed)

	windows := domain.DefaultReportWindows()
	daily := domain.AggregateDaily(cases, windows.VaccLabel)

	phases := []*phase{
		checkConservation(cases, daily),
		checkDailyTable(daily),
		checkCharts(daily, windows),
	}

	failed := false
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS  %s\n", p.name)
			continue
		}
		failed = true
		fmt.Printf("FAIL  %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("      - %s\n", e)
		}
	}

	fmt.Println()
	printRates(daily, windows)

	if failed {
		return 1
	}
	return 0
}

// checkConservation verifies no case is lost or double-counted and that the
// subtype counts never exceed the case count.
func checkConservation(cases []domain.CaseRecord, daily []domain.DailyRecord) *phase {
	p := &phase{name: "conservation"}

	total := 0
	for _, d := range daily {
		total += d.CaseCount
		if d.DeathCount > d.CaseCount {
			p.errorf("%s: %d deaths exceed %d cases", d.Date.Format("2006-01-02"), d.DeathCount, d.CaseCount)
		}
		if d.ICUCount > d.CaseCount {
			p.errorf("%s: %d ICU admissions exceed %d cases", d.Date.Format("2006-01-02"), d.ICUCount, d.CaseCount)
		}
		if d.VaccinatedCount > d.CaseCount {
			p.errorf("%s: %d vaccinated exceed %d cases", d.Date.Format("2006-01-02"), d.VaccinatedCount, d.CaseCount)
		}
	}
	if total != len(cases) {
		p.errorf("daily case counts sum to %d, want %d", total, len(cases))
	}
	return p
}

// checkDailyTable verifies strict ascending date order with no duplicates.
func checkDailyTable(daily []domain.DailyRecord) *phase {
	p := &phase{name: "daily table"}
	for i := 1; i < len(daily); i++ {
		if !daily[i-1].Date.Before(daily[i].Date) {
			p.errorf("dates out of order at index %d: %s then %s",
				i, daily[i-1].Date.Format("2006-01-02"), daily[i].Date.Format("2006-01-02"))
		}
	}
	return p
}

// checkCharts verifies the daily grid is continuous and the partial flag
// sits only on the final monthly bucket.
func checkCharts(daily []domain.DailyRecord, windows domain.ReportWindows) *phase {
	p := &phase{name: "chart series"}
	if len(daily) == 0 {
		p.errorf("empty daily table")
		return p
	}

	points, err := domain.DailySeries(daily, windows.ChartDaily)
	if err != nil {
		p.errorf("daily series: %v", err)
	} else {
		if len(points) != windows.ChartDaily {
			p.errorf("daily series has %d points, want %d", len(points), windows.ChartDaily)
		}
		for i := 1; i < len(points); i++ {
			if !points[i].Date.Equal(points[i-1].Date.AddDate(0, 0, 1)) {
				p.errorf("daily grid gap between %s and %s",
					points[i-1].Date.Format("2006-01-02"), points[i].Date.Format("2006-01-02"))
			}
		}
	}

	buckets, err := domain.MonthlySeries(daily, windows.ChartMonthly)
	if err != nil {
		p.errorf("monthly series: %v", err)
		return p
	}
	for i, b := range buckets {
		if b.Partial && i != len(buckets)-1 {
			p.errorf("bucket %s marked partial but is not the final month", b.Label())
		}
	}
	return p
}

func printRates(daily []domain.DailyRecord, windows domain.ReportWindows) {
	bundle, err := domain.BuildReport(daily, windows)
	if err != nil {
		fmt.Printf("rates unavailable: %v\n", err)
		return
	}
	fmt.Printf("max date: %s\n", bundle.MaxDate.Format("2006-01-02"))
	for _, name := range []string{
		fmt.Sprintf("case_var_%d", windows.CaseVarShort),
		fmt.Sprintf("case_var_%d", windows.CaseVarLong),
		"death_rate", "icu_rate", "vacc_rate",
	} {
		fmt.Printf("  %s\n", bundle.Rates[name])
	}
}

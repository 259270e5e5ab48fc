package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/sragwatch/srag-data-etl/internal/domain"
	"github.com/sragwatch/srag-data-etl/internal/observability"
)

// Extractor reads every raw case row of the configured snapshot.
type Extractor interface {
	ExtractRows(ctx context.Context) ([]domain.RawCaseRow, error)
}

// Publisher delivers a finished report bundle to one destination.
type Publisher interface {
	Name() string
	PublishReport(ctx context.Context, bundle domain.ReportBundle) error
}

// Pipeline orchestrates one report run: extract the snapshot, parse rows to
// cases, aggregate the daily table, compute rates and chart series, and fan
// the bundle out to every publisher.
type Pipeline struct {
	extractor  Extractor
	publishers []Publisher
	windows    domain.ReportWindows
	logger     *slog.Logger
	metrics    *observability.Metrics
	ready      atomic.Bool
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, pubs []Publisher, windows domain.ReportWindows, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor:  e,
		publishers: pubs,
		windows:    windows,
		logger:     logger,
		metrics:    metrics,
	}
}

// CheckReadiness returns nil once at least one report run has completed
// successfully.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no report has been generated yet")
	}
	return nil
}

// RunOnce executes a single extract-aggregate-publish cycle and returns the
// bundle it produced. An empty or fully malformed snapshot fails the run
// with domain.ErrEmptySeries in the chain.
func (p *Pipeline) RunOnce(ctx context.Context) (domain.ReportBundle, error) {
	start := time.Now()
	p.metrics.RunsTotal.Inc()
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	bundle, err := p.runOnce(ctx)
	if err != nil {
		p.metrics.RunFailures.Inc()
		p.logger.Error("report run failed", "error", err)
		return domain.ReportBundle{}, err
	}

	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	p.logger.Info("report run complete",
		"max_date", bundle.MaxDate.Format(time.DateOnly),
		"days", len(bundle.Daily),
		"duration", time.Since(start),
	)
	return bundle, nil
}

func (p *Pipeline) runOnce(ctx context.Context) (domain.ReportBundle, error) {
	rows, err := p.extractor.ExtractRows(ctx)
	if err != nil {
		return domain.ReportBundle{}, fmt.Errorf("extract snapshot: %w", err)
	}
	p.metrics.RowsExtracted.Add(float64(len(rows)))

	cases := p.parseRows(rows)
	p.metrics.SnapshotCases.Set(float64(len(cases)))
	if len(cases) == 0 {
		return domain.ReportBundle{}, fmt.Errorf("no usable case rows in snapshot: %w", domain.ErrEmptySeries)
	}

	daily := domain.AggregateDaily(cases, p.windows.VaccLabel)

	bundle, err := domain.BuildReport(daily, p.windows)
	if err != nil {
		return domain.ReportBundle{}, fmt.Errorf("build report: %w", err)
	}

	if err := p.publish(ctx, bundle); err != nil {
		return domain.ReportBundle{}, err
	}
	return bundle, nil
}

// publish fans the bundle out to every publisher. All publishers are
// attempted even when an earlier one fails; the errors are joined.
func (p *Pipeline) publish(ctx context.Context, bundle domain.ReportBundle) error {
	var errs []error
	for _, pub := range p.publishers {
		if err := pub.PublishReport(ctx, bundle); err != nil {
			errs = append(errs, fmt.Errorf("publish %s: %w", pub.Name(), err))
			continue
		}
		p.metrics.ReportsPublished.WithLabelValues(pub.Name()).Inc()
		p.logger.Info("report published", "publisher", pub.Name())
	}
	return errors.Join(errs...)
}

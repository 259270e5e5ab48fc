package scheduler

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sragwatch/srag-data-etl/internal/domain"
)

type countingRunner struct {
	runs atomic.Int64
}

func (r *countingRunner) RunOnce(context.Context) (domain.ReportBundle, error) {
	r.runs.Add(1)
	return domain.ReportBundle{}, nil
}

func TestScheduler_InvalidSpec(t *testing.T) {
	s := New(&countingRunner{}, slog.Default(), "not a cron spec")
	require.Error(t, s.Start())
}

func TestScheduler_StartStop(t *testing.T) {
	runner := &countingRunner{}
	s := New(runner, slog.Default(), "@every 10ms")
	require.NoError(t, s.Start())

	assert.Eventually(t, func() bool {
		return runner.runs.Load() >= 1
	}, 2*time.Second, 5*time.Millisecond)

	s.Stop()
	after := runner.runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, runner.runs.Load(), "no runs after Stop")
}

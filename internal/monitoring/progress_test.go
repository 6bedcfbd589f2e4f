package monitoring

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/obelisk/internal/montecarlo"
	"github.com/mitchelldurbincs/obelisk/internal/testutil"
)

type fakeSource struct {
	trials atomic.Int64
}

func (f *fakeSource) Metrics() montecarlo.RunMetrics {
	return montecarlo.RunMetrics{Trials: f.trials.Load(), Rounds: 2 * f.trials.Load(), Duration: time.Second}
}

func TestProgressMonitor_SamplesPeriodically(t *testing.T) {
	src := &fakeSource{}
	pm := NewProgressMonitor(src, 5*time.Millisecond, testutil.NopLogger())

	pm.Start()
	pm.Start()
	src.trials.Store(40)

	require.Eventually(t, func() bool {
		return pm.GetSummary().Trials == 40
	}, time.Second, 5*time.Millisecond)

	src.trials.Store(50)
	pm.Stop()
	pm.Stop()

	s := pm.GetSummary()
	assert.Equal(t, int64(50), s.Trials, "Stop takes a final sample")
	assert.Equal(t, int64(100), s.Rounds)
	assert.Equal(t, 50.0, s.TrialsPerSecond)
	assert.GreaterOrEqual(t, s.Checks, 2)
	assert.GreaterOrEqual(t, s.PeakGoroutines, s.Baseline)
}

func TestProgressMonitor_StopWithoutStart(t *testing.T) {
	src := &fakeSource{}
	src.trials.Store(3)
	pm := NewProgressMonitor(src, 0, testutil.NopLogger())

	pm.Stop()

	assert.Equal(t, 1, pm.GetSummary().Checks)
	assert.Equal(t, int64(3), pm.GetSummary().Trials)
}

func TestProgressMonitor_WithEvaluator(t *testing.T) {
	e := montecarlo.NewEvaluator(nil, nil, montecarlo.WithMetrics(montecarlo.NewMetricsCollector()))
	pm := NewProgressMonitor(e, time.Hour, testutil.NopLogger())

	pm.Start()
	pm.Stop()

	assert.Zero(t, pm.GetSummary().Trials)
}

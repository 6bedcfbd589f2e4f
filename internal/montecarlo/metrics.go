package montecarlo

import (
	"sync/atomic"
	"time"
)

// RunMetrics is a snapshot of the work done by an evaluator.
type RunMetrics struct {
	StartTime  time.Time
	Duration   time.Duration
	Trials     int64
	Rounds     int64
	Candidates int64
	Targets    int64
}

// TrialsPerSecond returns the trial throughput of the run so far.
func (m RunMetrics) TrialsPerSecond() float64 {
	if m.Duration <= 0 {
		return 0
	}
	return float64(m.Trials) / m.Duration.Seconds()
}

// MetricsCollector counts evaluator work. Implementations must be safe for
// concurrent use.
type MetricsCollector interface {
	Start()
	AddTrial(rounds int)
	AddCandidate()
	AddTarget()
	Snapshot() RunMetrics
}

type metricsCollector struct {
	startTime  atomic.Int64
	trials     atomic.Int64
	rounds     atomic.Int64
	candidates atomic.Int64
	targets    atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

// Start records the start time. Only the first call has an effect.
func (m *metricsCollector) Start() {
	m.startTime.CompareAndSwap(0, time.Now().UnixNano())
}

func (m *metricsCollector) AddTrial(rounds int) {
	m.trials.Add(1)
	m.rounds.Add(int64(rounds))
}

func (m *metricsCollector) AddCandidate() {
	m.candidates.Add(1)
}

func (m *metricsCollector) AddTarget() {
	m.targets.Add(1)
}

func (m *metricsCollector) Snapshot() RunMetrics {
	out := RunMetrics{
		Trials:     m.trials.Load(),
		Rounds:     m.rounds.Load(),
		Candidates: m.candidates.Load(),
		Targets:    m.targets.Load(),
	}
	if start := m.startTime.Load(); start != 0 {
		out.StartTime = time.Unix(0, start)
		out.Duration = time.Since(out.StartTime)
	}
	return out
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return noMetricsCollector{}
}

func (noMetricsCollector) Start()               {}
func (noMetricsCollector) AddTrial(int)         {}
func (noMetricsCollector) AddCandidate()        {}
func (noMetricsCollector) AddTarget()           {}
func (noMetricsCollector) Snapshot() RunMetrics { return RunMetrics{} }

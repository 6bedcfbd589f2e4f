package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/obelisk/internal/montecarlo"
)

// MetricsSource is anything that can report evaluator metrics, usually a *montecarlo.Evaluator.
type MetricsSource interface {
	Metrics() montecarlo.RunMetrics
}

// ProgressMonitor periodically logs evaluator throughput and goroutine usage
type ProgressMonitor struct {
	mu            sync.RWMutex
	source        MetricsSource
	logger        zerolog.Logger
	checkInterval time.Duration
	baseline      int
	peak          int
	last          montecarlo.RunMetrics
	checks        int
	stopChan      chan struct{}
	doneChan      chan struct{}
	startOnce     sync.Once
	stopOnce      sync.Once
}

// NewProgressMonitor creates a monitor that samples source every interval
func NewProgressMonitor(source MetricsSource, interval time.Duration, logger zerolog.Logger) *ProgressMonitor {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	baseline := runtime.NumGoroutine()
	return &ProgressMonitor{
		source:        source,
		logger:        logger.With().Str("component", "ProgressMonitor").Logger(),
		checkInterval: interval,
		baseline:      baseline,
		peak:          baseline,
		stopChan:      make(chan struct{}),
		doneChan:      make(chan struct{}),
	}
}

// Start begins monitoring. Calling it more than once has no effect.
func (pm *ProgressMonitor) Start() {
	pm.startOnce.Do(func() {
		go pm.monitor()
		pm.logger.Info().
			Int("baseline_goroutines", pm.baseline).
			Dur("interval", pm.checkInterval).
			Msg("Started progress monitoring")
	})
}

// Stop stops the monitor, takes a final sample and waits for the loop to exit
func (pm *ProgressMonitor) Stop() {
	pm.stopOnce.Do(func() {
		close(pm.stopChan)
		pm.startOnce.Do(func() { close(pm.doneChan) })
		<-pm.doneChan
		pm.check()
	})
}

// monitor is the main monitoring loop
func (pm *ProgressMonitor) monitor() {
	defer close(pm.doneChan)
	defer func() {
		if r := recover(); r != nil {
			pm.logger.Error().
				Interface("panic", r).
				Msg("Progress monitor panicked - stopping")
		}
	}()

	ticker := time.NewTicker(pm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pm.check()
		case <-pm.stopChan:
			return
		}
	}
}

// check samples the source and the goroutine count
func (pm *ProgressMonitor) check() {
	m := pm.source.Metrics()
	current := runtime.NumGoroutine()

	pm.mu.Lock()
	if current > pm.peak {
		pm.peak = current
	}
	delta := m.Trials - pm.last.Trials
	pm.last = m
	pm.checks++
	peak := pm.peak
	pm.mu.Unlock()

	pm.logger.Info().
		Int64("trials", m.Trials).
		Int64("new_trials", delta).
		Int64("candidates", m.Candidates).
		Int64("targets", m.Targets).
		Float64("trials_per_sec", m.TrialsPerSecond()).
		Int("goroutines", current).
		Int("peak_goroutines", peak).
		Msg("Evaluation progress")
}

// GetSummary returns what the monitor has observed so far
func (pm *ProgressMonitor) GetSummary() ProgressSummary {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	return ProgressSummary{
		Checks:          pm.checks,
		Trials:          pm.last.Trials,
		Rounds:          pm.last.Rounds,
		TrialsPerSecond: pm.last.TrialsPerSecond(),
		Baseline:        pm.baseline,
		PeakGoroutines:  pm.peak,
	}
}

// ProgressSummary contains the monitor's latest observations
type ProgressSummary struct {
	Checks          int     `json:"checks"`
	Trials          int64   `json:"trials"`
	Rounds          int64   `json:"rounds"`
	TrialsPerSecond float64 `json:"trials_per_second"`
	Baseline        int     `json:"baseline_goroutines"`
	PeakGoroutines  int     `json:"peak_goroutines"`
}

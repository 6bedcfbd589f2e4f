package montecarlo

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/mitchelldurbincs/obelisk/internal/common"
	"github.com/mitchelldurbincs/obelisk/internal/config"
	"github.com/mitchelldurbincs/obelisk/internal/game/core"
	"github.com/mitchelldurbincs/obelisk/internal/policy"
)

const (
	DefaultSamples     = 1000
	DefaultMaxRounds   = 46
	DefaultRoundOffset = 4
)

// Evaluator estimates the expected loss of actions by playing rollouts with a policy.
// An Evaluator is safe for concurrent use once constructed.
type Evaluator struct {
	policy policy.Policy
	loss   policy.Loss

	samples       int
	maxRounds     int
	roundOffset   int
	trialWorkers  int
	playerWorkers int
	seed          uint64
	pinScope      PinScope

	runID   string
	logger  zerolog.Logger
	metrics MetricsCollector
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithSamples sets the number of trials per candidate action.
func WithSamples(n int) Option {
	return func(e *Evaluator) { e.samples = n }
}

// WithMaxRounds sets the rollout round budget, counting the round-0 advance.
func WithMaxRounds(n int) Option {
	return func(e *Evaluator) { e.maxRounds = n }
}

// WithRoundOffset sets the value added to the rollout round before it is handed to the policy.
func WithRoundOffset(n int) Option {
	return func(e *Evaluator) { e.roundOffset = n }
}

// WithTrialWorkers splits the trials of one estimate across n goroutines.
func WithTrialWorkers(n int) Option {
	return func(e *Evaluator) { e.trialWorkers = n }
}

// WithPlayerWorkers bounds how many targets EvaluateAll decides at once. 0 means one per CPU.
func WithPlayerWorkers(n int) Option {
	return func(e *Evaluator) { e.playerWorkers = n }
}

// WithSeed fixes the base seed. 0 draws a random one.
func WithSeed(seed uint64) Option {
	return func(e *Evaluator) { e.seed = seed }
}

func WithPinScope(scope PinScope) Option {
	return func(e *Evaluator) { e.pinScope = scope }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Evaluator) { e.logger = logger }
}

func WithMetrics(m MetricsCollector) Option {
	return func(e *Evaluator) { e.metrics = m }
}

// NewEvaluator creates an evaluator that plays rollouts with pol and scores them with loss.
func NewEvaluator(pol policy.Policy, loss policy.Loss, opts ...Option) *Evaluator {
	e := &Evaluator{
		policy:       pol,
		loss:         loss,
		samples:      DefaultSamples,
		maxRounds:    DefaultMaxRounds,
		roundOffset:  DefaultRoundOffset,
		trialWorkers: 1,
		logger:       zerolog.Nop(),
		metrics:      NewNoMetricsCollector(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.seed == 0 {
		e.seed = frand.Uint64n(math.MaxUint64) + 1
	}
	e.trialWorkers = max(e.trialWorkers, 1)
	e.runID = uuid.NewString()
	e.logger = e.logger.With().
		Str("component", "Evaluator").
		Str("run_id", e.runID).
		Logger()
	return e
}

// NewEvaluatorFromConfig builds the evaluator described by the montecarlo section.
func NewEvaluatorFromConfig(cfg config.MonteCarloConfig, pol policy.Policy, loss policy.Loss, opts ...Option) (*Evaluator, error) {
	scope, err := ParsePinScope(cfg.PinScope)
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithSamples(cfg.Samples),
		WithMaxRounds(cfg.MaxRounds),
		WithRoundOffset(cfg.RoundOffset),
		WithTrialWorkers(cfg.TrialWorkers),
		WithPlayerWorkers(cfg.PlayerWorkers),
		WithSeed(cfg.Seed),
		WithPinScope(scope),
	}
	return NewEvaluator(pol, loss, append(base, opts...)...), nil
}

// AtRound returns a copy of the evaluator for a table reached after round rounds.
// Rollout round r is handed to the policy as round+r. The copy shares the run ID,
// seed and metrics of e.
func (e *Evaluator) AtRound(round int) *Evaluator {
	c := *e
	c.roundOffset = round
	c.logger = e.logger.With().Int("round", round).Logger()
	return &c
}

func (e *Evaluator) RoundOffset() int { return e.roundOffset }

func (e *Evaluator) RunID() string { return e.runID }

func (e *Evaluator) Seed() uint64 { return e.seed }

func (e *Evaluator) Samples() int { return e.samples }

func (e *Evaluator) Metrics() RunMetrics { return e.metrics.Snapshot() }

func (e *Evaluator) validate(players []core.Player, target int, constraints Constraints) error {
	if e.samples < 1 {
		return fmt.Errorf("%d samples: %w", e.samples, ErrNoSamples)
	}
	if !common.IsValidIndex(target, len(players)) {
		return fmt.Errorf("target %d among %d players: %w", target, len(players), ErrInvalidTarget)
	}
	return constraints.Validate(players)
}

// MonteCarlo estimates the loss of target when every player acts by the policy, after
// constraints have overwritten the round-0 actions.
//
// players is never modified. Trials are seeded from the evaluator seed, the target and
// the trial number only, so two calls for the same target share their random streams.
func (e *Evaluator) MonteCarlo(ctx context.Context, players []core.Player, target int, constraints Constraints) (Estimate, error) {
	if err := e.validate(players, target, constraints); err != nil {
		return Estimate{}, err
	}
	return e.monteCarlo(ctx, players, target, constraints)
}

func (e *Evaluator) monteCarlo(ctx context.Context, players []core.Player, target int, constraints Constraints) (Estimate, error) {
	e.metrics.Start()

	workers := min(e.trialWorkers, e.samples)
	var (
		mu       sync.Mutex
		partials = make([]partial, 0, workers)
	)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			p, err := e.runTrials(ctx, players, target, constraints, w, workers)
			if err != nil {
				return err
			}
			mu.Lock()
			partials = append(partials, p)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Estimate{}, err
	}

	// Reduce in worker order so the floating point sum does not depend on scheduling.
	slices.SortFunc(partials, func(a, b partial) int { return a.worker - b.worker })
	var sum, sumSq float64
	var n int
	for _, p := range partials {
		sum += p.sum
		sumSq += p.sumSq
		n += p.n
	}

	mean, variance := common.MeanVariance(sum, sumSq, n)
	return Estimate{Mean: mean, Variance: variance, Samples: n}, nil
}

// runTrials plays trials worker, worker+stride, ... and accumulates their losses.
func (e *Evaluator) runTrials(ctx context.Context, players []core.Player, target int, constraints Constraints, worker, stride int) (partial, error) {
	out := partial{worker: worker}

	var pins Constraints
	if e.pinScope == PinEveryRound {
		pins = constraints
	}

	src := rand.NewSource(0)
	rng := rand.New(src)
	state := make([]core.Player, len(players))
	round0 := make([]core.Action, len(players))

	for trial := worker; trial < e.samples; trial += stride {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		src.Seed(common.DeriveSeed(e.seed, uint64(target), uint64(trial)))
		copy(state, players)
		for i := range state {
			round0[i] = e.policy.ChooseAction(state, i, e.roundOffset, nil, rng)
		}
		constraints.Apply(round0)

		final, rounds := simulate(state, round0, e.policy, rng, e.maxRounds, e.roundOffset, pins)
		loss := e.loss.Loss(final, target)

		out.sum += loss
		out.sumSq += loss * loss
		out.n++
		e.metrics.AddTrial(rounds)
	}
	return out, nil
}

// BestAction estimates every action target can take and returns the one with the lowest
// mean loss, with all candidates in enumeration order. Ties go to the first candidate.
func (e *Evaluator) BestAction(ctx context.Context, players []core.Player, target int, constraints Constraints) (core.Action, []Candidate, error) {
	if err := e.validate(players, target, constraints); err != nil {
		return core.None(), nil, err
	}
	e.metrics.AddTarget()

	pinned := make(Constraints, len(constraints), len(constraints)+1)
	copy(pinned, constraints)
	pinned = append(pinned, Constraint{Player: target, Action: core.None()})
	slot := &pinned[len(pinned)-1]

	logger := e.logger.With().Int("target", target).Logger()
	actions := core.PossibleActionsFor(players, target)
	candidates := make([]Candidate, 0, len(actions))
	best := -1

	for _, a := range actions {
		if a.IsNone() {
			candidates = append(candidates, Candidate{Action: a, Estimate: Estimate{Mean: math.Inf(1)}})
			continue
		}

		slot.Action = a
		est, err := e.monteCarlo(ctx, players, target, pinned)
		if err != nil {
			return core.None(), nil, fmt.Errorf("target %d: %s: %w", target, a, err)
		}
		e.metrics.AddCandidate()
		logger.Debug().
			Str("action", a.String()).
			Float64("mean", est.Mean).
			Float64("variance", est.Variance).
			Msg("Candidate evaluated")

		candidates = append(candidates, Candidate{Action: a, Estimate: est})
		if !math.IsNaN(est.Mean) && (best < 0 || est.Mean < candidates[best].Mean) {
			best = len(candidates) - 1
		}
	}

	if best < 0 {
		return core.None(), candidates, nil
	}
	chosen := candidates[best]
	logger.Info().
		Str("action", chosen.Action.String()).
		Str("estimate", chosen.Estimate.String()).
		Int("candidates", len(candidates)).
		Msg("Best action chosen")
	return chosen.Action, candidates, nil
}

// Result is the decision for one player.
type Result struct {
	Player     int
	Best       core.Action
	Candidates []Candidate
}

// EvaluateAll runs BestAction for every target concurrently and returns the results
// sorted by player. A nil targets means every player.
func (e *Evaluator) EvaluateAll(ctx context.Context, players []core.Player, targets []int, constraints Constraints) ([]Result, error) {
	if targets == nil {
		targets = make([]int, len(players))
		for i := range targets {
			targets[i] = i
		}
	}
	for _, t := range targets {
		if err := e.validate(players, t, constraints); err != nil {
			return nil, err
		}
	}

	limit := e.playerWorkers
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	var (
		mu      sync.Mutex
		results = make([]Result, 0, len(targets))
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, t := range targets {
		g.Go(func() error {
			best, candidates, err := e.BestAction(ctx, players, t, constraints)
			if err != nil {
				return err
			}
			mu.Lock()
			results = append(results, Result{Player: t, Best: best, Candidates: candidates})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(results, func(a, b Result) int { return a.Player - b.Player })
	return results, nil
}

package main

import (
	"context"
	"flag"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"

	"github.com/mitchelldurbincs/obelisk/internal/config"
	"github.com/mitchelldurbincs/obelisk/internal/game"
	"github.com/mitchelldurbincs/obelisk/internal/game/core"
	"github.com/mitchelldurbincs/obelisk/internal/game/tablegen"
	"github.com/mitchelldurbincs/obelisk/internal/monitoring"
	"github.com/mitchelldurbincs/obelisk/internal/montecarlo"
	"github.com/mitchelldurbincs/obelisk/internal/policy"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", os.Getenv("APP_ENV"), "Environment overlay to load (config.<env>.yaml)")
	samples := flag.Int("samples", -1, "Trials per candidate action (-1 to use config default)")
	seed := flag.Uint64("seed", 0, "Base seed (0 to use config default)")
	topN := flag.Int("top", -1, "Candidates listed per player (-1 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	yamlOut := flag.String("yaml", "", "Also write the report as YAML to this file")
	dumpScenario := flag.String("dump-scenario", "", "Write the evaluated scenario as YAML to this file")
	watch := flag.Bool("watch", false, "Re-run the evaluation whenever the config file changes")
	warmup := flag.Int("random-table", 0, "Evaluate the table reached after up to this many random rounds from the configured one")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}

	// Flags override the config file
	if *samples != -1 {
		config.Set("montecarlo.samples", *samples)
	}
	if *seed != 0 {
		config.Set("montecarlo.seed", *seed)
	}
	if *topN != -1 {
		config.Set("montecarlo.top_n", *topN)
	}
	if *logLevel != "" {
		config.Set("logging.level", *logLevel)
	}

	cfg := config.Get()
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	setupLogging(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := outputs{yaml: *yamlOut, scenario: *dumpScenario, warmup: *warmup}
	if err := run(ctx, cfg, out); err != nil {
		log.Fatal().Err(err).Msg("Evaluation failed")
	}
	if !*watch {
		return
	}

	changes := make(chan struct{}, 1)
	config.WatchConfig(func(err error) {
		if err != nil {
			log.Error().Err(err).Msg("Ignoring invalid config change")
			return
		}
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	log.Info().Str("config", config.ConfigFilePath()).Msg("Watching config for changes")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Shutting down")
			return
		case <-changes:
			cfg := config.Get()
			setupLogging(cfg.Logging.Level, cfg.Logging.Format)
			if err := run(ctx, cfg, out); err != nil {
				log.Error().Err(err).Msg("Evaluation failed")
			}
		}
	}
}

type outputs struct {
	yaml     string
	scenario string
	warmup   int
}

// run evaluates the configured scenario once and prints the report
func run(ctx context.Context, cfg *config.Config, out outputs) error {
	baseSeed := cfg.MonteCarlo.Seed
	if baseSeed == 0 {
		baseSeed = frand.Uint64n(math.MaxUint64) + 1
	}

	pol, err := policy.FromConfig(cfg.Policy, rand.New(rand.NewSource(baseSeed)))
	if err != nil {
		return err
	}
	loss, err := policy.LossFromConfig(cfg.Loss)
	if err != nil {
		return err
	}
	scenario, err := montecarlo.ScenarioFromConfig(cfg.Scenario, game.StartingPlayer(), game.MatchPlayers())
	if err != nil {
		return err
	}

	if out.warmup > 0 {
		scenario = randomScenario(scenario, out.warmup, baseSeed)
	}

	evaluator, err := montecarlo.NewEvaluatorFromConfig(cfg.MonteCarlo, pol, loss,
		montecarlo.WithSeed(baseSeed),
		montecarlo.WithLogger(log.Logger),
		montecarlo.WithMetrics(montecarlo.NewMetricsCollector()),
	)
	if err != nil {
		return err
	}
	// scenario.turn, when set, overrides montecarlo.round_offset
	if scenario.Turn > 0 {
		evaluator = evaluator.AtRound(scenario.Turn)
	}

	log.Info().
		Str("run_id", evaluator.RunID()).
		Int("round", evaluator.RoundOffset()).
		Uint64("seed", evaluator.Seed()).
		Int("players", len(scenario.Players)).
		Int("samples", evaluator.Samples()).
		Str("policy", policy.Describe(pol)).
		Msg("Starting evaluation")

	monitor := monitoring.NewProgressMonitor(evaluator, cfg.Monitoring.ProgressInterval, log.Logger)
	monitor.Start()
	start := time.Now()
	results, err := evaluator.EvaluateAll(ctx, scenario.Players, scenario.Targets, scenario.Constraints)
	monitor.Stop()
	if err != nil {
		return err
	}

	report := montecarlo.NewReport(evaluator, scenario.Players, scenario.Names, scenario.Turn, scenario.Constraints, results, time.Since(start))
	report.Policy = policy.Describe(pol)
	if err := report.WriteText(os.Stdout, cfg.MonteCarlo.TopN); err != nil {
		return err
	}

	if out.yaml != "" {
		if err := writeFile(out.yaml, report.WriteYAML); err != nil {
			return err
		}
		log.Info().Str("path", out.yaml).Msg("Report written")
	}
	if out.scenario != "" {
		if err := writeFile(out.scenario, scenario.WriteYAML); err != nil {
			return err
		}
		log.Info().Str("path", out.scenario).Msg("Scenario written")
	}
	return nil
}

// randomScenario replaces the configured table with one reached by random play from it.
// Constraints are dropped since they may no longer be legal.
func randomScenario(s *montecarlo.Scenario, warmup int, seed uint64) *montecarlo.Scenario {
	tableConfig := tablegen.DefaultTableConfig(len(s.Players))
	tableConfig.Players = s.Players
	tableConfig.WarmupRounds = warmup

	players, rounds := tablegen.NewGenerator(tableConfig, rand.New(rand.NewSource(seed))).GenerateTable()
	log.Info().Int("rounds", rounds).Int("playing", core.CountPlaying(players)).Msg("Generated random table")

	return &montecarlo.Scenario{
		Turn:    s.Turn + rounds,
		Names:   s.Names,
		Players: players,
		Targets: s.Targets,
	}
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// setupLogging configures the global logger
func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" || os.Getenv("APP_ENV") == "production" {
		// JSON output for production
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		// Pretty console output for development
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}

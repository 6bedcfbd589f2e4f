package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"

	"github.com/mitchelldurbincs/obelisk/internal/config"
	"github.com/mitchelldurbincs/obelisk/internal/game"
	"github.com/mitchelldurbincs/obelisk/internal/game/core"
	"github.com/mitchelldurbincs/obelisk/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/obelisk/internal/game/processor"
	"github.com/mitchelldurbincs/obelisk/internal/montecarlo"
	"github.com/mitchelldurbincs/obelisk/internal/policy"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	players := flag.Int("players", -1, "Number of seats (-1 to use config default)")
	maxTurns := flag.Int("max-turns", -1, "Turn limit (-1 to use config default)")
	seed := flag.Uint64("seed", 0, "Seed for the seat policies (0 for a random one)")
	mcSeat := flag.Int("mc-seat", -1, "Seat played by the Monte Carlo evaluator (-1 for none)")
	mcSamples := flag.Int("mc-samples", 100, "Trials per candidate action for the Monte Carlo seat")
	render := flag.Bool("render", true, "Print the standings after every turn")
	transcriptPath := flag.String("transcript", "", "Write the match transcript as YAML to this file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if *players != -1 {
		config.Set("match.players", *players)
	}
	if *maxTurns != -1 {
		config.Set("match.max_turns", *maxTurns)
	}
	if *logLevel != "" {
		config.Set("logging.level", *logLevel)
	}

	cfg := config.Get()
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	setupLogging(cfg.Logging.Level)

	if *seed == 0 {
		*seed = frand.Uint64n(math.MaxUint64) + 1
	}
	log.Info().Uint64("seed", *seed).Msg("Match seed")
	rng := rand.New(rand.NewSource(*seed))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seats, err := buildSeats(cfg, game.MatchPlayers(), *mcSeat, *mcSamples, *seed, rng)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up seats")
	}

	gameID := uuid.NewString()
	start := game.StartingPlayer()
	initial := make([]core.Player, len(seats))
	for i := range initial {
		initial[i] = start
	}
	transcript := game.NewTranscript(gameID, initial)

	engine, err := game.NewGameEngine(ctx, game.GameConfig{
		GameID:     gameID,
		MaxTurns:   game.MatchMaxTurns(),
		Players:    initial,
		Logger:     log.Logger,
		Transcript: transcript,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create game engine")
	}

	if cfg.Development.VerboseLogging {
		eventLogger := subscribers.NewLoggerSubscriber("match-logger", log.Logger, zerolog.DebugLevel)
		eventLogger.SetDevMode(cfg.Development.EventDevMode)
		engine.EventBus().Subscribe(eventLogger)
	}

	names := make([]string, len(seats))
	for i, s := range seats {
		names[i] = s.name
	}
	if *render {
		fmt.Println(engine.Render(names))
	}

	for !engine.IsGameOver() {
		orders, err := collectOrders(ctx, engine, seats, rng)
		if err != nil {
			if abortErr := engine.Abort(err.Error()); abortErr != nil {
				log.Error().Err(abortErr).Msg("Failed to abort match")
			}
			break
		}
		if err := engine.Step(ctx, orders); err != nil {
			log.Error().Err(err).Int("turn", engine.Turn()+1).Msg("Turn failed")
			if abortErr := engine.Abort(err.Error()); abortErr != nil {
				log.Error().Err(abortErr).Msg("Failed to abort match")
			}
			break
		}
		if *render {
			fmt.Println(engine.Render(names))
		}
	}

	switch winner := engine.Winner(); {
	case winner >= 0:
		fmt.Printf("Game over after %d turns: %s wins\n", engine.Turn(), names[winner])
	default:
		fmt.Printf("Game over after %d turns (%s): no winner\n", engine.Turn(), engine.Phase())
	}

	if *transcriptPath != "" {
		if err := writeTranscript(*transcriptPath, transcript); err != nil {
			log.Fatal().Err(err).Msg("Failed to write transcript")
		}
		log.Info().Str("path", *transcriptPath).Int("turns", transcript.Len()).Msg("Transcript written")
	}
}

// seat is one player of the match and how it chooses its orders
type seat struct {
	name      string
	policy    policy.Policy
	evaluator *montecarlo.Evaluator
	history   []core.Action
}

func buildSeats(cfg *config.Config, n, mcSeat, mcSamples int, seed uint64, rng *rand.Rand) ([]*seat, error) {
	seats := make([]*seat, n)
	for i := range seats {
		pol, err := policy.FromConfig(cfg.Policy, rng)
		if err != nil {
			return nil, err
		}
		seats[i] = &seat{name: fmt.Sprintf("P%d", i), policy: pol}
		log.Info().Int("seat", i).Str("policy", policy.Describe(pol)).Msg("Seat ready")
	}

	if mcSeat >= 0 && mcSeat < n {
		loss, err := policy.LossFromConfig(cfg.Loss)
		if err != nil {
			return nil, err
		}
		evaluator, err := montecarlo.NewEvaluatorFromConfig(cfg.MonteCarlo, seats[mcSeat].policy, loss,
			montecarlo.WithSamples(mcSamples),
			montecarlo.WithSeed(seed),
			montecarlo.WithLogger(log.Logger),
		)
		if err != nil {
			return nil, err
		}
		seats[mcSeat].evaluator = evaluator
		seats[mcSeat].name = fmt.Sprintf("P%d(mc)", mcSeat)
	}
	return seats, nil
}

// collectOrders asks every seat that can still play for its order
func collectOrders(ctx context.Context, engine *game.Engine, seats []*seat, rng *rand.Rand) ([]processor.Order, error) {
	players := engine.Players()
	round := engine.Turn()
	orders := make([]processor.Order, 0, len(seats))

	for i, s := range seats {
		if !players[i].CanPlay() {
			continue
		}

		var action core.Action
		if s.evaluator != nil {
			best, _, err := s.evaluator.AtRound(round).BestAction(ctx, players, i, nil)
			if err != nil {
				return nil, err
			}
			action = best
		} else {
			action = s.policy.ChooseAction(players, i, round, s.history, rng)
		}

		s.history = append(s.history, action)
		orders = append(orders, processor.Order{Player: i, Action: action})
	}
	return orders, nil
}

func writeTranscript(path string, transcript *game.Transcript) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := transcript.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// setupLogging configures the global logger
func setupLogging(level string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if os.Getenv("APP_ENV") == "production" {
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

package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/obelisk/internal/game/core"
	"github.com/mitchelldurbincs/obelisk/internal/game/events"
	"github.com/mitchelldurbincs/obelisk/internal/game/processor"
	"github.com/mitchelldurbincs/obelisk/internal/game/rules"
	"github.com/mitchelldurbincs/obelisk/internal/game/states"
	"github.com/rs/zerolog"
)

// EngineInitializer handles the initialization of a match engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize creates and initializes a new match engine
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out during initial phase")
		return nil, ctx.Err()
	default:
	}

	ei.setupDefaults()

	players, err := ei.initializePlayers()
	if err != nil {
		return nil, fmt.Errorf("player setup failed: %w", err)
	}

	engine := ei.createEngine(players)
	ei.setupEventHandling(engine)
	ei.performInitialSetup(engine)

	engine.eventBus.Publish(events.NewGameStartedEvent(engine.gameID, len(players), engine.maxTurns))

	ei.logger.Info().
		Str("game_id", engine.gameID).
		Int("players", len(players)).
		Int("max_turns", engine.maxTurns).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults sets up default values for missing configuration
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.GameID == "" {
		ei.config.GameID = uuid.NewString()
	}
	if ei.config.Start == (core.Player{}) {
		ei.logger.Debug().Msg("No starting player provided, using the standard one")
		ei.config.Start = core.NewPlayer()
	}
	if ei.config.Transcript != nil {
		ei.logger.Info().Msg("Transcript recording enabled")
	}
}

// initializePlayers seats every player
func (ei *EngineInitializer) initializePlayers() ([]core.Player, error) {
	if len(ei.config.Players) > 0 {
		if len(ei.config.Players) < 2 {
			return nil, fmt.Errorf("a match needs at least 2 players, got %d: %w", len(ei.config.Players), core.ErrInvalidPlayer)
		}
		return core.ClonePlayers(ei.config.Players), nil
	}

	if ei.config.NumPlayers < 2 {
		return nil, fmt.Errorf("a match needs at least 2 players, got %d: %w", ei.config.NumPlayers, core.ErrInvalidPlayer)
	}
	start := ei.config.Start
	if !start.CanPlay() {
		return nil, fmt.Errorf("starting player with %d obelisks cannot play: %w", start.Obelisks, core.ErrInvalidResource)
	}

	players := make([]core.Player, ei.config.NumPlayers)
	for i := range players {
		players[i] = start
	}
	return players, nil
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine(players []core.Player) *Engine {
	eventBus := events.NewEventBus(ei.logger)

	engine := &Engine{
		gameID:          ei.config.GameID,
		players:         players,
		maxTurns:        ei.config.MaxTurns,
		winner:          -1,
		startTime:       time.Now(),
		logger:          ei.logger,
		actionProcessor: processor.NewActionProcessor(ei.logger),
		winCondition:    rules.NewWinConditionChecker(ei.logger),
		legalMoves:      rules.NewLegalMoveCalculator(),
		eventBus:        eventBus,
		transcript:      ei.config.Transcript,
	}

	engine.phases = states.NewStateMachine(ei.config.GameID, eventBus, ei.logger)
	engine.constructionManager = NewConstructionManager(eventBus, ei.config.GameID, ei.logger)
	engine.turnProcessor = NewTurnProcessor(engine)

	return engine
}

// setupEventHandling configures event handling for the engine
func (ei *EngineInitializer) setupEventHandling(engine *Engine) {
	eventAdapter := events.NewPublisherAdapter(engine.eventBus)
	engine.actionProcessor.SetEventPublisher(eventAdapter, engine.gameID)
}

// performInitialSetup starts the match and checks the seated players for a finished game
func (ei *EngineInitializer) performInitialSetup(engine *Engine) {
	logger := ei.logger.With().Str("phase", "init").Logger()
	if err := engine.phases.TransitionTo(states.PhaseRunning, "players seated"); err != nil {
		logger.Error().Err(err).Msg("Could not start match")
	}
	engine.checkGameOver(logger)
}

package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mitchelldurbincs/obelisk/internal/game/core"
	"github.com/mitchelldurbincs/obelisk/internal/game/events"
	"github.com/mitchelldurbincs/obelisk/internal/game/processor"
	"github.com/mitchelldurbincs/obelisk/internal/game/rules"
	"github.com/rs/zerolog"
)

// TurnProcessor handles the orchestration of a single turn
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// ProcessTurn executes a complete game turn. The match state is only changed once
// every order has been aligned, so a cancelled turn leaves the engine untouched.
func (tp *TurnProcessor) ProcessTurn(ctx context.Context, orders []processor.Order) error {
	if err := tp.checkContext(ctx, "before starting"); err != nil {
		return err
	}

	if err := tp.validateGameState(); err != nil {
		return err
	}

	turn := tp.engine.turn + 1
	turnLogger := tp.logger.With().Int("turn", turn).Logger()
	turnLogger.Debug().Msg("Starting game step")

	turnStartTime := time.Now()
	tp.publishTurnStarted(turn)

	actions, err := tp.processOrdersPhase(ctx, turn, orders, turnLogger)
	if err != nil {
		return err
	}

	before, report, err := tp.processResolutionPhase(ctx, turn, actions, turnLogger)
	if err != nil {
		return err
	}

	tp.processEndOfTurnPhase(before, report, turnLogger)

	tp.recordTranscript(before, actions)

	tp.publishTurnEnded(turnStartTime, actions)

	turnLogger.Debug().Msg("Game step finished")
	return nil
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context, phase string) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("turn", tp.engine.turn).
			Str("phase", phase).
			Msg("Game step cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

// validateGameState ensures the game can receive orders
func (tp *TurnProcessor) validateGameState() error {
	if tp.engine.gameOver || !tp.engine.phases.CurrentPhase().CanReceiveOrders() {
		tp.logger.Warn().
			Int("turn", tp.engine.turn).
			Str("phase", tp.engine.phases.CurrentPhase().String()).
			Msg("Attempted to step game that is already over")
		return core.WrapGameStateError(tp.engine.turn, "step", core.ErrGameOver)
	}
	return nil
}

// publishTurnStarted publishes the turn started event
func (tp *TurnProcessor) publishTurnStarted(turn int) {
	tp.engine.eventBus.Publish(events.NewTurnStartedEvent(tp.engine.gameID, turn, core.CountPlaying(tp.engine.players)))
}

// processOrdersPhase turns the submitted orders into one action per player
func (tp *TurnProcessor) processOrdersPhase(ctx context.Context, turn int, orders []processor.Order, turnLogger zerolog.Logger) ([]core.Action, error) {
	turnLogger.Debug().Int("num_orders_submitted", len(orders)).Msg("Processing orders")

	actions, rejections, err := tp.engine.actionProcessor.AlignOrders(ctx, turn, tp.engine.players, orders)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, core.WrapGameStateError(turn, "order processing", fmt.Errorf("context cancelled: %w", err))
		}
		return nil, core.WrapGameStateError(turn, "order processing", err)
	}

	turnLogger.Debug().
		Int("rejected", len(rejections)).
		Str("actions", core.FormatActions(actions)).
		Msg("Finished processing orders")
	return actions, nil
}

// processResolutionPhase advances the players and reports combat and construction
func (tp *TurnProcessor) processResolutionPhase(ctx context.Context, turn int, actions []core.Action, turnLogger zerolog.Logger) ([]core.Player, RoundReport, error) {
	if err := tp.checkContext(ctx, "before resolution"); err != nil {
		return nil, RoundReport{}, core.WrapGameStateError(turn, "resolution", fmt.Errorf("context cancelled: %w", err))
	}

	before := core.ClonePlayers(tp.engine.players)
	players, report := AdvanceWithReport(tp.engine.players, actions)
	tp.engine.players = players
	tp.engine.turn = turn

	for _, c := range report.Combats {
		turnLogger.Debug().
			Int("defender", c.Defender).
			Ints("attackers", c.Attackers).
			Int("lead", c.Lead).
			Bool("besieged", c.Besieged).
			Msg("Combat resolved")
		tp.engine.eventBus.Publish(events.NewCombatResolvedEvent(
			tp.engine.gameID,
			turn,
			c.Defender,
			c.Attackers,
			c.Lead,
			c.Besieged,
			c.WallsLost,
			c.DefenderLosses,
			c.AttackerLosses,
		))
	}

	tp.engine.constructionManager.Report(turn, report.Construction)
	return before, report, nil
}

// processEndOfTurnPhase reports eliminations and checks for the end of the match
func (tp *TurnProcessor) processEndOfTurnPhase(before []core.Player, report RoundReport, turnLogger zerolog.Logger) {
	e := tp.engine

	for _, p := range rules.Eliminated(before, e.players) {
		by := -1
		for _, c := range report.Combats {
			if c.Defender == p {
				by = c.Lead
			}
		}
		rank := len(e.players) - e.eliminated
		e.eliminated++

		turnLogger.Info().
			Int("player", p).
			Int("eliminated_by", by).
			Int("rank", rank).
			Msg("Player eliminated")
		e.eventBus.Publish(events.NewPlayerEliminatedEvent(e.gameID, e.turn, p, by, rank))
	}

	e.checkGameOver(turnLogger)
	if !e.gameOver {
		return
	}

	if e.winner >= 0 {
		e.eventBus.Publish(events.NewPlayerWonEvent(e.gameID, e.turn, e.winner))
	}
	e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, e.winner, time.Since(e.startTime), e.turn))
}

// recordTranscript hands the resolved turn to the transcript recorder if one is set
func (tp *TurnProcessor) recordTranscript(before []core.Player, actions []core.Action) {
	e := tp.engine
	if e.transcript == nil {
		return
	}

	e.transcript.OnTurn(e.turn, before, core.ClonePlayers(e.players), actions)
	if e.gameOver {
		tp.logger.Info().
			Int("final_turn", e.turn).
			Msg("Game ended, notifying transcript recorder")
		e.transcript.OnGameEnd(e.turn, core.ClonePlayers(e.players), e.winner)
	}
}

// publishTurnEnded publishes the turn ended event
func (tp *TurnProcessor) publishTurnEnded(startTime time.Time, actions []core.Action) {
	tp.engine.eventBus.Publish(events.NewTurnEndedEvent(
		tp.engine.gameID,
		tp.engine.turn,
		actions,
		time.Since(startTime),
	))
}

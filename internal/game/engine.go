package game

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchelldurbincs/obelisk/internal/game/core"
	"github.com/mitchelldurbincs/obelisk/internal/game/events"
	"github.com/mitchelldurbincs/obelisk/internal/game/processor"
	"github.com/mitchelldurbincs/obelisk/internal/game/rules"
	"github.com/mitchelldurbincs/obelisk/internal/game/states"
	"github.com/rs/zerolog"
)

// GameConfig holds configuration for creating a new match
type GameConfig struct {
	NumPlayers int
	MaxTurns   int // 0 means no turn limit
	// Start is the resource set of every seat. Ignored when Players is set.
	Start   core.Player
	Players []core.Player
	GameID  string
	Logger  zerolog.Logger
	// Transcript, if set, receives every resolved turn
	Transcript TranscriptRecorder
}

// Engine runs a match: it collects orders, resolves turns with AdvanceWithReport
// and publishes what happened on its event bus.
type Engine struct {
	gameID     string
	players    []core.Player
	turn       int
	maxTurns   int
	gameOver   bool
	winner     int
	startTime  time.Time
	eliminated int

	logger              zerolog.Logger
	actionProcessor     *processor.ActionProcessor
	winCondition        *rules.WinConditionChecker
	legalMoves          *rules.LegalMoveCalculator
	eventBus            *events.EventBus
	phases              *states.StateMachine
	constructionManager *ConstructionManager
	turnProcessor       *TurnProcessor
	transcript          TranscriptRecorder
}

// NewGameEngine creates a new match with the given configuration
func NewGameEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// Step resolves one turn from the submitted orders. Players without a usable order Skip.
func (e *Engine) Step(ctx context.Context, orders []processor.Order) error {
	return e.turnProcessor.ProcessTurn(ctx, orders)
}

// checkGameOver updates the game over state
func (e *Engine) checkGameOver(logger zerolog.Logger) {
	if e.gameOver {
		return
	}

	over, winner := e.winCondition.CheckGameOver(e.players)
	if !over && e.maxTurns > 0 && e.turn >= e.maxTurns {
		logger.Info().Int("max_turns", e.maxTurns).Msg("Turn limit reached, game ends without a winner")
		over, winner = true, -1
	}
	if !over {
		return
	}

	e.gameOver = true
	e.winner = winner
	logger.Info().
		Int("winner", winner).
		Int("turn", e.turn).
		Dur("duration", time.Since(e.startTime)).
		Msg("Game over")

	reason := "no winner"
	if winner >= 0 {
		reason = fmt.Sprintf("player %d won", winner)
	}
	if err := e.phases.TransitionTo(states.PhaseEnded, reason); err != nil {
		logger.Warn().Err(err).Msg("Could not mark match as ended")
	}
}

// Abort stops a running match without a winner. Later calls to Step fail with core.ErrGameOver.
func (e *Engine) Abort(reason string) error {
	if err := e.phases.TransitionTo(states.PhaseAborted, reason); err != nil {
		return core.WrapGameStateError(e.turn, "abort", err)
	}
	e.gameOver = true
	e.winner = -1
	e.logger.Info().Str("game_id", e.gameID).Int("turn", e.turn).Str("reason", reason).Msg("Match aborted")
	return nil
}

// Phase returns the lifecycle phase of the match
func (e *Engine) Phase() states.MatchPhase { return e.phases.CurrentPhase() }

// Public accessors
func (e *Engine) GameID() string             { return e.gameID }
func (e *Engine) Turn() int                  { return e.turn }
func (e *Engine) IsGameOver() bool           { return e.gameOver }
func (e *Engine) EventBus() *events.EventBus { return e.eventBus }

// Winner returns the winning player, or -1 while the game runs or when it ended without one
func (e *Engine) Winner() int {
	if !e.gameOver {
		return -1
	}
	return e.winner
}

// Players returns a copy of the current players
func (e *Engine) Players() []core.Player {
	return core.ClonePlayers(e.players)
}

// State returns a copy of the current match state
func (e *Engine) State() MatchState {
	return MatchState{
		GameID:   e.gameID,
		Turn:     e.turn,
		Players:  core.ClonePlayers(e.players),
		GameOver: e.gameOver,
		Winner:   e.Winner(),
	}
}

// LegalActions returns the actions the player may order this turn
func (e *Engine) LegalActions(player int) []core.Action {
	return e.legalMoves.LegalActions(e.players, player)
}

// ActionMask returns the legality mask of the player, laid out as rules.MaskIndex
func (e *Engine) ActionMask(player int) []bool {
	return e.legalMoves.ActionMask(e.players, player)
}

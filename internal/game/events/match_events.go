package events

import (
	"time"

	"github.com/mitchelldurbincs/obelisk/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted         = "game.started"
	TypeGameEnded           = "game.ended"
	TypeTurnStarted         = "turn.started"
	TypeTurnEnded           = "turn.ended"
	TypeActionRejected      = "action.rejected"
	TypeCombatResolved      = "combat.resolved"
	TypeConstructionApplied = "construction.applied"
	TypePlayerEliminated    = "player.eliminated"
	TypePlayerWon           = "player.won"
	TypePhaseChanged        = "phase.changed"
)

// GameStartedEvent is published when a match begins
type GameStartedEvent struct {
	BaseEvent
	NumPlayers int
	MaxTurns   int
}

func NewGameStartedEvent(gameID string, numPlayers, maxTurns int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:  newBase(TypeGameStarted, gameID, 0),
		NumPlayers: numPlayers,
		MaxTurns:   maxTurns,
	}
}

// GameEndedEvent is published once, when the match is over. Winner is -1 for a draw.
type GameEndedEvent struct {
	BaseEvent
	Winner   int
	Duration time.Duration
}

func NewGameEndedEvent(gameID string, winner int, duration time.Duration, finalTurn int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID, finalTurn),
		Winner:    winner,
		Duration:  duration,
	}
}

// TurnStartedEvent is published before the orders of a turn are resolved
type TurnStartedEvent struct {
	BaseEvent
	Playing int
}

func NewTurnStartedEvent(gameID string, turn, playing int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent: newBase(TypeTurnStarted, gameID, turn),
		Playing:   playing,
	}
}

// TurnEndedEvent is published after a turn is resolved
type TurnEndedEvent struct {
	BaseEvent
	Actions       []core.Action
	ProcessedTime time.Duration
}

func NewTurnEndedEvent(gameID string, turn int, actions []core.Action, processedTime time.Duration) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:     newBase(TypeTurnEnded, gameID, turn),
		Actions:       actions,
		ProcessedTime: processedTime,
	}
}

// ActionRejectedEvent is published when an order is dropped before resolution
type ActionRejectedEvent struct {
	BaseEvent
	Player int
	Action core.Action
	Reason string
}

func NewActionRejectedEvent(gameID string, turn, player int, action core.Action, reason string) *ActionRejectedEvent {
	return &ActionRejectedEvent{
		BaseEvent: newBase(TypeActionRejected, gameID, turn),
		Player:    player,
		Action:    action,
		Reason:    reason,
	}
}

// CombatResolvedEvent describes one engagement against a defender.
// Lead is the player index of the surviving attacker, or -1.
type CombatResolvedEvent struct {
	BaseEvent
	Defender       int
	Attackers      []int
	Lead           int
	Besieged       bool
	WallsLost      int
	DefenderLosses int
	AttackerLosses int
}

func NewCombatResolvedEvent(gameID string, turn, defender int, attackers []int, lead int, besieged bool,
	wallsLost, defenderLosses, attackerLosses int) *CombatResolvedEvent {
	return &CombatResolvedEvent{
		BaseEvent:      newBase(TypeCombatResolved, gameID, turn),
		Defender:       defender,
		Attackers:      attackers,
		Lead:           lead,
		Besieged:       besieged,
		WallsLost:      wallsLost,
		DefenderLosses: defenderLosses,
		AttackerLosses: attackerLosses,
	}
}

// ConstructionAppliedEvent totals the construction phase of a turn
type ConstructionAppliedEvent struct {
	BaseEvent
	Walls     int
	Barracks  int
	Obelisks  int
	Recruited int
	Blocked   int // build orders lost to a siege
}

func NewConstructionAppliedEvent(gameID string, turn, walls, barracks, obelisks, recruited, blocked int) *ConstructionAppliedEvent {
	return &ConstructionAppliedEvent{
		BaseEvent: newBase(TypeConstructionApplied, gameID, turn),
		Walls:     walls,
		Barracks:  barracks,
		Obelisks:  obelisks,
		Recruited: recruited,
		Blocked:   blocked,
	}
}

// PlayerEliminatedEvent is published when a player loses its last obelisk
type PlayerEliminatedEvent struct {
	BaseEvent
	Player       int
	EliminatedBy int
	FinalRank    int
}

func NewPlayerEliminatedEvent(gameID string, turn, player, eliminatedBy, rank int) *PlayerEliminatedEvent {
	return &PlayerEliminatedEvent{
		BaseEvent:    newBase(TypePlayerEliminated, gameID, turn),
		Player:       player,
		EliminatedBy: eliminatedBy,
		FinalRank:    rank,
	}
}

// PlayerWonEvent is published when a player completes its obelisks
type PlayerWonEvent struct {
	BaseEvent
	Player int
}

func NewPlayerWonEvent(gameID string, turn, player int) *PlayerWonEvent {
	return &PlayerWonEvent{
		BaseEvent: newBase(TypePlayerWon, gameID, turn),
		Player:    player,
	}
}

// PhaseChangedEvent is published when a match moves to another lifecycle phase
type PhaseChangedEvent struct {
	BaseEvent
	From   string
	To     string
	Reason string
}

func NewPhaseChangedEvent(gameID, from, to, reason string) *PhaseChangedEvent {
	return &PhaseChangedEvent{
		BaseEvent: newBase(TypePhaseChanged, gameID, 0),
		From:      from,
		To:        to,
		Reason:    reason,
	}
}

package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/obelisk/internal/game/core"
	"github.com/mitchelldurbincs/obelisk/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs match events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool, len(eventTypes))
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent logs one event with its type-specific fields
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.level()).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp())

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("num_players", e.NumPlayers).
			Int("max_turns", e.MaxTurns)

	case *events.GameEndedEvent:
		logEvent.
			Int("winner", e.Winner).
			Dur("duration", e.Duration).
			Int("final_turn", e.Turn)

	case *events.TurnStartedEvent:
		logEvent.
			Int("turn", e.Turn).
			Int("playing", e.Playing)

	case *events.TurnEndedEvent:
		logEvent.
			Int("turn", e.Turn).
			Str("actions", core.FormatActions(e.Actions)).
			Dur("process_time", e.ProcessedTime)

	case *events.ActionRejectedEvent:
		logEvent.
			Int("turn", e.Turn).
			Int("player", e.Player).
			Str("action", e.Action.String()).
			Str("reason", e.Reason)

	case *events.CombatResolvedEvent:
		logEvent.
			Int("turn", e.Turn).
			Int("defender", e.Defender).
			Ints("attackers", e.Attackers).
			Int("lead", e.Lead).
			Bool("besieged", e.Besieged).
			Int("walls_lost", e.WallsLost).
			Int("defender_losses", e.DefenderLosses).
			Int("attacker_losses", e.AttackerLosses)

	case *events.ConstructionAppliedEvent:
		logEvent.
			Int("turn", e.Turn).
			Int("walls", e.Walls).
			Int("barracks", e.Barracks).
			Int("obelisks", e.Obelisks).
			Int("recruited", e.Recruited).
			Int("blocked", e.Blocked)

	case *events.PlayerEliminatedEvent:
		logEvent.
			Int("turn", e.Turn).
			Int("player", e.Player).
			Int("eliminated_by", e.EliminatedBy).
			Int("final_rank", e.FinalRank)

	case *events.PlayerWonEvent:
		logEvent.
			Int("turn", e.Turn).
			Int("player", e.Player)

	case *events.PhaseChangedEvent:
		logEvent.
			Str("from_phase", e.From).
			Str("to_phase", e.To).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Match event")
}

func (ls *LoggerSubscriber) level() zerolog.Level {
	switch ls.logLevel {
	case zerolog.DebugLevel, zerolog.InfoLevel, zerolog.WarnLevel, zerolog.ErrorLevel:
		return ls.logLevel
	default:
		return zerolog.InfoLevel
	}
}

package game

import (
	"github.com/mitchelldurbincs/obelisk/internal/game/events"
	"github.com/rs/zerolog"
)

// ConstructionManager reports what the construction phase of each turn produced
type ConstructionManager struct {
	eventBus *events.EventBus
	gameID   string
	logger   zerolog.Logger
}

// NewConstructionManager creates a new construction manager
func NewConstructionManager(eventBus *events.EventBus, gameID string, logger zerolog.Logger) *ConstructionManager {
	return &ConstructionManager{
		eventBus: eventBus,
		gameID:   gameID,
		logger:   logger.With().Str("component", "ConstructionManager").Logger(),
	}
}

// Report logs the tally and publishes it if anything was built, recruited or blocked
func (cm *ConstructionManager) Report(turn int, tally ConstructionTally) {
	cm.logger.Debug().
		Int("turn", turn).
		Int("walls", tally.Walls).
		Int("barracks", tally.Barracks).
		Int("obelisks", tally.Obelisks).
		Int("recruited", tally.Recruited).
		Int("blocked", tally.Blocked).
		Msg("Turn construction complete")

	if tally == (ConstructionTally{}) {
		return
	}
	cm.eventBus.Publish(events.NewConstructionAppliedEvent(
		cm.gameID,
		turn,
		tally.Walls,
		tally.Barracks,
		tally.Obelisks,
		tally.Recruited,
		tally.Blocked,
	))
}

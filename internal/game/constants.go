package game

import (
	"github.com/mitchelldurbincs/obelisk/internal/config"
	"github.com/mitchelldurbincs/obelisk/internal/game/core"
)

// StartingPlayer returns the player every seat starts a match with, as configured
// under game.start.
func StartingPlayer() core.Player {
	s := config.Get().Game.Start
	return core.NewPlayerWithValues(uint8(s.Walls), uint32(s.Soldiers), uint8(s.Barracks), uint8(s.Obelisks), 0)
}

// MatchPlayers returns the configured seat count for a match.
func MatchPlayers() int {
	return config.Get().Match.Players
}

// MatchMaxTurns returns the configured turn limit for a match.
func MatchMaxTurns() int {
	return config.Get().Match.MaxTurns
}

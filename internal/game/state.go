package game

import "github.com/mitchelldurbincs/obelisk/internal/game/core"

// MatchState is a point-in-time copy of a running match.
type MatchState struct {
	GameID   string
	Turn     int
	Players  []core.Player
	GameOver bool
	Winner   int
}

// Playing returns the number of players that can still act.
func (ms MatchState) Playing() int {
	return core.CountPlaying(ms.Players)
}

package game

import (
	"slices"

	"github.com/mitchelldurbincs/obelisk/internal/game/core"
)

// Status of a player in the standings.
type Status string

const (
	StatusPlaying    Status = "playing"
	StatusWon        Status = "won"
	StatusEliminated Status = "eliminated"
)

// Standing is one row of the match standings.
type Standing struct {
	Player    int
	Status    Status
	Obelisks  int
	Strength  int
	Soldiers  int
	Walls     int
	Barracks  int
	Defense   int
	Victories int
	Defeats   int
}

func statusOf(p core.Player) Status {
	switch {
	case p.Won():
		return StatusWon
	case p.Lost():
		return StatusEliminated
	default:
		return StatusPlaying
	}
}

// Standings ranks players by obelisks, then by strength. Ties keep index order.
func Standings(players []core.Player) []Standing {
	out := make([]Standing, len(players))
	for i, p := range players {
		out[i] = Standing{
			Player:    i,
			Status:    statusOf(p),
			Obelisks:  int(p.Obelisks),
			Strength:  int(p.Strength()),
			Soldiers:  int(p.Soldiers),
			Walls:     int(p.Walls),
			Barracks:  int(p.Barracks),
			Defense:   int(p.Defense),
			Victories: p.Victories,
			Defeats:   p.Defeats,
		}
	}
	slices.SortStableFunc(out, func(a, b Standing) int {
		if a.Obelisks != b.Obelisks {
			return b.Obelisks - a.Obelisks
		}
		return b.Strength - a.Strength
	})
	return out
}

// Leader returns the index of the player at the top of the standings.
func Leader(players []core.Player) int {
	if len(players) == 0 {
		return -1
	}
	return Standings(players)[0].Player
}

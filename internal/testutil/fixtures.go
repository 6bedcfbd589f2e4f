package testutil

import (
	"github.com/mitchelldurbincs/obelisk/internal/game/core"
)

// P is a short constructor for a player row: walls, soldiers, barracks, obelisks, defense.
func P(walls uint8, soldiers uint32, barracks, obelisks, defense uint8) core.Player {
	return core.NewPlayerWithValues(walls, soldiers, barracks, obelisks, defense)
}

// CreateTestPlayers creates count players with the default starting resources
func CreateTestPlayers(count int) []core.Player {
	players := make([]core.Player, count)
	for i := range players {
		players[i] = core.NewPlayer()
	}
	return players
}

// CreateMidGameSetup returns four players a dozen rounds into a match:
// a leader, a turtle behind defended walls, an army and a player one obelisk from elimination.
func CreateMidGameSetup() []core.Player {
	return []core.Player{
		P(2, 4, 3, 6, 0),
		P(8, 1, 1, 3, 2),
		P(0, 14, 4, 2, 0),
		P(1, 0, 1, 1, 0),
	}
}

// CreateFinishedSetup returns a table where player 0 has already won and player 2 is out.
func CreateFinishedSetup() []core.Player {
	return []core.Player{
		P(3, 2, 2, core.MaxObelisks, 0),
		P(1, 5, 2, 4, 0),
		P(0, 0, 1, 0, 0),
	}
}

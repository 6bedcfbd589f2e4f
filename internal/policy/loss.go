package policy

import "github.com/mitchelldurbincs/obelisk/internal/game/core"

// Loss scores a final state from the point of view of one player. Lower is better.
type Loss interface {
	Loss(players []core.Player, index int) float64
}

// LossFunc adapts a function to the Loss interface.
type LossFunc func(players []core.Player, index int) float64

func (f LossFunc) Loss(players []core.Player, index int) float64 { return f(players, index) }

// DistanceLoss measures how far a player is behind the rest of the table, weighted
// towards obelisks.
type DistanceLoss struct{}

func (DistanceLoss) Loss(players []core.Player, index int) float64 {
	var obelisks, barracks, soldiers, walls float64
	for _, p := range core.Others(players, index) {
		obelisks += float64(p.Obelisks)
		barracks += float64(p.Barracks)
		soldiers += float64(p.Soldiers)
		walls += float64(p.Walls)
	}

	self := players[index]
	return (10+obelisks)/2 - float64(self.Obelisks) +
		(barracks-float64(self.Barracks))/10 +
		(soldiers-float64(self.Soldiers))/20 +
		(walls-float64(self.Walls))/10
}

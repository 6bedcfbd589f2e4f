package game

import (
	"github.com/mitchelldurbincs/obelisk/internal/game/core"
	"github.com/mitchelldurbincs/obelisk/internal/game/processor"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// GenerateRandomOrders picks a uniformly random legal order for every player that
// can play. Players are left without an order with probability idle, and then Skip.
// This is a helper intended for demos, tests and as a baseline opponent.
func GenerateRandomOrders(players []core.Player, rng *rand.Rand, idle float64) []processor.Order {
	var orders []processor.Order
	for i, p := range players {
		if !p.CanPlay() {
			continue
		}
		if rng.Float64() < idle {
			continue
		}

		legal := core.PossibleActionsFor(players, i)
		chosen := legal[rng.Intn(len(legal))]
		orders = append(orders, processor.Order{Player: i, Action: chosen})
		log.Debug().
			Int("player", i).
			Str("action", chosen.String()).
			Msg("Generated random order")
	}
	return orders
}

package montecarlo

import (
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/obelisk/internal/game"
	"github.com/mitchelldurbincs/obelisk/internal/game/core"
	"github.com/mitchelldurbincs/obelisk/internal/game/rules"
	"github.com/mitchelldurbincs/obelisk/internal/policy"
)

// Simulate plays a rollout from players and returns the final state.
//
// players is advanced in place with the round-0 actions, then pol drives every
// player for up to maxRounds-1 further rounds; the rollout stops early as soon as
// someone has won. The policy sees round+roundOffset as the round number and the
// player's own actions so far. pins, when non-empty, override the policy in
// every round after the first while they stay legal.
func Simulate(players []core.Player, round0 []core.Action, pol policy.Policy, rng *rand.Rand, maxRounds, roundOffset int, pins Constraints) []core.Player {
	final, _ := simulate(players, round0, pol, rng, maxRounds, roundOffset, pins)
	return final
}

// simulate is Simulate that also returns how many rounds were advanced.
func simulate(players []core.Player, round0 []core.Action, pol policy.Policy, rng *rand.Rand, maxRounds, roundOffset int, pins Constraints) ([]core.Player, int) {
	actions := append([]core.Action(nil), round0...)
	players = game.Advance(players, actions)
	advanced := 1

	history := make([][]core.Action, len(players))
	for i, a := range actions {
		history[i] = make([]core.Action, 1, max(maxRounds, 1))
		history[i][0] = a
	}

	var legal *rules.LegalMoveCalculator
	if len(pins) > 0 {
		legal = rules.NewLegalMoveCalculator()
	}

	for round := 1; round < maxRounds; round++ {
		if core.AnyWon(players) {
			break
		}

		for i := range players {
			actions[i] = pol.ChooseAction(players, i, round+roundOffset, history[i], rng)
		}
		if legal != nil {
			pins.applyLegal(players, actions, legal)
		}
		for i, a := range actions {
			history[i] = append(history[i], a)
		}

		players = game.Advance(players, actions)
		advanced++
	}

	return players, advanced
}

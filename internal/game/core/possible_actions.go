package core

import "iter"

// Others yields every player except the one at index, in index order.
func Others(players []Player, index int) iter.Seq2[int, Player] {
	return func(yield func(int, Player) bool) {
		for i, p := range players {
			if i == index {
				continue
			}
			if !yield(i, p) {
				return
			}
		}
	}
}

// PossibleActions lists every legal action for p. The order is stable and callers
// rely on it to break ties: Recruit, Skip, Wall, Defend, Barracks, Obelisk, then
// one Attack per playable opponent.
func PossibleActions(p Player, others iter.Seq2[int, Player]) []Action {
	if !p.CanPlay() {
		return []Action{None()}
	}

	actions := make([]Action, 0, 8)
	actions = append(actions, Recruit(), Skip())
	if p.Walls < MaxWalls {
		actions = append(actions, Wall())
	}
	if p.Walls > 0 {
		actions = append(actions, Defend())
	}
	if p.Barracks < MaxBarracks {
		actions = append(actions, Barracks())
	}
	if p.Obelisks < MaxObelisks {
		actions = append(actions, Obelisk())
	}
	if p.Soldiers > 0 {
		for n, other := range others {
			if other.CanPlay() {
				actions = append(actions, Attack(n))
			}
		}
	}
	return actions
}

// PossibleActionsFor is PossibleActions for the player at index within players.
func PossibleActionsFor(players []Player, index int) []Action {
	return PossibleActions(players[index], Others(players, index))
}

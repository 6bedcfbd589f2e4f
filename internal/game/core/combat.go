package core

import (
	"fmt"
	"slices"
)

// CombatOutcome summarizes one resolved engagement.
type CombatOutcome struct {
	Besieged bool
	Lead     int // index into the attackers slice, -1 when the rivalry left nobody standing
}

// ResolveCombat resolves every attack aimed at defender in one engagement.
// The players are the caller's private copies; ResolveCombat mutates them in place.
//
// Attackers first fight each other for the lead: the strongest keeps its soldiers
// minus those of the runner-up and every other attacker is wiped out. The lead then
// breaks the walls, fights the garrison unless it is busy, and besieges the
// defender if any of its soldiers are left.
func ResolveCombat(defender *Player, attackers []*Player) CombatOutcome {
	if len(attackers) == 0 {
		panic("combat: no attackers")
	}
	for i, a := range attackers {
		if a.Soldiers == 0 {
			panic(fmt.Sprintf("combat: attacker %d has no soldiers", i))
		}
	}

	lead := 0
	if len(attackers) > 1 {
		order := make([]int, len(attackers))
		for i := range order {
			order[i] = i
		}
		// Stable so equal armies keep their attack order.
		slices.SortStableFunc(order, func(a, b int) int {
			sa, sb := attackers[a].Soldiers, attackers[b].Soldiers
			switch {
			case sa > sb:
				return -1
			case sa < sb:
				return 1
			}
			return 0
		})
		lead = order[0]
		attackers[lead].Soldiers -= attackers[order[1]].Soldiers
		for _, i := range order[1:] {
			attackers[i].Soldiers = 0
		}
	}

	attacker := attackers[lead]
	if attacker.Soldiers == 0 {
		return CombatOutcome{Lead: -1}
	}

	m := defender.WallMultiplier()
	eff := defender.EffectiveWalls()
	if attacker.Soldiers <= eff {
		defender.Walls = uint8((eff - attacker.Soldiers) / m)
		attacker.Soldiers = 0
		return CombatOutcome{Lead: lead}
	}
	attacker.Soldiers -= eff
	defender.Walls = 0

	if defender.Soldiers > 0 && !defender.Busy {
		fallen := min(defender.Soldiers, attacker.Soldiers)
		defender.Soldiers -= fallen
		attacker.Soldiers -= fallen
	}

	if attacker.Soldiers == 0 {
		return CombatOutcome{Lead: lead}
	}

	defender.Sieged = true
	defender.Defeats++
	defender.Obelisks--
	attacker.Victories++
	attacker.Obelisks++
	return CombatOutcome{Besieged: true, Lead: lead}
}

package game

import (
	"fmt"

	"github.com/mitchelldurbincs/obelisk/internal/game/core"
)

// engagement is one defender and everyone attacking it this round. The defender
// is never among the attackers and no attacker appears twice, so the rows it
// touches are a disjoint subset of the state.
type engagement struct {
	defender  int
	attackers []int
}

func newEngagement(defender int, attackers []int) engagement {
	if len(attackers) == 0 {
		panic("engagement: no attackers")
	}
	for i, a := range attackers {
		if a == defender {
			panic(fmt.Sprintf("engagement: player %d attacks itself", a))
		}
		for _, b := range attackers[:i] {
			if a == b {
				panic(fmt.Sprintf("engagement: player %d attacks player %d twice", a, defender))
			}
		}
	}
	return engagement{defender: defender, attackers: attackers}
}

// resolve copies the participating rows out of players, resolves the combat on
// the copies and writes them back by index.
func (e engagement) resolve(players []core.Player) core.CombatOutcome {
	defender := players[e.defender]
	rows := make([]core.Player, len(e.attackers))
	ptrs := make([]*core.Player, len(e.attackers))
	for i, a := range e.attackers {
		rows[i] = players[a]
		ptrs[i] = &rows[i]
	}

	outcome := core.ResolveCombat(&defender, ptrs)

	players[e.defender] = defender
	for i, a := range e.attackers {
		players[a] = rows[i]
	}
	return outcome
}

type engagementRows struct {
	defender  core.Player
	attackers []core.Player
}

func snapshotRows(players []core.Player, e engagement) engagementRows {
	rows := engagementRows{defender: players[e.defender], attackers: make([]core.Player, len(e.attackers))}
	for i, a := range e.attackers {
		rows.attackers[i] = players[a]
	}
	return rows
}

func (e engagement) report(before engagementRows, players []core.Player, outcome core.CombatOutcome) CombatReport {
	after := players[e.defender]
	r := CombatReport{
		Defender:       e.defender,
		Attackers:      append([]int(nil), e.attackers...),
		Lead:           -1,
		Besieged:       outcome.Besieged,
		WallsLost:      int(before.defender.Walls) - int(after.Walls),
		DefenderLosses: int(before.defender.Soldiers) - int(after.Soldiers),
	}
	if outcome.Lead >= 0 {
		r.Lead = e.attackers[outcome.Lead]
	}
	for i, a := range e.attackers {
		r.AttackerLosses += int(before.attackers[i].Soldiers) - int(players[a].Soldiers)
	}
	return r
}

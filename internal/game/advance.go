package game

import (
	"fmt"

	"github.com/mitchelldurbincs/obelisk/internal/game/core"
)

// CombatReport describes one engagement resolved during a round.
type CombatReport struct {
	Defender       int
	Attackers      []int // player indices, in index order
	Lead           int   // player index of the surviving attacker, -1 if none
	Besieged       bool
	WallsLost      int
	DefenderLosses int
	AttackerLosses int
}

// ConstructionTally counts what the construction phase of a round produced.
type ConstructionTally struct {
	Walls     int
	Barracks  int
	Obelisks  int
	Recruited int
	Blocked   int // build orders that failed because the builder was besieged
}

// RoundReport is everything AdvanceWithReport observed while resolving a round.
type RoundReport struct {
	Combats      []CombatReport
	Construction ConstructionTally
}

// Advance resolves one simultaneous round. actions[i] is the order of players[i].
//
// Advance takes ownership of players: the slice is updated in place and returned.
// Callers that need the previous state must clone it first. Structural violations
// (length mismatch, an order from a player that cannot play, an attack on a player
// that cannot play) panic.
func Advance(players []core.Player, actions []core.Action) []core.Player {
	advance(players, actions, nil)
	return players
}

// AdvanceWithReport is Advance that also reports the engagements and construction.
func AdvanceWithReport(players []core.Player, actions []core.Action) ([]core.Player, RoundReport) {
	var report RoundReport
	advance(players, actions, &report)
	return players, report
}

func advance(players []core.Player, actions []core.Action, report *RoundReport) {
	if len(players) != len(actions) {
		panic(fmt.Sprintf("advance: %d players but %d actions", len(players), len(actions)))
	}

	for i := range players {
		p := &players[i]
		if !p.CanPlay() && !actions[i].IsNone() {
			panic(fmt.Sprintf("advance: player %d cannot play but was given %s", i, actions[i]))
		}
		if a := actions[i]; a.Type == core.ActionAttack {
			if a.Target < 0 || a.Target >= len(players) {
				panic(fmt.Sprintf("advance: player %d attacks unknown player %d", i, a.Target))
			}
			if !players[a.Target].CanPlay() {
				panic(fmt.Sprintf("advance: player %d attacks player %d who cannot play", i, a.Target))
			}
		}
	}

	applyDefense(players, actions)
	resolveCombat(players, actions, report)
	applyConstruction(players, actions, report)
}

func applyDefense(players []core.Player, actions []core.Action) {
	for i := range players {
		p := &players[i]
		if actions[i].Type == core.ActionDefend {
			p.Defense = core.DefenseDuration
		} else if p.Defense > 0 {
			p.Defense--
		}
		p.Busy = actions[i].MakesBusy()
	}
}

func resolveCombat(players []core.Player, actions []core.Action, report *RoundReport) {
	var attackers []int
	for n := range players {
		attackers = attackers[:0]
		for i, a := range actions {
			if i != n && a.Attacks(n) {
				attackers = append(attackers, i)
			}
		}
		if len(attackers) == 0 {
			continue
		}

		e := newEngagement(n, attackers)
		if report == nil {
			e.resolve(players)
			continue
		}

		before := snapshotRows(players, e)
		outcome := e.resolve(players)
		report.Combats = append(report.Combats, e.report(before, players, outcome))
	}
}

func applyConstruction(players []core.Player, actions []core.Action, report *RoundReport) {
	var tally ConstructionTally
	for i := range players {
		p := &players[i]
		switch actions[i].Type {
		case core.ActionWall:
			if build(&p.Walls, core.MaxWalls, p.Sieged, &tally) {
				tally.Walls++
			}
		case core.ActionBarracks:
			if build(&p.Barracks, core.MaxBarracks, p.Sieged, &tally) {
				tally.Barracks++
			}
		case core.ActionObelisk:
			if build(&p.Obelisks, core.MaxObelisks, p.Sieged, &tally) {
				tally.Obelisks++
			}
		case core.ActionRecruit:
			p.Soldiers += uint32(p.Barracks)
			tally.Recruited += int(p.Barracks)
		case core.ActionSkip:
			p.Soldiers++
			tally.Recruited++
		case core.ActionNone:
			if p.CanPlay() {
				panic(fmt.Sprintf("advance: player %d can play but was given None", i))
			}
		}

		p.Busy = false
		p.Sieged = false
	}
	if report != nil {
		report.Construction = tally
	}
}

func build(level *uint8, limit uint8, sieged bool, tally *ConstructionTally) bool {
	if *level >= limit {
		return false
	}
	if sieged {
		tally.Blocked++
		return false
	}
	*level++
	return true
}

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/obelisk/internal/game/core"
)

func v(walls uint8, soldiers uint32, barracks, obelisks, defense uint8) core.Player {
	return core.NewPlayerWithValues(walls, soldiers, barracks, obelisks, defense)
}

func assertPlayers(t *testing.T, expected, got []core.Player) {
	t.Helper()
	require.Len(t, got, len(expected))
	for i := range expected {
		assert.True(t, expected[i].Equal(got[i]), "player %d: expected %+v, got %+v", i, expected[i], got[i])
	}
}

func TestAdvance_TwoRoundsOfBuilding(t *testing.T) {
	state := make([]core.Player, 12)
	for i := range state {
		state[i] = core.NewPlayer()
	}

	state = Advance(state, []core.Action{
		core.Wall(), core.Barracks(), core.Barracks(), core.Obelisk(),
		core.Barracks(), core.Skip(), core.Barracks(), core.Wall(),
		core.Wall(), core.Barracks(), core.Skip(), core.Skip(),
	})

	assertPlayers(t, []core.Player{
		v(2, 1, 1, 1, 0), v(1, 1, 2, 1, 0), v(1, 1, 2, 1, 0), v(1, 1, 1, 2, 0),
		v(1, 1, 2, 1, 0), v(1, 2, 1, 1, 0), v(1, 1, 2, 1, 0), v(2, 1, 1, 1, 0),
		v(2, 1, 1, 1, 0), v(1, 1, 2, 1, 0), v(1, 2, 1, 1, 0), v(1, 2, 1, 1, 0),
	}, state)

	state = Advance(state, []core.Action{
		core.Barracks(), core.Wall(), core.Wall(), core.Wall(),
		core.Wall(), core.Skip(), core.Wall(), core.Barracks(),
		core.Barracks(), core.Wall(), core.Barracks(), core.Barracks(),
	})

	assertPlayers(t, []core.Player{
		v(2, 1, 2, 1, 0), v(2, 1, 2, 1, 0), v(2, 1, 2, 1, 0), v(2, 1, 1, 2, 0),
		v(2, 1, 2, 1, 0), v(1, 3, 1, 1, 0), v(2, 1, 2, 1, 0), v(2, 1, 2, 1, 0),
		v(2, 1, 2, 1, 0), v(2, 1, 2, 1, 0), v(1, 2, 2, 1, 0), v(1, 2, 2, 1, 0),
	}, state)
}

func TestAdvance_RecruitAndDefense(t *testing.T) {
	state := []core.Player{v(1, 2, 3, 1, 0), v(2, 0, 1, 1, 1), v(1, 0, 1, 1, 0)}

	state = Advance(state, []core.Action{core.Recruit(), core.Skip(), core.Defend()})

	assertPlayers(t, []core.Player{v(1, 5, 3, 1, 0), v(2, 1, 1, 1, 0), v(1, 0, 1, 1, 2)}, state)

	state = Advance(state, []core.Action{core.Skip(), core.Skip(), core.Skip()})
	assert.Equal(t, uint8(1), state[2].Defense)
	state = Advance(state, []core.Action{core.Skip(), core.Skip(), core.Skip()})
	assert.Equal(t, uint8(0), state[2].Defense)
}

func TestAdvance_StructuresAreCapped(t *testing.T) {
	state := []core.Player{v(10, 0, 10, 9, 0), v(10, 0, 10, 9, 0), v(10, 0, 10, 9, 0)}

	state = Advance(state, []core.Action{core.Wall(), core.Barracks(), core.Obelisk()})

	assertPlayers(t, []core.Player{v(10, 0, 10, 9, 0), v(10, 0, 10, 9, 0), v(10, 0, 10, 10, 0)}, state)
	assert.True(t, state[2].Won())
}

func TestAdvance_SingleAttackerAbsorbedByWalls(t *testing.T) {
	state := []core.Player{v(5, 0, 1, 1, 0), v(0, 3, 1, 1, 0)}

	state = Advance(state, []core.Action{core.Skip(), core.Attack(0)})

	// Walls absorb all 3 soldiers, then the defender's Skip adds one soldier.
	assertPlayers(t, []core.Player{v(2, 1, 1, 1, 0), v(0, 0, 1, 1, 0)}, state)
}

func TestAdvance_SiegeBlocksConstruction(t *testing.T) {
	state := []core.Player{v(0, 0, 1, 2, 0), v(0, 5, 1, 1, 0)}

	state = Advance(state, []core.Action{core.Obelisk(), core.Attack(0)})

	assertPlayers(t, []core.Player{v(0, 0, 1, 1, 0), v(0, 5, 1, 2, 0)}, state)
	assert.False(t, state[0].Sieged, "per-round flags are cleared")
	assert.False(t, state[1].Busy)
	assert.Equal(t, 1, state[0].Defeats)
	assert.Equal(t, 1, state[1].Victories)
}

func TestAdvance_BusyDefenderKeepsSoldiers(t *testing.T) {
	// Player 0 attacks player 2 while player 1 attacks player 0.
	state := []core.Player{v(0, 10, 1, 2, 0), v(0, 3, 1, 1, 0), v(5, 0, 1, 1, 0)}

	state = Advance(state, []core.Action{core.Attack(2), core.Attack(0), core.Skip()})

	assertPlayers(t, []core.Player{
		v(0, 5, 1, 2, 0), // besieged by 1 while away, then besieged 2 after losing 5 to its walls
		v(0, 3, 1, 2, 0),
		v(0, 1, 1, 0, 0), // walls broken, besieged by 0, then Skip
	}, state)
}

func TestAdvance_ChainedAttacksAreOrderIndependent(t *testing.T) {
	// A cycle of attacks: every engagement must see the same effective state
	// whichever defender is resolved first.
	start := []core.Player{v(1, 6, 1, 3, 0), v(2, 4, 1, 3, 1), v(0, 9, 1, 3, 0), v(3, 2, 2, 3, 0)}
	actions := []core.Action{core.Attack(1), core.Attack(2), core.Attack(0), core.Attack(0)}

	got := Advance(core.ClonePlayers(start), actions)

	// Resolve the same engagements against the post-defense snapshot in reverse order.
	expected := core.ClonePlayers(start)
	applyDefense(expected, actions)
	for n := len(expected) - 1; n >= 0; n-- {
		var attackers []int
		for i, a := range actions {
			if a.Attacks(n) {
				attackers = append(attackers, i)
			}
		}
		if len(attackers) > 0 {
			newEngagement(n, attackers).resolve(expected)
		}
	}
	applyConstruction(expected, actions, nil)

	assertPlayers(t, expected, got)
	for i := range got {
		assert.Equal(t, expected[i].Victories, got[i].Victories)
		assert.Equal(t, expected[i].Defeats, got[i].Defeats)
	}
}

func TestAdvance_DoesNotTouchEliminatedPlayers(t *testing.T) {
	state := []core.Player{v(3, 3, 3, 0, 0), v(1, 1, 1, 1, 0)}

	state = Advance(state, []core.Action{core.None(), core.Skip()})

	assertPlayers(t, []core.Player{v(3, 3, 3, 0, 0), v(1, 2, 1, 1, 0)}, state)
}

func TestAdvance_Panics(t *testing.T) {
	tests := []struct {
		name    string
		players []core.Player
		actions []core.Action
	}{
		{"length mismatch", []core.Player{core.NewPlayer()}, []core.Action{core.Skip(), core.Skip()}},
		{"eliminated player acting", []core.Player{v(1, 1, 1, 0, 0), core.NewPlayer()}, []core.Action{core.Wall(), core.Skip()}},
		{"attack on eliminated player", []core.Player{v(1, 1, 1, 0, 0), core.NewPlayer()}, []core.Action{core.None(), core.Attack(0)}},
		{"attack on unknown player", []core.Player{core.NewPlayer()}, []core.Action{core.Attack(4)}},
		{"None for a playing player", []core.Player{core.NewPlayer()}, []core.Action{core.None()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { Advance(tt.players, tt.actions) })
		})
	}
}

func TestAdvance_SelfAttackOnlyKeepsGarrisonBusy(t *testing.T) {
	state := []core.Player{v(1, 4, 1, 1, 0), v(0, 9, 1, 1, 0)}

	state, report := AdvanceWithReport(state, []core.Action{core.Attack(0), core.Attack(0)})

	require.Len(t, report.Combats, 1)
	assert.Equal(t, []int{1}, report.Combats[0].Attackers)
	assert.True(t, report.Combats[0].Besieged, "busy garrison does not fight back")
	assertPlayers(t, []core.Player{v(0, 4, 1, 0, 0), v(0, 8, 1, 2, 0)}, state)
}

func TestAdvanceWithReport(t *testing.T) {
	state := []core.Player{v(1, 3, 1, 1, 0), v(1, 2, 1, 1, 0), v(1, 7, 1, 1, 0), v(0, 0, 2, 1, 0)}

	state, report := AdvanceWithReport(state, []core.Action{core.Wall(), core.Attack(0), core.Attack(0), core.Recruit()})

	require.Len(t, report.Combats, 1)
	c := report.Combats[0]
	assert.Equal(t, 0, c.Defender)
	assert.Equal(t, []int{1, 2}, c.Attackers)
	assert.Equal(t, 2, c.Lead)
	assert.True(t, c.Besieged)
	assert.Equal(t, 1, c.WallsLost)
	assert.Equal(t, 3, c.DefenderLosses)
	assert.Equal(t, 8, c.AttackerLosses)

	assert.Equal(t, ConstructionTally{Recruited: 2, Blocked: 1}, report.Construction)
	assertPlayers(t, []core.Player{v(0, 0, 1, 0, 0), v(1, 0, 1, 1, 0), v(1, 1, 1, 2, 0), v(0, 2, 2, 1, 0)}, state)
}

func TestNewEngagement_Panics(t *testing.T) {
	assert.Panics(t, func() { newEngagement(0, nil) })
	assert.Panics(t, func() { newEngagement(1, []int{0, 1}) })
	assert.Panics(t, func() { newEngagement(2, []int{0, 1, 0}) })
	assert.NotPanics(t, func() { newEngagement(2, []int{0, 1, 3}) })
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrs(players []Player) []*Player {
	out := make([]*Player, len(players))
	for i := range players {
		out[i] = &players[i]
	}
	return out
}

func TestResolveCombat(t *testing.T) {
	tests := []struct {
		name              string
		defender          Player
		attackers         []Player
		expectedDefender  Player
		expectedAttackers []Player
		expectedOutcome   CombatOutcome
	}{
		{
			name:              "single attacker repelled by garrison",
			defender:          NewPlayerWithValues(1, 3, 1, 1, 0),
			attackers:         []Player{NewPlayerWithValues(1, 2, 1, 1, 0)},
			expectedDefender:  NewPlayerWithValues(0, 2, 1, 1, 0),
			expectedAttackers: []Player{NewPlayerWithValues(1, 0, 1, 1, 0)},
			expectedOutcome:   CombatOutcome{Lead: 0},
		},
		{
			name:              "single attacker besieges",
			defender:          NewPlayerWithValues(1, 3, 1, 1, 0),
			attackers:         []Player{NewPlayerWithValues(1, 5, 1, 1, 0)},
			expectedDefender:  NewPlayerWithValues(0, 0, 1, 0, 0),
			expectedAttackers: []Player{NewPlayerWithValues(1, 1, 1, 2, 0)},
			expectedOutcome:   CombatOutcome{Besieged: true, Lead: 0},
		},
		{
			name:              "single attacker draw",
			defender:          NewPlayerWithValues(1, 3, 1, 1, 0),
			attackers:         []Player{NewPlayerWithValues(1, 4, 1, 1, 0)},
			expectedDefender:  NewPlayerWithValues(0, 0, 1, 1, 0),
			expectedAttackers: []Player{NewPlayerWithValues(1, 0, 1, 1, 0)},
			expectedOutcome:   CombatOutcome{Lead: 0},
		},
		{
			name:     "two attackers, stronger one besieges",
			defender: NewPlayerWithValues(1, 3, 1, 1, 0),
			attackers: []Player{
				NewPlayerWithValues(1, 2, 1, 1, 0),
				NewPlayerWithValues(1, 7, 1, 1, 0),
			},
			expectedDefender: NewPlayerWithValues(0, 0, 1, 0, 0),
			expectedAttackers: []Player{
				NewPlayerWithValues(1, 0, 1, 1, 0),
				NewPlayerWithValues(1, 1, 1, 2, 0),
			},
			expectedOutcome: CombatOutcome{Besieged: true, Lead: 1},
		},
		{
			name:     "two equal attackers annihilate each other",
			defender: NewPlayerWithValues(1, 3, 1, 1, 0),
			attackers: []Player{
				NewPlayerWithValues(1, 2, 1, 1, 0),
				NewPlayerWithValues(1, 2, 1, 1, 0),
			},
			expectedDefender: NewPlayerWithValues(1, 3, 1, 1, 0),
			expectedAttackers: []Player{
				NewPlayerWithValues(1, 0, 1, 1, 0),
				NewPlayerWithValues(1, 0, 1, 1, 0),
			},
			expectedOutcome: CombatOutcome{Lead: -1},
		},
		{
			name:     "two attackers, rivalry then draw",
			defender: NewPlayerWithValues(1, 3, 1, 1, 0),
			attackers: []Player{
				NewPlayerWithValues(1, 2, 1, 1, 0),
				NewPlayerWithValues(1, 6, 1, 1, 0),
			},
			expectedDefender: NewPlayerWithValues(0, 0, 1, 1, 0),
			expectedAttackers: []Player{
				NewPlayerWithValues(1, 0, 1, 1, 0),
				NewPlayerWithValues(1, 0, 1, 1, 0),
			},
			expectedOutcome: CombatOutcome{Lead: 1},
		},
		{
			name:     "three attackers",
			defender: NewPlayerWithValues(2, 2, 2, 3, 0),
			attackers: []Player{
				NewPlayerWithValues(3, 20, 3, 2, 0),
				NewPlayerWithValues(2, 15, 2, 1, 0),
				NewPlayerWithValues(1, 13, 3, 1, 0),
			},
			expectedDefender: NewPlayerWithValues(0, 0, 2, 2, 0),
			expectedAttackers: []Player{
				NewPlayerWithValues(3, 1, 3, 3, 0),
				NewPlayerWithValues(2, 0, 2, 1, 0),
				NewPlayerWithValues(1, 0, 3, 1, 0),
			},
			expectedOutcome: CombatOutcome{Besieged: true, Lead: 0},
		},
		{
			name:              "walls absorb the whole attack",
			defender:          NewPlayerWithValues(5, 1, 1, 1, 0),
			attackers:         []Player{NewPlayerWithValues(1, 3, 1, 1, 0)},
			expectedDefender:  NewPlayerWithValues(2, 1, 1, 1, 0),
			expectedAttackers: []Player{NewPlayerWithValues(1, 0, 1, 1, 0)},
			expectedOutcome:   CombatOutcome{Lead: 0},
		},
		{
			name:              "defended walls lose one per two soldiers",
			defender:          NewPlayerWithValues(3, 1, 1, 1, 2),
			attackers:         []Player{NewPlayerWithValues(1, 3, 1, 1, 0)},
			expectedDefender:  NewPlayerWithValues(1, 1, 1, 1, 2),
			expectedAttackers: []Player{NewPlayerWithValues(1, 0, 1, 1, 0)},
			expectedOutcome:   CombatOutcome{Lead: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defender := tt.defender
			attackers := ClonePlayers(tt.attackers)

			outcome := ResolveCombat(&defender, ptrs(attackers))

			assert.Equal(t, tt.expectedOutcome, outcome)
			assert.True(t, tt.expectedDefender.Equal(defender), "defender: got %+v", defender)
			for i := range attackers {
				assert.True(t, tt.expectedAttackers[i].Equal(attackers[i]), "attacker %d: got %+v", i, attackers[i])
			}
			assert.Equal(t, tt.expectedOutcome.Besieged, defender.Sieged)
		})
	}
}

func TestResolveCombat_SiegeCounters(t *testing.T) {
	defender := NewPlayerWithValues(0, 0, 1, 2, 0)
	attacker := NewPlayerWithValues(0, 4, 1, 1, 0)

	outcome := ResolveCombat(&defender, []*Player{&attacker})

	require.True(t, outcome.Besieged)
	assert.Equal(t, 1, defender.Defeats)
	assert.Equal(t, 1, attacker.Victories)
	assert.Equal(t, uint8(1), defender.Obelisks)
	assert.Equal(t, uint8(2), attacker.Obelisks)
	assert.Equal(t, uint32(4), attacker.Soldiers)
}

func TestResolveCombat_BusyGarrisonDoesNotFight(t *testing.T) {
	defender := NewPlayerWithValues(1, 10, 1, 1, 0)
	defender.Busy = true
	attacker := NewPlayerWithValues(1, 3, 1, 1, 0)

	outcome := ResolveCombat(&defender, []*Player{&attacker})

	assert.True(t, outcome.Besieged)
	assert.Equal(t, uint32(10), defender.Soldiers, "busy soldiers are never lost")
	assert.Equal(t, uint32(2), attacker.Soldiers)
	assert.Equal(t, uint8(0), defender.Obelisks)
}

func TestResolveCombat_SoldiersAreConserved(t *testing.T) {
	// Every soldier lost by one side is matched by walls or soldiers lost on the other.
	for walls := uint8(0); walls <= 4; walls++ {
		for def := uint32(0); def <= 6; def++ {
			for att := uint32(1); att <= 12; att++ {
				defender := NewPlayerWithValues(walls, def, 1, 1, 0)
				attacker := NewPlayerWithValues(0, att, 1, 1, 0)

				ResolveCombat(&defender, []*Player{&attacker})

				attackerLoss := att - attacker.Soldiers
				defenderLoss := uint32(walls-defender.Walls) + (def - defender.Soldiers)
				assert.Equal(t, attackerLoss, defenderLoss, "walls=%d def=%d att=%d", walls, def, att)
			}
		}
	}
}

func TestResolveCombat_Panics(t *testing.T) {
	t.Run("no attackers", func(t *testing.T) {
		defender := NewPlayer()
		assert.Panics(t, func() { ResolveCombat(&defender, nil) })
	})

	t.Run("attacker without soldiers", func(t *testing.T) {
		defender := NewPlayer()
		attacker := NewPlayerWithValues(1, 0, 1, 1, 0)
		assert.Panics(t, func() { ResolveCombat(&defender, []*Player{&attacker}) })
	})
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPossibleActions(t *testing.T) {
	tests := []struct {
		name     string
		players  []Player
		index    int
		expected []Action
	}{
		{
			name:     "starting position",
			players:  []Player{NewPlayer(), NewPlayer(), NewPlayer()},
			index:    1,
			expected: []Action{Recruit(), Skip(), Wall(), Defend(), Barracks(), Obelisk(), Attack(0), Attack(2)},
		},
		{
			name:     "no walls means no defend",
			players:  []Player{NewPlayerWithValues(0, 1, 1, 1, 0), NewPlayer()},
			index:    0,
			expected: []Action{Recruit(), Skip(), Wall(), Barracks(), Obelisk(), Attack(1)},
		},
		{
			name:     "capped structures",
			players:  []Player{NewPlayerWithValues(10, 1, 10, 9, 0), NewPlayer()},
			index:    0,
			expected: []Action{Recruit(), Skip(), Defend(), Obelisk(), Attack(1)},
		},
		{
			name:     "no soldiers means no attack",
			players:  []Player{NewPlayerWithValues(1, 0, 1, 1, 0), NewPlayer()},
			index:    0,
			expected: []Action{Recruit(), Skip(), Wall(), Defend(), Barracks(), Obelisk()},
		},
		{
			name:     "eliminated opponents cannot be attacked",
			players:  []Player{NewPlayer(), NewPlayerWithValues(1, 1, 1, 0, 0), NewPlayer()},
			index:    0,
			expected: []Action{Recruit(), Skip(), Wall(), Defend(), Barracks(), Obelisk(), Attack(2)},
		},
		{
			name:     "eliminated player only has None",
			players:  []Player{NewPlayerWithValues(1, 5, 1, 0, 0), NewPlayer()},
			index:    0,
			expected: []Action{None()},
		},
		{
			name:     "winner only has None",
			players:  []Player{NewPlayerWithValues(1, 5, 1, 10, 0), NewPlayer()},
			index:    0,
			expected: []Action{None()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PossibleActions(tt.players[tt.index], Others(tt.players, tt.index))
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.expected, PossibleActionsFor(tt.players, tt.index))
		})
	}
}

func TestOthers_SkipsIndexAndStopsEarly(t *testing.T) {
	players := []Player{NewPlayer(), NewPlayer(), NewPlayer(), NewPlayer()}

	var seen []int
	for i := range Others(players, 2) {
		seen = append(seen, i)
	}
	assert.Equal(t, []int{0, 1, 3}, seen)

	seen = seen[:0]
	for i := range Others(players, 0) {
		seen = append(seen, i)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, seen)
}

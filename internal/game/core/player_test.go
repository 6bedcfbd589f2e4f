package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPlayer_StartingResources(t *testing.T) {
	p := NewPlayer()

	assert.Equal(t, uint8(1), p.Walls)
	assert.Equal(t, uint32(1), p.Soldiers)
	assert.Equal(t, uint8(1), p.Barracks)
	assert.Equal(t, uint8(1), p.Obelisks)
	assert.Equal(t, uint8(0), p.Defense)
	assert.True(t, p.CanPlay())
}

func TestPlayer_WonLostCanPlay(t *testing.T) {
	tests := []struct {
		name     string
		obelisks uint8
		won      bool
		lost     bool
	}{
		{"no obelisk", 0, false, true},
		{"one obelisk", 1, false, false},
		{"nine obelisks", 9, false, false},
		{"ten obelisks", 10, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayerWithValues(1, 1, 1, tt.obelisks, 0)
			assert.Equal(t, tt.won, p.Won())
			assert.Equal(t, tt.lost, p.Lost())
			assert.Equal(t, !tt.won && !tt.lost, p.CanPlay())
		})
	}
}

func TestPlayer_Strength(t *testing.T) {
	assert.Equal(t, uint32(7), NewPlayerWithValues(3, 4, 1, 1, 0).Strength())
	assert.Equal(t, uint32(10), NewPlayerWithValues(3, 4, 1, 1, 1).Strength())
	assert.Equal(t, uint32(6), NewPlayerWithValues(3, 4, 1, 1, 2).EffectiveWalls())
}

func TestPlayer_EqualIgnoresRoundFlagsAndCounters(t *testing.T) {
	a := NewPlayerWithValues(2, 3, 4, 5, 1)
	b := a
	b.Busy = true
	b.Sieged = true
	b.Victories = 3
	b.Defeats = 2
	assert.True(t, a.Equal(b))

	b.Defense = 0
	assert.False(t, a.Equal(b))
}

func TestClonePlayers_IsIndependent(t *testing.T) {
	original := []Player{NewPlayer(), NewPlayer()}
	clone := ClonePlayers(original)
	clone[0].Soldiers = 99

	assert.Equal(t, uint32(1), original[0].Soldiers)
	assert.Len(t, clone, 2)
}

func TestAnyWonAndCountPlaying(t *testing.T) {
	players := []Player{
		NewPlayerWithValues(1, 1, 1, 0, 0),
		NewPlayer(),
		NewPlayer(),
	}
	assert.False(t, AnyWon(players))
	assert.Equal(t, 2, CountPlaying(players))

	players[2].Obelisks = MaxObelisks
	assert.True(t, AnyWon(players))
	assert.Equal(t, 1, CountPlaying(players))
}

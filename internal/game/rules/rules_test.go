package rules

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/obelisk/internal/game/core"
)

func TestCheckGameOver(t *testing.T) {
	tests := []struct {
		name       string
		players    []core.Player
		wantOver   bool
		wantWinner int
	}{
		{
			name:       "everybody still playing",
			players:    []core.Player{core.NewPlayer(), core.NewPlayer()},
			wantOver:   false,
			wantWinner: -1,
		},
		{
			name: "one survivor keeps playing",
			players: []core.Player{
				core.NewPlayerWithValues(1, 1, 1, 0, 0),
				core.NewPlayer(),
			},
			wantOver:   false,
			wantWinner: -1,
		},
		{
			name: "lowest index winner",
			players: []core.Player{
				core.NewPlayer(),
				core.NewPlayerWithValues(1, 1, 1, 10, 0),
				core.NewPlayerWithValues(1, 1, 1, 10, 0),
			},
			wantOver:   true,
			wantWinner: 1,
		},
		{
			name: "nobody left",
			players: []core.Player{
				core.NewPlayerWithValues(1, 1, 1, 0, 0),
				core.NewPlayerWithValues(1, 1, 1, 0, 0),
			},
			wantOver:   true,
			wantWinner: -1,
		},
	}

	wc := NewWinConditionChecker(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			over, winner := wc.CheckGameOver(tt.players)
			assert.Equal(t, tt.wantOver, over)
			assert.Equal(t, tt.wantWinner, winner)
		})
	}
}

func TestEliminated(t *testing.T) {
	before := []core.Player{core.NewPlayer(), core.NewPlayer(), core.NewPlayerWithValues(1, 1, 1, 0, 0)}
	after := core.ClonePlayers(before)
	after[1].Obelisks = 0

	assert.Equal(t, []int{1}, Eliminated(before, after))
	assert.Empty(t, Eliminated(before, before))
}

func TestValidateAction(t *testing.T) {
	players := []core.Player{
		core.NewPlayerWithValues(0, 1, 1, 1, 0),
		core.NewPlayer(),
		core.NewPlayerWithValues(1, 1, 1, 0, 0),
	}
	lmc := NewLegalMoveCalculator()

	tests := []struct {
		name    string
		index   int
		action  core.Action
		wantErr error
	}{
		{"legal build", 0, core.Wall(), nil},
		{"legal attack", 0, core.Attack(1), nil},
		{"defend without walls", 0, core.Defend(), core.ErrIllegalAction},
		{"attack eliminated player", 0, core.Attack(2), core.ErrIllegalAction},
		{"attack self", 1, core.Attack(1), core.ErrIllegalAction},
		{"None while playing", 1, core.None(), core.ErrIllegalAction},
		{"eliminated player with None", 2, core.None(), nil},
		{"eliminated player building", 2, core.Wall(), core.ErrCannotPlay},
		{"index out of range", 3, core.Skip(), core.ErrInvalidPlayer},
		{"negative index", -1, core.Skip(), core.ErrInvalidPlayer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lmc.ValidateAction(players, tt.index, tt.action)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestActionMask(t *testing.T) {
	players := []core.Player{
		core.NewPlayerWithValues(0, 1, 10, 1, 0),
		core.NewPlayer(),
		core.NewPlayerWithValues(1, 1, 1, 0, 0),
	}
	lmc := NewLegalMoveCalculator()

	mask := lmc.ActionMask(players, 0)

	assert.Equal(t, []bool{
		true,  // Recruit
		true,  // Skip
		true,  // Wall
		false, // Defend
		false, // Barracks
		true,  // Obelisk
		false, // Attack(0)
		true,  // Attack(1)
		false, // Attack(2)
	}, mask)
	assert.Equal(t, MaskSize(3), len(mask))
	assert.Equal(t, -1, MaskIndex(core.None()))
	assert.Equal(t, 8, MaskIndex(core.Attack(2)))
}

func TestActionMask_EliminatedPlayerHasNoLegalSlot(t *testing.T) {
	players := []core.Player{core.NewPlayerWithValues(1, 1, 1, 0, 0), core.NewPlayer()}

	mask := NewLegalMoveCalculator().ActionMask(players, 0)

	assert.NotContains(t, mask, true)
}

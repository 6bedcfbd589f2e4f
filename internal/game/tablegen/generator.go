package tablegen

import (
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/obelisk/internal/game"
	"github.com/mitchelldurbincs/obelisk/internal/game/core"
)

// TableConfig holds configuration for table generation
type TableConfig struct {
	PlayerCount  int
	Start        core.Player
	Players      []core.Player // starting table; PlayerCount copies of Start when nil
	WarmupRounds int     // random rounds played from the starting table
	IdleRatio    float64 // chance that a player Skips instead of picking a random legal action
	MinPlaying   int     // tables with fewer playing players are rejected
}

// DefaultTableConfig returns a sensible default configuration
func DefaultTableConfig(players int) TableConfig {
	return TableConfig{
		PlayerCount:  players,
		Start:        core.NewPlayer(),
		WarmupRounds: 12,
		IdleRatio:    0.2,
		MinPlaying:   2,
	}
}

// Generator builds mid-game tables with a deterministic RNG
type Generator struct {
	config TableConfig
	rng    *rand.Rand
}

// NewGenerator creates a new table generator
func NewGenerator(config TableConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateTable plays random rounds from the starting table and returns the result.
// Unless the starting table already breaks them, no player of the returned table has
// won and at least MinPlaying can still play. Also returns the number of rounds played.
func (g *Generator) GenerateTable() ([]core.Player, int) {
	maxAttempts := 10

	for attempts := 0; attempts < maxAttempts; attempts++ {
		players, rounds := g.warmup()
		if core.CountPlaying(players) >= g.minPlaying() {
			return players, rounds
		}
	}

	// Fallback: the starting table
	return g.startTable(), 0
}

func (g *Generator) minPlaying() int {
	return max(g.config.MinPlaying, 1)
}

func (g *Generator) startTable() []core.Player {
	if g.config.Players != nil {
		return core.ClonePlayers(g.config.Players)
	}
	players := make([]core.Player, g.config.PlayerCount)
	for i := range players {
		players[i] = g.config.Start
	}
	return players
}

// warmup plays up to WarmupRounds random rounds, stopping before a round that would
// produce a winner or leave too few players
func (g *Generator) warmup() ([]core.Player, int) {
	players := g.startTable()
	actions := make([]core.Action, len(players))

	for round := 0; round < g.config.WarmupRounds; round++ {
		for i := range players {
			actions[i] = g.randomAction(players, i)
		}

		next := game.Advance(core.ClonePlayers(players), actions)
		if core.AnyWon(next) || core.CountPlaying(next) < g.minPlaying() {
			return players, round
		}
		players = next
	}
	return players, g.config.WarmupRounds
}

func (g *Generator) randomAction(players []core.Player, i int) core.Action {
	if !players[i].CanPlay() {
		return core.None()
	}
	if g.rng.Float64() < g.config.IdleRatio {
		return core.Skip()
	}
	legal := core.PossibleActionsFor(players, i)
	return legal[g.rng.Intn(len(legal))]
}

package montecarlo

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/obelisk/internal/config"
	"github.com/mitchelldurbincs/obelisk/internal/game/core"
	"github.com/mitchelldurbincs/obelisk/internal/testutil"
)

func TestScenarioFromConfig(t *testing.T) {
	cfg := config.ScenarioConfig{
		Turn: 9,
		Players: []config.ScenarioPlayer{
			{Name: "red", Walls: 3, Soldiers: 7, Barracks: 2, Obelisks: 4},
			{Soldiers: 5, Obelisks: 2, Defense: 2},
		},
		Constraints: []string{"1=attack:0"},
		Targets:     []int{0},
	}

	s, err := ScenarioFromConfig(cfg, core.NewPlayer(), 4)

	require.NoError(t, err)
	assert.Equal(t, 9, s.Turn)
	assert.Equal(t, []string{"red", "P1"}, s.Names)
	assert.Equal(t, []core.Player{testutil.P(3, 7, 2, 4, 0), testutil.P(0, 5, 0, 2, 2)}, s.Players)
	assert.Equal(t, Constraints{{1, core.Attack(0)}}, s.Constraints)
	assert.Equal(t, []int{0}, s.Targets)
}

func TestScenarioFromConfig_DefaultTable(t *testing.T) {
	start := testutil.P(1, 1, 1, 1, 0)

	s, err := ScenarioFromConfig(config.ScenarioConfig{Targets: []int{}}, start, 3)

	require.NoError(t, err)
	assert.Equal(t, []core.Player{start, start, start}, s.Players)
	assert.Equal(t, []string{"P0", "P1", "P2"}, s.Names)
	assert.Nil(t, s.Targets, "no targets means every player")
	assert.Empty(t, s.Constraints)
}

func TestScenarioFromConfig_Errors(t *testing.T) {
	one := []config.ScenarioPlayer{{Soldiers: 1, Obelisks: 1}, {Obelisks: 1}}

	_, err := ScenarioFromConfig(config.ScenarioConfig{Players: []config.ScenarioPlayer{{Walls: 11, Obelisks: 1}}}, core.NewPlayer(), 2)
	assert.ErrorIs(t, err, core.ErrInvalidResource)

	_, err = ScenarioFromConfig(config.ScenarioConfig{Players: []config.ScenarioPlayer{{Soldiers: -1, Obelisks: 1}}}, core.NewPlayer(), 2)
	assert.ErrorIs(t, err, core.ErrInvalidResource)

	aboveUint32 := int64(math.MaxUint32) + 1
	_, err = ScenarioFromConfig(config.ScenarioConfig{Players: []config.ScenarioPlayer{{Soldiers: int(aboveUint32), Obelisks: 1}}}, core.NewPlayer(), 2)
	assert.ErrorIs(t, err, core.ErrInvalidResource, "soldier counts must fit a uint32")

	_, err = ScenarioFromConfig(config.ScenarioConfig{Players: one, Constraints: []string{"1=attack:0"}}, core.NewPlayer(), 2)
	assert.ErrorIs(t, err, ErrInvalidConstraint, "player 1 has no soldiers")

	_, err = ScenarioFromConfig(config.ScenarioConfig{Players: one, Targets: []int{2}}, core.NewPlayer(), 2)
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestScenario_WriteYAMLRoundTrips(t *testing.T) {
	cfg := config.ScenarioConfig{
		Turn: 3,
		Players: []config.ScenarioPlayer{
			{Name: "red", Walls: 2, Soldiers: 4, Barracks: 1, Obelisks: 5, Defense: 1},
			{Name: "blue", Soldiers: 6, Barracks: 3, Obelisks: 2},
		},
		Constraints: []string{"1=attack:0", "0=Defend"},
	}
	s, err := ScenarioFromConfig(cfg, core.NewPlayer(), 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.WriteYAML(&buf))

	var decoded struct {
		Scenario struct {
			Turn        int                     `yaml:"turn"`
			Players     []config.ScenarioPlayer `yaml:"players"`
			Constraints []string                `yaml:"constraints"`
		} `yaml:"scenario"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, 3, decoded.Scenario.Turn)
	assert.Equal(t, []string{"1=attack:0", "0=Defend"}, decoded.Scenario.Constraints)
	require.Len(t, decoded.Scenario.Players, 2)
	assert.Equal(t, "blue", decoded.Scenario.Players[1].Name)
	assert.Equal(t, 6, decoded.Scenario.Players[1].Soldiers)

	again, err := ScenarioFromConfig(config.ScenarioConfig{
		Turn:        decoded.Scenario.Turn,
		Players:     decoded.Scenario.Players,
		Constraints: decoded.Scenario.Constraints,
	}, core.NewPlayer(), 2)
	require.NoError(t, err)
	assert.Equal(t, s, again)
}

package montecarlo

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/obelisk/internal/game/core"
	"github.com/mitchelldurbincs/obelisk/internal/policy"
	"github.com/mitchelldurbincs/obelisk/internal/testutil"
)

func sampleReport(t *testing.T) Report {
	t.Helper()
	e := NewEvaluator(policy.Uniform{}, obeliskLoss, WithSamples(100), WithSeed(21))
	results := []Result{{
		Player: 0,
		Best:   core.Obelisk(),
		Candidates: []Candidate{
			{core.Recruit(), Estimate{Mean: 1, Variance: 0.25, Samples: 100}},
			{core.Obelisk(), Estimate{Mean: 0.5, Samples: 100}},
			{core.Attack(1), Estimate{Mean: 2, Variance: 1, Samples: 100}},
		},
	}}
	return NewReport(e, testutil.CreateTestPlayers(2), []string{"red", "blue"}, 7,
		Constraints{{1, core.Wall()}}, results, 1500*time.Millisecond)
}

func TestNewReport(t *testing.T) {
	r := sampleReport(t)

	assert.Equal(t, uint64(21), r.Seed)
	assert.Equal(t, 7, r.Turn)
	assert.Equal(t, 2, r.Playing)
	assert.Equal(t, []string{"blue=Wall"}, r.Constraints)
	require.Len(t, r.Targets, 1)
	target := r.Targets[0]
	assert.Equal(t, "red", target.Name)
	assert.Equal(t, "Obelisk", target.Best)
	require.Len(t, target.Candidates, 3)
	assert.Equal(t, "Obelisk", target.Candidates[0].Action)
	assert.Equal(t, "Attack(blue)", target.Candidates[2].Action)
	assert.InDelta(t, 0.098, target.Candidates[1].HalfWidth, 1e-12)
}

func TestReport_WriteText(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, sampleReport(t).WriteText(&buf, 2))

	out := buf.String()
	assert.Contains(t, out, "turn 7, 2 playing, 100 samples")
	assert.Contains(t, out, "C::> blue=Wall\n")
	assert.Contains(t, out, "Obelisk:")
	assert.Contains(t, out, "1.000±0.098")
	assert.Contains(t, out, "-> Obelisk\n")
	assert.NotContains(t, out, "Attack(blue)", "only the top two candidates are listed")
}

func TestReport_WriteYAML(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, sampleReport(t).WriteYAML(&buf))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 21, decoded["seed"])
	assert.Equal(t, "1.5s", decoded["elapsed"])
	targets, ok := decoded["targets"].([]any)
	require.True(t, ok)
	require.Len(t, targets, 1)
	first := targets[0].(map[string]any)
	assert.Equal(t, "red", first["name"])
	assert.Equal(t, "Obelisk", first["best"])
}

func TestPlayerName(t *testing.T) {
	names := []string{"red", ""}
	assert.Equal(t, "red", playerName(names, 0))
	assert.Equal(t, "P1", playerName(names, 1))
	assert.Equal(t, "P5", playerName(names, 5))
	assert.Equal(t, "Attack(P5)", actionName(core.Attack(5), names))
	assert.Equal(t, "Defend", actionName(core.Defend(), names))
}

package montecarlo

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/obelisk/internal/game/core"
)

// Report is the outcome of one evaluation run, ready to be printed or exported.
type Report struct {
	RunID       string         `yaml:"run_id"`
	Seed        uint64         `yaml:"seed"`
	Turn        int            `yaml:"turn"`
	Playing     int            `yaml:"playing"`
	Samples     int            `yaml:"samples"`
	Policy      string         `yaml:"policy,omitempty"`
	Elapsed     time.Duration  `yaml:"elapsed"`
	Trials      int64          `yaml:"trials"`
	Constraints []string       `yaml:"constraints,omitempty,flow"`
	Targets     []TargetReport `yaml:"targets"`
}

// TargetReport is the decision for one player. Candidates are ranked by mean loss.
type TargetReport struct {
	Player     int               `yaml:"player"`
	Name       string            `yaml:"name"`
	Best       string            `yaml:"best"`
	Candidates []CandidateReport `yaml:"candidates"`
}

type CandidateReport struct {
	Action    string  `yaml:"action"`
	Mean      float64 `yaml:"mean"`
	Variance  float64 `yaml:"variance"`
	HalfWidth float64 `yaml:"half_width"`
}

// NewReport builds a report from EvaluateAll results. names may be shorter than players.
func NewReport(e *Evaluator, players []core.Player, names []string, turn int, constraints Constraints, results []Result, elapsed time.Duration) Report {
	r := Report{
		RunID:   e.RunID(),
		Seed:    e.Seed(),
		Turn:    turn,
		Playing: core.CountPlaying(players),
		Samples: e.Samples(),
		Elapsed: elapsed,
		Trials:  e.Metrics().Trials,
	}
	for _, c := range constraints {
		r.Constraints = append(r.Constraints, fmt.Sprintf("%s=%s", playerName(names, c.Player), actionName(c.Action, names)))
	}

	for _, res := range results {
		t := TargetReport{
			Player: res.Player,
			Name:   playerName(names, res.Player),
			Best:   actionName(res.Best, names),
		}
		for _, c := range Ranked(res.Candidates) {
			t.Candidates = append(t.Candidates, CandidateReport{
				Action:    actionName(c.Action, names),
				Mean:      c.Mean,
				Variance:  c.Variance,
				HalfWidth: c.HalfWidth(),
			})
		}
		r.Targets = append(r.Targets, t)
	}
	return r
}

// WriteYAML encodes the report as a YAML document.
func (r Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// WriteText prints the report for a terminal. topN limits the candidates listed per
// target; 0 lists them all.
func (r Report) WriteText(w io.Writer, topN int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "turn %d, %d playing, %d samples, %d trials in %s\n",
		r.Turn, r.Playing, r.Samples, r.Trials, r.Elapsed.Round(time.Millisecond))
	for _, c := range r.Constraints {
		fmt.Fprintf(&b, "C::> %s\n", c)
	}

	for _, t := range r.Targets {
		fmt.Fprintf(&b, "\n%s\n", t.Name)
		candidates := t.Candidates
		if topN > 0 && len(candidates) > topN {
			candidates = candidates[:topN]
		}
		for _, c := range candidates {
			fmt.Fprintf(&b, "  %-14s %.3f±%.3f\n", c.Action+":", c.Mean, c.HalfWidth)
		}
		fmt.Fprintf(&b, "-> %s\n", t.Best)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func playerName(names []string, i int) string {
	if i >= 0 && i < len(names) && names[i] != "" {
		return names[i]
	}
	return fmt.Sprintf("P%d", i)
}

func actionName(a core.Action, names []string) string {
	if a.Type == core.ActionAttack {
		return fmt.Sprintf("Attack(%s)", playerName(names, a.Target))
	}
	return a.String()
}

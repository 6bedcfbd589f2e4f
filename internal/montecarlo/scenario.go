package montecarlo

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/obelisk/internal/common"
	"github.com/mitchelldurbincs/obelisk/internal/config"
	"github.com/mitchelldurbincs/obelisk/internal/game/core"
)

// Scenario is a table to evaluate: the players, their display names, the pinned
// actions and the players to decide for. Nil Targets means every player.
type Scenario struct {
	Turn        int
	Names       []string
	Players     []core.Player
	Constraints Constraints
	Targets     []int
}

// ScenarioFromConfig reads the scenario section. When it lists no players, seats
// copies of start are used instead.
func ScenarioFromConfig(cfg config.ScenarioConfig, start core.Player, seats int) (*Scenario, error) {
	s := &Scenario{Turn: cfg.Turn}

	if len(cfg.Players) == 0 {
		for i := range seats {
			s.Players = append(s.Players, start)
			s.Names = append(s.Names, fmt.Sprintf("P%d", i))
		}
	}
	for i, p := range cfg.Players {
		if !common.InRange(p.Walls, 0, int(core.MaxWalls)) ||
			!common.InRange(p.Barracks, 0, int(core.MaxBarracks)) ||
			!common.InRange(p.Obelisks, 0, int(core.MaxObelisks)) ||
			!common.InRange(p.Defense, 0, int(core.DefenseDuration)) ||
			!common.FitsUint32(p.Soldiers) {
			return nil, core.WrapPlayerError(i, "scenario", core.ErrInvalidResource)
		}
		s.Players = append(s.Players, core.NewPlayerWithValues(
			uint8(p.Walls), uint32(p.Soldiers), uint8(p.Barracks), uint8(p.Obelisks), uint8(p.Defense)))

		name := p.Name
		if name == "" {
			name = fmt.Sprintf("P%d", i)
		}
		s.Names = append(s.Names, name)
	}

	cs, err := ParseConstraints(cfg.Constraints)
	if err != nil {
		return nil, err
	}
	if err := cs.Validate(s.Players); err != nil {
		return nil, err
	}
	s.Constraints = cs

	for _, t := range cfg.Targets {
		if !common.IsValidIndex(t, len(s.Players)) {
			return nil, fmt.Errorf("target %d among %d players: %w", t, len(s.Players), ErrInvalidTarget)
		}
	}
	if len(cfg.Targets) > 0 {
		s.Targets = append([]int(nil), cfg.Targets...)
	}
	return s, nil
}

type scenarioPlayerYAML struct {
	Name     string `yaml:"name"`
	Walls    uint8  `yaml:"walls"`
	Soldiers uint32 `yaml:"soldiers"`
	Barracks uint8  `yaml:"barracks"`
	Obelisks uint8  `yaml:"obelisks"`
	Defense  uint8  `yaml:"defense,omitempty"`
}

type scenarioYAML struct {
	Turn        int                  `yaml:"turn"`
	Players     []scenarioPlayerYAML `yaml:"players"`
	Constraints []string             `yaml:"constraints,omitempty,flow"`
	Targets     []int                `yaml:"targets,omitempty,flow"`
}

// WriteYAML writes the scenario in the layout of the scenario config section, so a
// dump can be fed back to the evaluator.
func (s *Scenario) WriteYAML(w io.Writer) error {
	doc := scenarioYAML{Turn: s.Turn, Targets: s.Targets}
	for i, p := range s.Players {
		doc.Players = append(doc.Players, scenarioPlayerYAML{
			Name:     playerName(s.Names, i),
			Walls:    p.Walls,
			Soldiers: p.Soldiers,
			Barracks: p.Barracks,
			Obelisks: p.Obelisks,
			Defense:  p.Defense,
		})
	}
	for _, c := range s.Constraints {
		doc.Constraints = append(doc.Constraints, fmt.Sprintf("%d=%s", c.Player, constraintAction(c.Action)))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]scenarioYAML{"scenario": doc}); err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}
	return enc.Close()
}

// constraintAction writes a in the form ParseConstraint reads back.
func constraintAction(a core.Action) string {
	if a.Type == core.ActionAttack {
		return fmt.Sprintf("attack:%d", a.Target)
	}
	return a.String()
}

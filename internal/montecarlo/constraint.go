package montecarlo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/obelisk/internal/common"
	"github.com/mitchelldurbincs/obelisk/internal/config"
	"github.com/mitchelldurbincs/obelisk/internal/game/core"
	"github.com/mitchelldurbincs/obelisk/internal/game/rules"
)

// Constraint pins the action of one player.
type Constraint struct {
	Player int
	Action core.Action
}

func (c Constraint) String() string {
	return fmt.Sprintf("%d=%s", c.Player, c.Action)
}

// Constraints is an ordered list of pins. When a player is pinned more than once
// the last entry wins.
type Constraints []Constraint

// Apply overwrites actions with the pinned ones, in list order.
func (cs Constraints) Apply(actions []core.Action) {
	for _, c := range cs {
		actions[c.Player] = c.Action
	}
}

// For returns the action pinned for player by the last matching entry.
func (cs Constraints) For(player int) (core.Action, bool) {
	for i := len(cs) - 1; i >= 0; i-- {
		if cs[i].Player == player {
			return cs[i].Action, true
		}
	}
	return core.None(), false
}

// Validate checks that every pin names a player of the state and is legal for it.
func (cs Constraints) Validate(players []core.Player) error {
	legal := rules.NewLegalMoveCalculator()
	for i, c := range cs {
		if !common.IsValidIndex(c.Player, len(players)) {
			return fmt.Errorf("constraint %d (%s): no player %d among %d: %w", i, c, c.Player, len(players), ErrInvalidConstraint)
		}
		if err := legal.ValidateAction(players, c.Player, c.Action); err != nil {
			return fmt.Errorf("constraint %d (%s): %w: %w", i, c, ErrInvalidConstraint, err)
		}
	}
	return nil
}

// applyLegal is Apply for rounds after the first: pins of players that can no longer
// play, and pins that became illegal, are skipped.
func (cs Constraints) applyLegal(players []core.Player, actions []core.Action, legal *rules.LegalMoveCalculator) {
	for _, c := range cs {
		if players[c.Player].CanPlay() && legal.IsLegal(players, c.Player, c.Action) {
			actions[c.Player] = c.Action
		}
	}
}

// ParseConstraint reads a pin written as "player=action", e.g. "4=attack:7".
func ParseConstraint(s string) (Constraint, error) {
	player, action, ok := strings.Cut(s, "=")
	if !ok {
		return Constraint{}, fmt.Errorf("%q: expected player=action: %w", s, ErrInvalidConstraint)
	}
	index, err := strconv.Atoi(strings.TrimSpace(player))
	if err != nil || index < 0 {
		return Constraint{}, fmt.Errorf("%q: bad player %q: %w", s, player, ErrInvalidConstraint)
	}
	a, err := core.ParseAction(strings.TrimSpace(action))
	if err != nil {
		return Constraint{}, fmt.Errorf("%q: %w: %w", s, ErrInvalidConstraint, err)
	}
	return Constraint{Player: index, Action: a}, nil
}

// ParseConstraints parses every entry, in order.
func ParseConstraints(entries []string) (Constraints, error) {
	cs := make(Constraints, 0, len(entries))
	for _, e := range entries {
		c, err := ParseConstraint(e)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	return cs, nil
}

// PinScope says in which rounds of a rollout constraints are enforced.
type PinScope int

const (
	// PinFirstRound enforces constraints on the round-0 actions only.
	PinFirstRound PinScope = iota
	// PinEveryRound also overrides the policy in every later round while the pin stays legal.
	PinEveryRound
)

func (s PinScope) String() string {
	switch s {
	case PinFirstRound:
		return config.PinScopeFirstRound
	case PinEveryRound:
		return config.PinScopeEveryRound
	default:
		return fmt.Sprintf("PinScope(%d)", int(s))
	}
}

// ParsePinScope reads the montecarlo.pin_scope setting.
func ParsePinScope(s string) (PinScope, error) {
	switch s {
	case config.PinScopeFirstRound, "":
		return PinFirstRound, nil
	case config.PinScopeEveryRound:
		return PinEveryRound, nil
	default:
		return PinFirstRound, fmt.Errorf("%q: %w", s, ErrUnknownPinScope)
	}
}

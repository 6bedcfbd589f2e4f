package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionType represents the kind of order a player gives for a round.
type ActionType int

const (
	ActionNone ActionType = iota // only for players that can no longer play
	ActionWall
	ActionRecruit
	ActionBarracks
	ActionObelisk
	ActionDefend
	ActionAttack
	ActionSkip
)

var actionNames = [...]string{
	ActionNone:     "None",
	ActionWall:     "Wall",
	ActionRecruit:  "Recruit",
	ActionBarracks: "Barracks",
	ActionObelisk:  "Obelisk",
	ActionDefend:   "Defend",
	ActionAttack:   "Attack",
	ActionSkip:     "Skip",
}

func (t ActionType) String() string {
	if t < 0 || int(t) >= len(actionNames) {
		return fmt.Sprintf("ActionType(%d)", int(t))
	}
	return actionNames[t]
}

// Action is one player's order for a round. The zero value is None.
// Target is only meaningful for Attack.
type Action struct {
	Type   ActionType
	Target int
}

func None() Action     { return Action{} }
func Wall() Action     { return Action{Type: ActionWall} }
func Recruit() Action  { return Action{Type: ActionRecruit} }
func Barracks() Action { return Action{Type: ActionBarracks} }
func Obelisk() Action  { return Action{Type: ActionObelisk} }
func Defend() Action   { return Action{Type: ActionDefend} }
func Skip() Action     { return Action{Type: ActionSkip} }

// Attack orders an attack on the player at index target.
func Attack(target int) Action { return Action{Type: ActionAttack, Target: target} }

func (a Action) IsNone() bool { return a.Type == ActionNone }

// Attacks reports whether a is an attack on target.
func (a Action) Attacks(target int) bool {
	return a.Type == ActionAttack && a.Target == target
}

// MakesBusy reports whether the acting player's garrison is away or training this round.
func (a Action) MakesBusy() bool {
	return a.Type == ActionAttack || a.Type == ActionRecruit
}

func (a Action) String() string {
	if a.Type == ActionAttack {
		return fmt.Sprintf("Attack(%d)", a.Target)
	}
	return a.Type.String()
}

// ParseAction reads an action written as "wall", "Attack(3)" or "attack:3".
func ParseAction(s string) (Action, error) {
	raw := strings.TrimSpace(s)
	lower := strings.ToLower(raw)

	var target string
	switch {
	case strings.HasPrefix(lower, "attack(") && strings.HasSuffix(lower, ")"):
		target = lower[len("attack(") : len(lower)-1]
	case strings.HasPrefix(lower, "attack:"):
		target = lower[len("attack:"):]
	}
	if target != "" {
		n, err := strconv.Atoi(strings.TrimSpace(target))
		if err != nil || n < 0 {
			return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, raw)
		}
		return Attack(n), nil
	}

	for t, name := range actionNames {
		if ActionType(t) != ActionAttack && strings.EqualFold(name, lower) {
			return Action{Type: ActionType(t)}, nil
		}
	}
	return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, raw)
}

// FormatActions renders a list of actions as "[Wall Skip Attack(2)]".
func FormatActions(actions []Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = a.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

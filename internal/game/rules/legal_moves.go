package rules

import (
	"slices"

	"github.com/mitchelldurbincs/obelisk/internal/game/core"
)

// LegalMoveCalculator answers legality questions on top of core.PossibleActions.
type LegalMoveCalculator struct{}

func NewLegalMoveCalculator() *LegalMoveCalculator {
	return &LegalMoveCalculator{}
}

// LegalActions lists the legal actions of the player at index, in enumeration order.
func (lmc *LegalMoveCalculator) LegalActions(players []core.Player, index int) []core.Action {
	if index < 0 || index >= len(players) {
		return nil
	}
	return core.PossibleActionsFor(players, index)
}

// IsLegal reports whether action is among the player's possible actions.
func (lmc *LegalMoveCalculator) IsLegal(players []core.Player, index int, action core.Action) bool {
	return slices.Contains(lmc.LegalActions(players, index), action)
}

// ValidateAction returns nil when action is legal, otherwise an error wrapping one of
// core.ErrInvalidPlayer, core.ErrCannotPlay or core.ErrIllegalAction.
func (lmc *LegalMoveCalculator) ValidateAction(players []core.Player, index int, action core.Action) error {
	if index < 0 || index >= len(players) {
		return core.WrapActionError(index, action, core.ErrInvalidPlayer)
	}
	if !players[index].CanPlay() {
		if action.IsNone() {
			return nil
		}
		return core.WrapActionError(index, action, core.ErrCannotPlay)
	}
	if !lmc.IsLegal(players, index, action) {
		return core.WrapActionError(index, action, core.ErrIllegalAction)
	}
	return nil
}

// ActionMask returns a fixed-layout legality mask: Recruit, Skip, Wall, Defend,
// Barracks, Obelisk, then Attack(n) for every player index n.
func (lmc *LegalMoveCalculator) ActionMask(players []core.Player, index int) []bool {
	mask := make([]bool, MaskSize(len(players)))
	for _, a := range lmc.LegalActions(players, index) {
		if i := MaskIndex(a); i >= 0 && i < len(mask) {
			mask[i] = true
		}
	}
	return mask
}

var maskOrder = []core.ActionType{
	core.ActionRecruit,
	core.ActionSkip,
	core.ActionWall,
	core.ActionDefend,
	core.ActionBarracks,
	core.ActionObelisk,
}

// MaskSize is the length of an action mask for a match of numPlayers.
func MaskSize(numPlayers int) int { return len(maskOrder) + numPlayers }

// MaskIndex is the position of action in an action mask, or -1 for None.
func MaskIndex(action core.Action) int {
	if action.Type == core.ActionAttack {
		return len(maskOrder) + action.Target
	}
	return slices.Index(maskOrder, action.Type)
}

// Package policy holds the decision policies that drive rollouts and the loss
// functions that score their outcome.
package policy

import (
	"errors"

	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/obelisk/internal/game/core"
)

var (
	ErrUnknownPolicy = errors.New("unknown policy kind")
	ErrUnknownLoss   = errors.New("unknown loss kind")
	ErrInvalidGenome = errors.New("invalid genome")
	ErrEmptyMixture  = errors.New("mixture needs at least one member")
)

// Policy chooses the action of one player for one round.
//
// players is the current state, index the acting player, round the absolute round
// number and history the actions the player took so far in this rollout, newest last.
// A policy must return None for a player that cannot play and a legal action for
// any other player. Implementations must be safe for concurrent use; all randomness
// comes from rng, which is never shared between goroutines.
type Policy interface {
	ChooseAction(players []core.Player, index, round int, history []core.Action, rng *rand.Rand) core.Action
}

// Func adapts a function to the Policy interface.
type Func func(players []core.Player, index, round int, history []core.Action, rng *rand.Rand) core.Action

func (f Func) ChooseAction(players []core.Player, index, round int, history []core.Action, rng *rand.Rand) core.Action {
	return f(players, index, round, history, rng)
}

// Uniform picks uniformly among the legal actions.
type Uniform struct{}

func (Uniform) ChooseAction(players []core.Player, index, _ int, _ []core.Action, rng *rand.Rand) core.Action {
	if !players[index].CanPlay() {
		return core.None()
	}
	legal := core.PossibleActionsFor(players, index)
	return legal[rng.Intn(len(legal))]
}

// Mixture delegates every decision to one of its members, picked uniformly per call.
type Mixture struct {
	members []Policy
}

func NewMixture(members ...Policy) (*Mixture, error) {
	if len(members) == 0 {
		return nil, ErrEmptyMixture
	}
	return &Mixture{members: members}, nil
}

func (m *Mixture) ChooseAction(players []core.Player, index, round int, history []core.Action, rng *rand.Rand) core.Action {
	return m.members[rng.Intn(len(m.members))].ChooseAction(players, index, round, history, rng)
}

// Len returns the number of members.
func (m *Mixture) Len() int { return len(m.members) }

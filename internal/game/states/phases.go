package states

import "fmt"

// MatchPhase represents the lifecycle phase of a match
type MatchPhase int

const (
	// PhaseInitializing - Engine creation and seating
	PhaseInitializing MatchPhase = iota

	// PhaseRunning - Turns are being resolved
	PhaseRunning

	// PhaseEnded - A player won, nobody can play or the turn limit was reached
	PhaseEnded

	// PhaseAborted - The match was stopped before it ended
	PhaseAborted
)

// String returns the string representation of a MatchPhase
func (p MatchPhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseRunning:
		return "Running"
	case PhaseEnded:
		return "Ended"
	case PhaseAborted:
		return "Aborted"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p MatchPhase) IsTerminal() bool {
	return p == PhaseEnded || p == PhaseAborted
}

// CanReceiveOrders returns true if the match resolves turns in this phase
func (p MatchPhase) CanReceiveOrders() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p MatchPhase) AllowedTransitions() []MatchPhase {
	switch p {
	case PhaseInitializing:
		return []MatchPhase{PhaseRunning, PhaseAborted}
	case PhaseRunning:
		return []MatchPhase{PhaseEnded, PhaseAborted}
	default:
		return nil
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p MatchPhase) CanTransitionTo(target MatchPhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a MatchPhase
func ParsePhase(s string) (MatchPhase, error) {
	for p := PhaseInitializing; p <= PhaseAborted; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return PhaseInitializing, fmt.Errorf("unknown match phase %q", s)
}

package states

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/obelisk/internal/game/events"
)

var ErrInvalidTransition = errors.New("invalid phase transition")

// Transition represents a phase change in the history
type Transition struct {
	From      MatchPhase
	To        MatchPhase
	Timestamp time.Time
	Reason    string
}

// StateMachine tracks the lifecycle phase of one match and its history
type StateMachine struct {
	mu             sync.RWMutex
	gameID         string
	currentPhase   MatchPhase
	history        []Transition
	maxHistorySize int
	eventBus       events.Publisher
	logger         zerolog.Logger
}

// NewStateMachine creates a state machine in PhaseInitializing. eventBus may be nil.
func NewStateMachine(gameID string, eventBus events.Publisher, logger zerolog.Logger) *StateMachine {
	return &StateMachine{
		gameID:         gameID,
		currentPhase:   PhaseInitializing,
		history:        make([]Transition, 0, 4),
		maxHistorySize: 100,
		eventBus:       eventBus,
		logger:         logger.With().Str("component", "StateMachine").Logger(),
	}
}

// CurrentPhase returns the current match phase
func (sm *StateMachine) CurrentPhase() MatchPhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase
}

// TransitionTo moves the match to targetPhase, records it and publishes a
// PhaseChangedEvent
func (sm *StateMachine) TransitionTo(targetPhase MatchPhase, reason string) error {
	sm.mu.Lock()
	previousPhase := sm.currentPhase
	if !previousPhase.CanTransitionTo(targetPhase) {
		sm.mu.Unlock()
		return fmt.Errorf("%s to %s: %w", previousPhase, targetPhase, ErrInvalidTransition)
	}

	sm.addToHistory(Transition{
		From:      previousPhase,
		To:        targetPhase,
		Timestamp: time.Now(),
		Reason:    reason,
	})
	sm.currentPhase = targetPhase
	sm.mu.Unlock()

	// Publish outside the lock so subscribers may query the machine
	if sm.eventBus != nil {
		sm.eventBus.Publish(events.NewPhaseChangedEvent(sm.gameID, previousPhase.String(), targetPhase.String(), reason))
	}

	sm.logger.Debug().
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Str("reason", reason).
		Msg("Phase transition completed")

	return nil
}

// addToHistory adds a transition to the history, maintaining max size
func (sm *StateMachine) addToHistory(transition Transition) {
	sm.history = append(sm.history, transition)

	if len(sm.history) > sm.maxHistorySize {
		sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
	}
}

// GetHistory returns a copy of the transition history
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

// CanTransitionTo checks if a transition to the target phase is allowed
func (sm *StateMachine) CanTransitionTo(targetPhase MatchPhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase.CanTransitionTo(targetPhase)
}

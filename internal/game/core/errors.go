package core

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownAction   = errors.New("unknown action")
	ErrIllegalAction   = errors.New("action not legal in current state")
	ErrGameOver        = errors.New("game is over")
	ErrInvalidPlayer   = errors.New("invalid player index")
	ErrCannotPlay      = errors.New("player can no longer play")
	ErrDuplicateOrder  = errors.New("more than one order for player")
	ErrInvalidResource = errors.New("resource value out of range")
)

// WrapActionError adds the acting player and the action to err.
func WrapActionError(player int, action Action, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("player %d: %s: %w", player, action, err)
}

// WrapGameStateError adds the turn and the phase that failed.
func WrapGameStateError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("game turn %d [%s]: %w", turn, phase, err)
}

// WrapPlayerError adds the player and the operation that failed.
func WrapPlayerError(player int, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("player %d %s: %w", player, operation, err)
}

// GameError is a structured error for failures tied to a turn and optionally a player.
type GameError struct {
	Turn      int
	Player    int // -1 when no single player is involved
	Operation string
	Err       error
}

func NewGameError(turn, player int, operation string, err error) *GameError {
	return &GameError{Turn: turn, Player: player, Operation: operation, Err: err}
}

func (e *GameError) Error() string {
	if e.Player >= 0 {
		return fmt.Sprintf("turn %d: player %d %s: %v", e.Turn, e.Player, e.Operation, e.Err)
	}
	return fmt.Sprintf("turn %d: %s: %v", e.Turn, e.Operation, e.Err)
}

func (e *GameError) Unwrap() error { return e.Err }

package rules

import (
	"github.com/mitchelldurbincs/obelisk/internal/game/core"
	"github.com/rs/zerolog"
)

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckGameOver reports whether the match is over and who won.
// A match ends when a player completes its obelisks (the lowest such index wins)
// or when nobody can play any more (winner -1).
func (wc *WinConditionChecker) CheckGameOver(players []core.Player) (bool, int) {
	playing := 0
	for i, p := range players {
		if p.Won() {
			wc.logger.Info().Int("winner", i).Msg("Winner determined")
			return true, i
		}
		if p.CanPlay() {
			playing++
		}
	}

	if playing == 0 {
		wc.logger.Info().Msg("No player left standing, game ends without a winner")
		return true, -1
	}

	wc.logger.Debug().Int("playing", playing).Msg("Game continues")
	return false, -1
}

// Eliminated returns the indices of players that could play in before and cannot in after
// without having won.
func Eliminated(before, after []core.Player) []int {
	var out []int
	for i := range after {
		if i < len(before) && before[i].CanPlay() && after[i].Lost() {
			out = append(out, i)
		}
	}
	return out
}

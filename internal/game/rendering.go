package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/obelisk/internal/common"
	"github.com/mitchelldurbincs/obelisk/internal/game/core"
)

// RenderPlayers returns a colored standings table. names may be shorter than
// players; missing names fall back to "P<index>".
func RenderPlayers(players []core.Player, names []string) string {
	const (
		ObeliskSymbol = "▲"
		WallSymbol    = "▦"
		ShieldSymbol  = "◆"
	)

	var sb strings.Builder
	sb.Grow(64 * (len(players) + 2))

	sb.WriteString(fmt.Sprintf("%-3s %-10s %-10s %8s %5s %8s %7s %5s\n",
		"#", "player", "obelisks", "soldiers", "walls", "barracks", "defense", "W/L"))

	for rank, s := range Standings(players) {
		name := playerName(names, s.Player)
		obelisks := strings.Repeat(ObeliskSymbol, s.Obelisks) + strings.Repeat("·", int(core.MaxObelisks)-s.Obelisks)
		defense := ""
		if s.Defense > 0 {
			defense = strings.Repeat(ShieldSymbol, s.Defense)
		}

		line := fmt.Sprintf("%-3d %-10s %-10s %8d %4d%s %8d %7s %2d/%-2d",
			rank+1, name, obelisks, s.Soldiers, s.Walls, WallSymbol, s.Barracks, defense, s.Victories, s.Defeats)

		switch s.Status {
		case StatusWon:
			sb.WriteString(common.Colorize(common.ColorBold+common.PlayerColor(s.Player), line))
		case StatusEliminated:
			sb.WriteString(common.Colorize(common.ColorGray, line))
		default:
			sb.WriteString(common.Colorize(common.PlayerColor(s.Player), line))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Render returns the standings of the match
func (e *Engine) Render(names []string) string {
	return fmt.Sprintf("Turn %d\n%s", e.turn, RenderPlayers(e.players, names))
}

func playerName(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return fmt.Sprintf("P%d", i)
}

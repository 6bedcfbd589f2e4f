package common

// ANSI color codes for terminal output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
	ColorBold   = "\033[1m"
)

// PlayerColors defines the color of each seat; seats beyond the palette wrap around
var PlayerColors = []string{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorCyan}

// PlayerColor returns the ANSI color of a player. Negative indices are gray.
func PlayerColor(player int) string {
	if player < 0 {
		return ColorGray
	}
	return PlayerColors[player%len(PlayerColors)]
}

// Colorize wraps s in color and a reset code
func Colorize(color, s string) string {
	return color + s + ColorReset
}

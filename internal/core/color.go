package core

// Color is a cell foreground color. The terminal host maps each value to an
// ANSI 256-color code; other hosts may ignore it.
type Color uint8

// Palette.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
)

// DepthShade picks a platform color by distance so nearer geometry reads
// brighter in a monochrome-ish terminal.
func DepthShade(depth float64) Color {
	switch {
	case depth < 12:
		return ColorBrightCyan
	case depth < 25:
		return ColorCyan
	case depth < 45:
		return ColorBlue
	default:
		return ColorDarkGray
	}
}

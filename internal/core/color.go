package core

import "strings"

// Color is a named palette entry for a screen cell.
// The platform layer maps it to ANSI 256-color codes.
type Color uint8

// Predefined colors. ColorDefault leaves the terminal color untouched.
const (
	ColorDefault Color = iota
	ColorBlack
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
	ColorPeach
	ColorSky
	ColorWebGreen
)

var colorNames = map[string]Color{
	"default":        ColorDefault,
	"black":          ColorBlack,
	"red":            ColorRed,
	"green":          ColorGreen,
	"yellow":         ColorYellow,
	"blue":           ColorBlue,
	"magenta":        ColorMagenta,
	"cyan":           ColorCyan,
	"white":          ColorWhite,
	"bright_red":     ColorBrightRed,
	"bright_green":   ColorBrightGreen,
	"bright_yellow":  ColorBrightYellow,
	"bright_blue":    ColorBrightBlue,
	"bright_magenta": ColorBrightMagenta,
	"bright_cyan":    ColorBrightCyan,
	"bright_white":   ColorBrightWhite,
	"orange":         ColorOrange,
	"gray":           ColorGray,
	"grey":           ColorGray,
	"peach":          ColorPeach,
	"peachpuff":      ColorPeach,
	"sky":            ColorSky,
	"lightskyblue":   ColorSky,
	"webgreen":       ColorWebGreen,
}

// ParseColor resolves a color name (case-insensitive, '-' and ' ' accepted
// as '_'). Returns false for unknown names.
func ParseColor(name string) (Color, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	c, ok := colorNames[key]
	return c, ok
}

var canonicalNames = [...]string{
	"default", "black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright_red", "bright_green", "bright_yellow", "bright_blue", "bright_magenta",
	"bright_cyan", "bright_white", "orange", "gray", "peach", "sky", "webgreen",
}

// String returns the canonical name of the color.
func (c Color) String() string {
	if int(c) < len(canonicalNames) {
		return canonicalNames[c]
	}
	return "unknown"
}

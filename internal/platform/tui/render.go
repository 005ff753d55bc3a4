package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/echomaze/internal/core"
	"github.com/vovakirdan/echomaze/internal/render"
)

// colorCodes maps core.Color to ANSI 256-color codes.
var colorCodes = map[core.Color]string{
	core.ColorBlack:         "0",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorPeach:         "223",
	core.ColorSky:           "117",
	core.ColorWebGreen:      "34",
}

type colorPair struct {
	fg, bg core.Color
}

// NewStyler returns a render.Styler that draws with r. Each SSH session
// passes its own renderer so the color profile matches the client.
func NewStyler(r *lipgloss.Renderer) render.Styler {
	return func(s *core.Screen) string {
		return renderScreen(r, s)
	}
}

// RenderScreen converts a Screen buffer to a styled string for the local
// terminal.
func RenderScreen(s *core.Screen) string {
	return renderScreen(lipgloss.DefaultRenderer(), s)
}

// renderScreen groups adjacent cells with the same colors to minimize ANSI
// escape sequences.
func renderScreen(r *lipgloss.Renderer, s *core.Screen) string {
	styles := make(map[colorPair]lipgloss.Style)
	styleFor := func(p colorPair) lipgloss.Style {
		if st, ok := styles[p]; ok {
			return st
		}
		st := r.NewStyle()
		if code, ok := colorCodes[p.fg]; ok {
			st = st.Foreground(lipgloss.Color(code))
		}
		if code, ok := colorCodes[p.bg]; ok {
			st = st.Background(lipgloss.Color(code))
		}
		styles[p] = st
		return st
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			pair := colorPair{cell.Fg, cell.Bg}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (colorPair{cell.Fg, cell.Bg}) != pair {
					break
				}
				// zero marks the trailing half of a wide rune
				if cell.Rune != 0 {
					run.WriteRune(cell.Rune)
				}
				x++
			}
			sb.WriteString(styleFor(pair).Render(run.String()))
		}
	}
	return sb.String()
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/echomaze/internal/core"
)

var namedKeys = map[tea.KeyType]core.KeyCode{
	tea.KeyUp:        core.KeyUp,
	tea.KeyDown:      core.KeyDown,
	tea.KeyLeft:      core.KeyLeft,
	tea.KeyRight:     core.KeyRight,
	tea.KeyEnter:     core.KeyEnter,
	tea.KeyEsc:       core.KeyEscape,
	tea.KeyBackspace: core.KeyBackspace,
	tea.KeyTab:       core.KeyTab,
	tea.KeyDelete:    core.KeyDelete,
	tea.KeyHome:      core.KeyHome,
	tea.KeyEnd:       core.KeyEnd,
}

// KeyEvent translates a Bubble Tea key message to a scene input event.
// Returns false for keys scenes never see (ctrl combinations, function keys).
func KeyEvent(msg tea.KeyMsg) (core.InputEvent, bool) {
	if code, ok := namedKeys[msg.Type]; ok {
		return core.KeyEvent(code), true
	}
	switch msg.Type {
	case tea.KeySpace:
		return core.TextEvent(" "), true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return core.Empty(), false
		}
		return core.TextEvent(string(msg.Runes)), true
	}
	return core.Empty(), false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/echomaze/internal/config"
	"github.com/vovakirdan/echomaze/internal/core"
	"github.com/vovakirdan/echomaze/internal/levels"
)

// MenuItem is one entry of the level picker.
type MenuItem struct {
	Title string
	// Specs is the scene sequence the entry starts.
	Specs []string
	// Group is the heading the entry is listed under; empty for the top.
	Group string
}

// MenuItems lists the full run, every level the loader knows, a random maze
// and the key tester.
func MenuItems(loader *levels.Loader, cfg config.Config, logger *log.Logger) []MenuItem {
	items := []MenuItem{{Title: "Full run", Specs: cfg.Scenes}}

	if loader != nil {
		lvls, err := loader.LoadAll()
		if err != nil && logger != nil {
			logger.Warn("some levels could not be loaded", "err", err)
		}
		for _, l := range lvls {
			items = append(items, MenuItem{
				Title: fmt.Sprintf("%s. %s", l.ID, l.Title()),
				Specs: []string{"level:" + l.ID},
				Group: "Levels",
			})
		}
	}

	return append(items,
		MenuItem{Title: "Random maze", Specs: []string{"random"}, Group: "Extras"},
		MenuItem{Title: "Key tester", Specs: []string{"echo"}, Group: "Extras"},
	)
}

var (
	menuTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("223"))
	menuGroup   = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	menuCurrent = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	menuHelp    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const menuControls = "↑/↓ move  enter play  tab scores  q quit"

// MenuModel is the level picker. It ends its program as soon as the user
// picks an entry, asks for the scoreboard or leaves.
type MenuModel struct {
	items  []MenuItem
	cursor int
	rc     core.RuntimeConfig

	selected       *MenuItem
	openScoreboard bool
	quitting       bool
}

// NewMenuModel creates a menu sized from rc.
func NewMenuModel(items []MenuItem, rc core.RuntimeConfig) MenuModel {
	return MenuModel{items: items, rc: rc}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.rc.ScreenW, m.rc.ScreenH = msg.Width, msg.Height

	case tea.KeyMsg:
		n := len(m.items)
		switch MapKeyToMenuAction(msg) {
		case MenuActionUp:
			if n > 0 {
				m.cursor = (m.cursor + n - 1) % n
			}
		case MenuActionDown:
			if n > 0 {
				m.cursor = (m.cursor + 1) % n
			}
		case MenuActionSelect:
			if n > 0 {
				item := m.items[m.cursor]
				m.selected = &item
				return m, tea.Quit
			}
		case MenuActionScoreboard:
			m.openScoreboard = true
			return m, tea.Quit
		case MenuActionQuit, MenuActionBack:
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	w := m.rc.ScreenW

	lines := []string{"", menuTitle.Render("~ e c h o m a z e ~"), ""}
	group := ""
	for i, item := range m.items {
		if item.Group != group {
			group = item.Group
			lines = append(lines, "", menuGroup.Render(group))
		}
		if i == m.cursor {
			lines = append(lines, menuCurrent.Render("> "+item.Title))
		} else {
			lines = append(lines, "  "+item.Title)
		}
	}
	lines = append(lines, "", menuHelp.Render(menuControls))

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(centerText(l, w))
		b.WriteString("\n")
	}
	return b.String()
}

// Selected returns the picked entry, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the user left the menu.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the user asked for the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, updated by terminal resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.rc
}

// centerText pads text on the left to center it within width columns.
func centerText(text string, width int) string {
	pad := (width - lipgloss.Width(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

// MenuResult is what the user picked in RunMenu.
type MenuResult struct {
	Specs           []string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the menu in the local terminal.
func RunMenu(items []MenuItem, rc core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(items, rc), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: rc}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: rc, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.selected != nil:
		res.Specs = m.selected.Specs
	default:
		res.Quit = true
	}
	return res, nil
}

package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type sessionState int

const (
	stateMenu sessionState = iota
	stateGame
	stateScoreboard
)

// SessionModel manages a full session: menu, game and scoreboard, going
// back to the menu whenever a game or the scoreboard ends.
type SessionModel struct {
	opts       Options
	items      []MenuItem
	state      sessionState
	menu       MenuModel
	game       GameModel
	scoreboard ScoreboardModel
	lastErr    string
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts Options, items []MenuItem) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return SessionModel{
		opts:  opts,
		items: items,
		menu:  NewMenuModel(items, opts.Runtime),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Scenes capture their size at construction; the next game started from
	// the menu picks up the new size.
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.state {
	case stateGame:
		return m.updateGame(msg)
	case stateScoreboard:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		tabs := ScoreboardLevels(m.opts.Levels, m.opts.Store)
		m.scoreboard = NewScoreboardModel(m.opts.Store, tabs, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.state = stateScoreboard
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		opts := m.opts
		opts.Specs = m.menu.Selected().Specs
		game, err := NewGameModel(opts)
		if err != nil {
			m.opts.Logger.Error("cannot start game", "err", err)
			m.lastErr = err.Error()
			return m.backToMenu()
		}
		m.game = game
		m.lastErr = ""
		m.state = stateGame
		return m, m.game.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newGame, cmd := m.game.Update(msg)
	if gameModel, ok := newGame.(GameModel); ok {
		m.game = gameModel
	}
	if !m.game.Done() {
		return m, cmd
	}

	if _, err := m.game.Result(); err != nil {
		m.lastErr = err.Error()
	}
	return m.backToMenu()
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.scoreboard.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.scoreboard = board
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.state = stateMenu
	m.menu = NewMenuModel(m.items, m.opts.Runtime)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateGame:
		return m.game.View()
	case stateScoreboard:
		return m.scoreboard.View()
	}
	if m.lastErr != "" {
		return m.menu.View() + "\n" + centerText("last game: "+m.lastErr, m.opts.Runtime.ScreenW)
	}
	return m.menu.View()
}

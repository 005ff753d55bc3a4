package tui

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/echomaze/internal/config"
	"github.com/vovakirdan/echomaze/internal/core"
	"github.com/vovakirdan/echomaze/internal/engine"
	"github.com/vovakirdan/echomaze/internal/levels"
	"github.com/vovakirdan/echomaze/internal/registry"
	"github.com/vovakirdan/echomaze/internal/scene"
	_ "github.com/vovakirdan/echomaze/internal/scenes"
	"github.com/vovakirdan/echomaze/internal/storage"
)

// brokenScene fails on its first frame.
type brokenScene struct{}

func (brokenScene) Reset() {}

func (brokenScene) NextFrame(core.InputEvent) (core.Signal, error) {
	return core.SignalContinue, errors.New("corrupt map")
}

func init() {
	registry.Register("broken", "Always fails", func(registry.Env, string) (scene.Scene, error) {
		return brokenScene{}, nil
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.InputEvent
		ok       bool
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.KeyEvent(core.KeyUp), true},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.KeyEvent(core.KeyEnter), true},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.KeyEvent(core.KeyEscape), true},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.TextEvent(" "), true},
		{"letter", runes("q"), core.TextEvent("q"), true},
		{"alt letter", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q"), Alt: true}, core.Empty(), false},
		{"ctrl", tea.KeyMsg{Type: tea.KeyCtrlA}, core.Empty(), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev, ok := KeyEvent(tc.msg)
			if ok != tc.ok || ev != tc.expected {
				t.Errorf("KeyEvent() = %v, %v; expected %v, %v", ev, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := map[string]MenuAction{
		"up":    MenuActionUp,
		"j":     MenuActionDown,
		"enter": MenuActionSelect,
		"tab":   MenuActionScoreboard,
		"q":     MenuActionQuit,
		"x":     MenuActionNone,
	}
	msgs := map[string]tea.KeyMsg{
		"up":    {Type: tea.KeyUp},
		"j":     runes("j"),
		"enter": {Type: tea.KeyEnter},
		"tab":   {Type: tea.KeyTab},
		"q":     runes("q"),
		"x":     runes("x"),
	}
	for name, expected := range tests {
		if got := MapKeyToMenuAction(msgs[name]); got != expected {
			t.Errorf("MapKeyToMenuAction(%s) = %v, expected %v", name, got, expected)
		}
	}
}

func TestStylerPlainProfile(t *testing.T) {
	// A renderer on a non-terminal writer uses the ASCII profile, so the
	// styled output must equal the plain text.
	styler := NewStyler(lipgloss.NewRenderer(io.Discard))

	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorRed, core.ColorBlack)
	s.DrawTextColor(2, 0, "cd", core.ColorSky, core.ColorPeach)
	s.DrawText(0, 1, "xyz")

	if got, want := styler(s), s.String(); got != want {
		t.Errorf("styler() = %q, expected %q", got, want)
	}
}

func TestMenuItems(t *testing.T) {
	cfg := config.Default()
	items := MenuItems(levels.NewLoader(t.TempDir()), cfg, nil)

	if len(items) != 6 {
		t.Fatalf("expected 6 items, got %d: %v", len(items), items)
	}
	if items[0].Title != "Full run" || len(items[0].Specs) != len(cfg.Scenes) {
		t.Errorf("first item = %+v", items[0])
	}
	if items[1].Title != "1. First Echo" || items[1].Specs[0] != "level:1" {
		t.Errorf("level item = %+v", items[1])
	}
	if items[5].Specs[0] != "echo" {
		t.Errorf("last item = %+v", items[5])
	}
}

func TestMenuNavigation(t *testing.T) {
	items := []MenuItem{{Title: "a", Specs: []string{"title"}}, {Title: "b", Specs: []string{"echo"}}}
	var m tea.Model = NewMenuModel(items, core.RuntimeConfig{ScreenW: 40, ScreenH: 10})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if !strings.Contains(m.View(), "> b") {
		t.Errorf("cursor not on b:\n%s", m.View())
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("select should quit the menu program")
	}
	sel := m.(MenuModel).Selected()
	if sel == nil || sel.Specs[0] != "echo" {
		t.Errorf("Selected() = %+v", sel)
	}
}

func TestGameModelRunsLoop(t *testing.T) {
	opts := Options{
		Config:  config.Default(),
		Runtime: core.RuntimeConfig{ScreenW: 30, ScreenH: 5, TickRate: 50, Seed: 1},
		Specs:   []string{"echo"},
		Styler:  NewStyler(lipgloss.NewRenderer(io.Discard)),
	}
	m, err := NewGameModel(opts)
	if err != nil {
		t.Fatalf("NewGameModel() failed: %v", err)
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- m.runLoop()() }()

	msg := m.waitFrame()()
	frame, ok := msg.(frameMsg)
	if !ok {
		t.Fatalf("expected a frame, got %T", msg)
	}
	if !strings.Contains(string(frame), "hit 'n' to end the game") {
		t.Errorf("unexpected first frame:\n%s", frame)
	}

	var model tea.Model = m
	model, _ = model.Update(frame)
	if model.View() != string(frame) {
		t.Error("View() should show the last frame")
	}
	model, _ = model.Update(runes("n"))

	select {
	case msg = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not finish")
	}
	model, cmd := model.Update(msg)
	if cmd == nil {
		t.Error("a finished loop should quit the program")
	}

	gm := model.(GameModel)
	res, err := gm.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if !gm.Done() || res.Reason != engine.ReasonExhausted {
		t.Errorf("Result() = %+v, done = %v", res, gm.Done())
	}
}

func TestGameModelCtrlCCancels(t *testing.T) {
	m, err := NewGameModel(Options{
		Config:  config.Default(),
		Runtime: core.RuntimeConfig{ScreenW: 30, ScreenH: 5, TickRate: 50, Seed: 1},
		Specs:   []string{"echo"},
	})
	if err != nil {
		t.Fatalf("NewGameModel() failed: %v", err)
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- m.runLoop()() }()
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	select {
	case msg := <-done:
		res := msg.(loopDoneMsg)
		if res.err != nil || res.result.Reason != engine.ReasonCanceled {
			t.Errorf("loop ended with %+v", res)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop on ctrl+c")
	}
}

func TestGameModelKeepsEndMessage(t *testing.T) {
	m, err := NewGameModel(Options{
		Config:  config.Default(),
		Runtime: core.RuntimeConfig{ScreenW: 30, ScreenH: 5, TickRate: 50, Seed: 1},
		Specs:   []string{"broken"},
	})
	if err != nil {
		t.Fatalf("NewGameModel() failed: %v", err)
	}

	msg := m.runLoop()()
	var model tea.Model = m
	model, cmd := model.Update(msg)
	if cmd != nil {
		t.Error("a failed run should wait for a key before quitting")
	}
	if !strings.Contains(model.View(), engine.EndMessage) {
		t.Errorf("View() should show %q after a failure:\n%s", engine.EndMessage, model.View())
	}
	gm := model.(GameModel)
	if _, err := gm.Result(); !errors.Is(err, engine.ErrSceneFailed) {
		t.Errorf("Result() error = %v, expected a scene failure", err)
	}
	if gm.Done() {
		t.Error("Done() should wait for the end message to be dismissed")
	}

	model, cmd = model.Update(runes("x"))
	if cmd == nil || !model.(GameModel).Done() {
		t.Error("a key should leave the failed run")
	}
}

func TestSessionShowsEndMessage(t *testing.T) {
	items := []MenuItem{{Title: "broken", Specs: []string{"broken"}}}
	opts := Options{
		Config:  config.Default(),
		Runtime: core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 50},
	}
	var m tea.Model = NewSessionModel(opts, items)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sm := m.(SessionModel)
	if sm.state != stateGame {
		t.Fatalf("enter should start the game, state = %v", sm.state)
	}

	m, _ = m.Update(sm.game.runLoop()())
	if !strings.Contains(m.View(), engine.EndMessage) {
		t.Errorf("session should show %q:\n%s", engine.EndMessage, m.View())
	}

	m, _ = m.Update(runes("x"))
	if m.(SessionModel).state != stateMenu || !strings.Contains(m.View(), "corrupt map") {
		t.Errorf("a key should return to the menu with the error:\n%s", m.View())
	}
}

func TestNewGameModelRejectsBadScene(t *testing.T) {
	_, err := NewGameModel(Options{
		Config:  config.Default(),
		Runtime: core.RuntimeConfig{ScreenW: 30, ScreenH: 5},
		Specs:   []string{"title", "nope"},
	})
	if err == nil {
		t.Error("expected an error for an unknown scene")
	}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestScoreboard(t *testing.T) {
	store := openStore(t)
	for _, s := range []struct {
		level string
		score int
	}{{"1", 120}, {"1", 80}, {"old", 50}} {
		if _, err := store.SaveScore(s.level, s.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	tabs := ScoreboardLevels(levels.NewLoader(t.TempDir()), store)
	if len(tabs) != 4 || tabs[0].ID != "1" || tabs[3].ID != "old" {
		t.Fatalf("ScoreboardLevels() = %+v", tabs)
	}

	var m tea.Model = NewScoreboardModel(store, tabs, 100, 30)
	view := m.View()
	if !strings.Contains(view, "2 runs  |  best 120  |  average 100.0") {
		t.Errorf("missing stats line:\n%s", view)
	}
	if !strings.Contains(view, "120") {
		t.Errorf("missing score:\n%s", view)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if !strings.Contains(m.View(), "1 runs  |  best 50") {
		t.Errorf("shift+tab should wrap to the last level:\n%s", m.View())
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || !m.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestSessionScoreboardAndBack(t *testing.T) {
	opts := Options{
		Config:  config.Default(),
		Runtime: core.RuntimeConfig{ScreenW: 100, ScreenH: 30},
		Levels:  levels.NewLoader(t.TempDir()),
		Store:   openStore(t),
	}
	var m tea.Model = NewSessionModel(opts, MenuItems(opts.Levels, opts.Config, nil))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.(SessionModel).state != stateScoreboard {
		t.Fatalf("tab should open the scoreboard, state = %v", m.(SessionModel).state)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).state != stateMenu {
		t.Fatalf("esc should return to the menu, state = %v", m.(SessionModel).state)
	}

	m, cmd := m.Update(runes("q"))
	if cmd == nil || m.View() != "" {
		t.Error("q should end the session")
	}
}

func TestSessionShowsConstructionError(t *testing.T) {
	items := []MenuItem{{Title: "broken", Specs: []string{"level:99"}}}
	opts := Options{
		Config:  config.Default(),
		Runtime: core.RuntimeConfig{ScreenW: 60, ScreenH: 20},
		Levels:  levels.NewLoader(t.TempDir()),
	}
	var m tea.Model = NewSessionModel(opts, items)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.(SessionModel).state != stateMenu {
		t.Fatal("a broken entry should stay on the menu")
	}
	if !strings.Contains(m.View(), "last game:") {
		t.Errorf("error not shown:\n%s", m.View())
	}
}

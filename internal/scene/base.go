package scene

import (
	"sync"
	"time"

	"github.com/vovakirdan/echomaze/internal/core"
)

// Base holds what every drawing scene needs: the viewport captured at
// construction, the scene colors, a frame draft and the sink it commits to.
// Concrete scenes embed *Base.
type Base struct {
	Width, Height int
	Fg, Bg        core.Color

	Frame *core.Screen
	Sink  core.Sink

	timers Timers

	mu       sync.Mutex
	overlays map[core.OverlayToken]struct{}
}

// NewBase creates a Base for the viewport in cfg. A nil sink discards output.
func NewBase(cfg core.RuntimeConfig, fg, bg core.Color, sink core.Sink) *Base {
	return &Base{
		Width:    cfg.ScreenW,
		Height:   cfg.ScreenH,
		Fg:       fg,
		Bg:       bg,
		Frame:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		Sink:     sink,
		overlays: make(map[core.OverlayToken]struct{}),
	}
}

// ClearFrame blanks the draft with the scene background.
func (b *Base) ClearFrame() {
	b.Frame.FillCell(core.Cell{Rune: ' ', Fg: b.Fg, Bg: b.Bg})
}

// Text draws text in the scene foreground.
func (b *Base) Text(x, y int, text string) {
	b.Frame.DrawTextColor(x, y, text, b.Fg, b.Bg)
}

// Centered draws text horizontally centered on row y.
func (b *Base) Centered(y int, text string) {
	b.Text(b.Frame.TextX(text), y, text)
}

// Commit hands the draft to the sink.
func (b *Base) Commit() {
	if b.Sink != nil {
		b.Sink.Commit(b.Frame)
	}
}

// ShowOverlay shows a message until ClearOverlays or Release.
func (b *Base) ShowOverlay(row int, text string, fg core.Color) core.OverlayToken {
	if b.Sink == nil {
		return 0
	}
	tok := b.Sink.ShowOverlay(row, text, fg)
	b.mu.Lock()
	b.overlays[tok] = struct{}{}
	b.mu.Unlock()
	return tok
}

// Flash shows a message and erases it after d.
// The erase is skipped once the scene is reset or exited; Release then
// removes the message itself.
func (b *Base) Flash(row int, text string, fg core.Color, d time.Duration) {
	tok := b.ShowOverlay(row, text, fg)
	if tok == 0 {
		return
	}
	b.timers.After(d, func() {
		b.clearOverlay(tok)
		b.Sink.Present()
	})
}

func (b *Base) clearOverlay(tok core.OverlayToken) {
	b.mu.Lock()
	_, ok := b.overlays[tok]
	delete(b.overlays, tok)
	b.mu.Unlock()
	if ok {
		b.Sink.ClearOverlay(tok)
	}
}

// ClearOverlays removes every overlay this scene put on the sink.
func (b *Base) ClearOverlays() {
	b.mu.Lock()
	toks := make([]core.OverlayToken, 0, len(b.overlays))
	for tok := range b.overlays {
		toks = append(toks, tok)
	}
	b.overlays = make(map[core.OverlayToken]struct{})
	b.mu.Unlock()

	for _, tok := range toks {
		b.Sink.ClearOverlay(tok)
	}
}

// After schedules fn unless the scene is released first.
func (b *Base) After(d time.Duration, fn func()) {
	b.timers.After(d, fn)
}

// Release cancels pending timers and removes the scene's overlays.
// Scenes call it from Reset and OnExit.
func (b *Base) Release() {
	b.timers.Invalidate()
	b.ClearOverlays()
}

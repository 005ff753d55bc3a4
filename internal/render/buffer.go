// Package render holds the presentation sink shared by the game loop, the
// active scene and background timers.
package render

import (
	"sync"

	"github.com/vovakirdan/echomaze/internal/core"
)

// Styler turns a composed screen into the string the terminal displays.
type Styler func(*core.Screen) string

type overlay struct {
	tok  core.OverlayToken
	row  int
	text string
	fg   core.Color
}

// Buffer implements core.Sink. Committed frames and overlays are composed on
// Present and published on a channel that only ever holds the newest frame.
type Buffer struct {
	mu       sync.Mutex
	frame    *core.Screen
	overlays []overlay
	nextTok  core.OverlayToken
	dirty    bool
	style    Styler
	frames   chan string
}

// NewBuffer creates a width x height buffer. A nil style renders plain text.
func NewBuffer(width, height int, style Styler) *Buffer {
	if style == nil {
		style = (*core.Screen).String
	}
	return &Buffer{
		frame:  core.NewScreen(width, height),
		style:  style,
		frames: make(chan string, 1),
	}
}

// Frames returns the channel presented frames are published on.
func (b *Buffer) Frames() <-chan string {
	return b.frames
}

// Commit stores a copy of frame.
func (b *Buffer) Commit(frame *core.Screen) {
	if frame == nil {
		return
	}
	b.mu.Lock()
	b.frame = frame.Clone()
	b.dirty = true
	b.mu.Unlock()
}

// ShowOverlay adds a centered message on row. Negative rows count from the
// bottom of the screen.
func (b *Buffer) ShowOverlay(row int, text string, fg core.Color) core.OverlayToken {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextTok++
	b.overlays = append(b.overlays, overlay{tok: b.nextTok, row: row, text: text, fg: fg})
	b.dirty = true
	return b.nextTok
}

// ClearOverlay removes the overlay with the given token.
func (b *Buffer) ClearOverlay(tok core.OverlayToken) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, o := range b.overlays {
		if o.tok == tok {
			b.overlays = append(b.overlays[:i], b.overlays[i+1:]...)
			b.dirty = true
			return
		}
	}
}

// Present publishes the composed screen if anything changed since the last
// call. A frame nobody picked up yet is replaced.
func (b *Buffer) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.dirty {
		return
	}
	b.dirty = false
	out := b.style(b.compose())

	select {
	case <-b.frames:
	default:
	}
	b.frames <- out
}

// Snapshot returns the screen as it would be presented now.
func (b *Buffer) Snapshot() *core.Screen {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.compose()
}

// Render returns the styled screen as it would be presented now.
func (b *Buffer) Render() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.style(b.compose())
}

func (b *Buffer) compose() *core.Screen {
	s := b.frame.Clone()
	for _, o := range b.overlays {
		y := o.row
		if y < 0 {
			y += s.Height()
		}
		x := s.TextX(o.text)
		bg := s.GetCell(core.Max(x, 0), y).Bg
		s.DrawTextColor(x, y, o.text, o.fg, bg)
	}
	return s
}

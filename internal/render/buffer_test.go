package render

import (
	"strings"
	"sync"
	"testing"

	"github.com/vovakirdan/echomaze/internal/core"
)

func frameWith(text string) *core.Screen {
	s := core.NewScreen(10, 3)
	s.DrawText(0, 0, text)
	return s
}

func TestPresentPublishesLatest(t *testing.T) {
	b := NewBuffer(10, 3, nil)

	b.Commit(frameWith("one"))
	b.Present()
	b.Commit(frameWith("two"))
	b.Present()

	got := <-b.Frames()
	if !strings.HasPrefix(got, "two") {
		t.Errorf("expected newest frame, got %q", got)
	}
	select {
	case f := <-b.Frames():
		t.Errorf("stale frame left in channel: %q", f)
	default:
	}
}

func TestPresentSkipsUnchanged(t *testing.T) {
	b := NewBuffer(10, 3, nil)
	b.Commit(frameWith("a"))
	b.Present()
	<-b.Frames()

	b.Present()
	select {
	case <-b.Frames():
		t.Error("Present without changes should not publish")
	default:
	}
}

func TestCommitCopiesFrame(t *testing.T) {
	b := NewBuffer(10, 3, nil)
	f := frameWith("abc")
	b.Commit(f)
	f.DrawText(0, 0, "xyz")

	if got := b.Snapshot().Row(0); got != "abc       " {
		t.Errorf("Snapshot row = %q, expected committed content", got)
	}
}

func TestOverlays(t *testing.T) {
	b := NewBuffer(10, 3, nil)
	b.Commit(frameWith(""))

	tok := b.ShowOverlay(1, "ouch", core.ColorRed)
	end := b.ShowOverlay(-1, "end", core.ColorWhite)

	snap := b.Snapshot()
	if snap.Row(1) != "   ouch   " {
		t.Errorf("overlay row = %q", snap.Row(1))
	}
	if snap.GetCell(3, 1).Fg != core.ColorRed {
		t.Error("overlay should use its color")
	}
	if snap.Row(2) != "   end    " {
		t.Errorf("bottom overlay row = %q", snap.Row(2))
	}

	b.ClearOverlay(tok)
	b.ClearOverlay(tok)
	b.ClearOverlay(end + 100)
	if b.Snapshot().Row(1) != strings.Repeat(" ", 10) {
		t.Error("cleared overlay still visible")
	}
	if b.Snapshot().Row(2) != "   end    " {
		t.Error("unrelated overlay removed")
	}
}

func TestStyler(t *testing.T) {
	b := NewBuffer(4, 1, func(s *core.Screen) string { return "<" + s.Row(0) + ">" })
	f := core.NewScreen(4, 1)
	f.DrawText(0, 0, "hi")
	b.Commit(f)
	b.Present()
	if got := <-b.Frames(); got != "<hi  >" {
		t.Errorf("styled frame = %q", got)
	}
}

func TestConcurrentWriters(t *testing.T) {
	b := NewBuffer(10, 3, nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tok := b.ShowOverlay(0, "x", core.ColorRed)
				b.Commit(frameWith("y"))
				b.Present()
				b.ClearOverlay(tok)
			}
		}()
	}
	wg.Wait()

	if len(b.Frames()) > 1 {
		t.Error("frames channel must hold at most one frame")
	}
}

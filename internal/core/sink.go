package core

// OverlayToken identifies an overlay shown on a Sink.
type OverlayToken uint64

// Sink receives drawn frames and pushes them to the terminal.
// Implementations must be safe for concurrent use: the loop, the active
// scene and background timers all write to the same sink.
type Sink interface {
	// Commit stores a copy of frame as the next content to present.
	Commit(frame *Screen)

	// ShowOverlay draws a one-line message centered over the frame on the
	// given row until it is cleared. Negative rows count from the bottom.
	// Returns a token for ClearOverlay.
	ShowOverlay(row int, text string, fg Color) OverlayToken

	// ClearOverlay removes an overlay. Unknown tokens are ignored.
	ClearOverlay(tok OverlayToken)

	// Present makes pending changes visible. It is a no-op when nothing changed.
	Present()
}

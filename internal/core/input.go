package core

import "fmt"

// KeyCode identifies a named (non-printable) key.
type KeyCode int

// Named key codes. KeyNone is carried by printable events and the sentinel.
const (
	KeyNone KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyDelete
	KeyHome
	KeyEnd
)

var keyNames = map[KeyCode]string{
	KeyUp:        "KEY_UP",
	KeyDown:      "KEY_DOWN",
	KeyLeft:      "KEY_LEFT",
	KeyRight:     "KEY_RIGHT",
	KeyEnter:     "KEY_ENTER",
	KeyEscape:    "KEY_ESCAPE",
	KeyBackspace: "KEY_BACKSPACE",
	KeyTab:       "KEY_TAB",
	KeyDelete:    "KEY_DELETE",
	KeyHome:      "KEY_HOME",
	KeyEnd:       "KEY_END",
}

// String returns the key name, e.g. "KEY_UP".
func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return ""
}

// InputEvent is one key press delivered to a scene.
// The zero value is the sentinel "no input yet" event.
type InputEvent struct {
	Text       string  // printable form, empty for named keys
	IsSequence bool    // true for named/control keys
	Code       KeyCode // set when IsSequence is true
}

// Empty returns the sentinel event.
func Empty() InputEvent {
	return InputEvent{}
}

// KeyEvent builds a named-key event.
func KeyEvent(code KeyCode) InputEvent {
	return InputEvent{IsSequence: true, Code: code}
}

// TextEvent builds a printable event.
func TextEvent(text string) InputEvent {
	return InputEvent{Text: text}
}

// IsEmpty reports whether e is the sentinel event.
func (e InputEvent) IsEmpty() bool {
	return e == InputEvent{}
}

// Name returns the key name for named keys, or "" for printable input.
func (e InputEvent) Name() string {
	if !e.IsSequence {
		return ""
	}
	return e.Code.String()
}

// Is reports whether the event is the printable text s or the named key s
// (e.g. " ", "q", "KEY_ENTER").
func (e InputEvent) Is(s string) bool {
	if e.IsSequence {
		return e.Code.String() == s
	}
	return e.Text == s
}

// String returns a readable form for logs.
func (e InputEvent) String() string {
	switch {
	case e.IsEmpty():
		return "<none>"
	case e.IsSequence:
		return fmt.Sprintf("%s(%d)", e.Name(), e.Code)
	default:
		return fmt.Sprintf("%q", e.Text)
	}
}

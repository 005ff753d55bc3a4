package scene

import (
	"errors"
	"fmt"
)

// ErrEmptySequence is returned when a sequence is built without scenes.
var ErrEmptySequence = errors.New("scene: empty sequence")

// Sequence is an ordered, forward-only cursor over scenes.
type Sequence struct {
	scenes []Scene
	pos    int
}

// NewSequence builds a sequence positioned on the first scene.
func NewSequence(scenes ...Scene) (*Sequence, error) {
	if len(scenes) == 0 {
		return nil, ErrEmptySequence
	}
	for i, s := range scenes {
		if s == nil {
			return nil, fmt.Errorf("scene: nil scene at position %d", i)
		}
	}
	return &Sequence{scenes: append([]Scene(nil), scenes...)}, nil
}

// Current returns the active scene, or nil once the sequence is exhausted.
func (s *Sequence) Current() Scene {
	if s.Done() {
		return nil
	}
	return s.scenes[s.pos]
}

// Advance moves to the next scene and returns it. It returns false when the
// sequence is exhausted; the cursor never moves back. The scene left behind
// is dropped from the sequence.
func (s *Sequence) Advance() (Scene, bool) {
	if s.Done() {
		return nil, false
	}
	s.scenes[s.pos] = nil
	s.pos++
	if s.Done() {
		return nil, false
	}
	return s.scenes[s.pos], true
}

// Done reports whether the sequence is exhausted.
func (s *Sequence) Done() bool {
	return s.pos >= len(s.scenes)
}

// Position returns the zero-based index of the current scene.
func (s *Sequence) Position() int {
	return s.pos
}

// Len returns the number of scenes the sequence was built with.
func (s *Sequence) Len() int {
	return len(s.scenes)
}

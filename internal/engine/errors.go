package engine

import (
	"errors"
	"fmt"
)

// ErrSceneFailed matches every error a scene raised while the loop ran it.
var ErrSceneFailed = errors.New("engine: scene failed")

// SceneError reports which scene failed and on which tick.
type SceneError struct {
	Scene string
	Tick  uint64
	Err   error
}

func (e *SceneError) Error() string {
	return fmt.Sprintf("engine: scene %q failed on tick %d: %v", e.Scene, e.Tick, e.Err)
}

func (e *SceneError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrSceneFailed.
func (e *SceneError) Is(target error) bool {
	return target == ErrSceneFailed
}

// panicError wraps a value recovered from a scene panic.
type panicError struct {
	value any
}

func (p panicError) Error() string {
	return fmt.Sprintf("panic: %v", p.value)
}

package core

// Signal is the control value a scene returns from one tick.
// The zero value, SignalContinue, means nothing happened.
type Signal int

const (
	SignalContinue Signal = iota
	SignalAdvance         // scene finished, move to the next one
	SignalReset           // restart the current scene
	SignalQuit            // end the run
	SignalPause           // stop time-based ticking until a key arrives
	SignalResume          // back to the fixed tick rate
	SignalLose            // scene failed, loop resets it
)

// String returns a human-readable name for the signal.
func (s Signal) String() string {
	switch s {
	case SignalContinue:
		return "Continue"
	case SignalAdvance:
		return "Advance"
	case SignalReset:
		return "Reset"
	case SignalQuit:
		return "Quit"
	case SignalPause:
		return "Pause"
	case SignalResume:
		return "Resume"
	case SignalLose:
		return "Lose"
	default:
		return "Unknown"
	}
}

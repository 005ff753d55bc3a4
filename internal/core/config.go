package core

// RuntimeConfig contains configuration passed to scenes at construction.
// Scenes capture the viewport size once and do not follow later resizes.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Loop ticks per second (default 20)
	Seed     int64 // RNG seed for generated mazes
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 20,
		Seed:     0, // 0 means use current time in platform layer
	}
}

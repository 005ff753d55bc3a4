package maze

import "github.com/vovakirdan/echomaze/internal/core"

// Default scoring and collision settings.
const (
	DefaultStartScore        = 200
	DefaultPenalty           = 0.05
	DefaultCollisionCooldown = 10 // ticks, half a second at 20 ticks/s
)

// Score drains while the player wanders outside boxes and drops harder on
// every wall hit.
type Score struct {
	Start   float64
	Penalty float64
	Value   float64
}

// NewScore returns a score at its starting value.
func NewScore(start, penalty float64) Score {
	return Score{Start: start, Penalty: penalty, Value: start}
}

// Tick applies the per-tick penalty unless the player is inside a box.
func (s *Score) Tick(insideBox bool) {
	if !insideBox {
		s.Value -= s.Penalty
	}
}

// Hit applies the collision penalty for the given collision count.
func (s *Score) Hit(collisions int) {
	s.Value -= float64(2 * collisions)
}

// Reset restores the starting value.
func (s *Score) Reset() {
	s.Value = s.Start
}

// Int returns the displayed score.
func (s Score) Int() int {
	return int(s.Value)
}

// Move is the outcome of a movement attempt.
type Move int

const (
	Moved   Move = iota
	Blocked      // wall in the way, still in cooldown
	Hit          // wall in the way, counted as a collision
)

// Player is the cursor the user steers through a maze.
type Player struct {
	Pos    core.Point
	Start  core.Point
	Facing core.Point
	Score  Score

	Collisions int
	// Cooldown is the minimum number of ticks between counted collisions.
	Cooldown uint64

	lastHit uint64
	hasHit  bool
}

// NewPlayer places a player on start.
func NewPlayer(start core.Point, score Score, cooldown uint64) *Player {
	return &Player{
		Pos:      start,
		Start:    start,
		Facing:   core.Pt(1, 0),
		Score:    score,
		Cooldown: cooldown,
	}
}

// Reset puts the player back on the start cell with a fresh score.
func (p *Player) Reset() {
	p.Pos = p.Start
	p.Facing = core.Pt(1, 0)
	p.Score.Reset()
	p.Collisions = 0
	p.lastHit = 0
	p.hasHit = false
}

// Step tries to move one cell in dir on tick.
func (p *Player) Step(m *Maze, dir core.Point, tick uint64) Move {
	p.Facing = dir
	target := p.Pos.Add(dir)
	if !m.Wall(target) {
		p.Pos = target
		return Moved
	}
	if p.hasHit && tick-p.lastHit <= p.Cooldown {
		return Blocked
	}
	p.Collisions++
	p.Score.Hit(p.Collisions)
	p.lastHit = tick
	p.hasHit = true
	return Hit
}

// Direction maps an arrow key to a unit step.
func Direction(code core.KeyCode) (core.Point, bool) {
	switch code {
	case core.KeyUp:
		return core.Pt(0, -1), true
	case core.KeyDown:
		return core.Pt(0, 1), true
	case core.KeyLeft:
		return core.Pt(-1, 0), true
	case core.KeyRight:
		return core.Pt(1, 0), true
	}
	return core.Point{}, false
}

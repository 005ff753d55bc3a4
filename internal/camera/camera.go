// Package camera computes the visible window of a 2-D map and plans eased
// transitions between window anchors.
package camera

import (
	"math"

	"github.com/vovakirdan/echomaze/internal/core"
)

// TransitionSteps is the number of waypoints in a styled transition.
const TransitionSteps = 10

// DefaultSize is the window edge used when no size is given.
const DefaultSize = 100

// Waypoint is one anchor position along a styled transition.
type Waypoint struct {
	X, Y float64
}

// Point rounds the waypoint to the nearest cell.
func (w Waypoint) Point() core.Point {
	return core.Pt(int(math.Round(w.X)), int(math.Round(w.Y)))
}

// Camera is a square window over a map grid.
// The grid is read-only from the camera's point of view.
type Camera struct {
	grid core.Grid

	// X, Y is the current anchor (top-left corner of the window).
	X, Y int
	// Size is the edge length of the window in cells.
	Size int
	// Quickness skips waypoints when stepping a planned path:
	// each Step consumes 1 + int(Quickness*TransitionSteps) waypoints.
	Quickness float64

	path []Waypoint
}

// Option configures a Camera.
type Option func(*Camera)

// WithPosition sets the initial anchor.
func WithPosition(x, y int) Option {
	return func(c *Camera) {
		c.X, c.Y = x, y
	}
}

// WithSize sets the window edge length.
func WithSize(size int) Option {
	return func(c *Camera) {
		c.Size = size
	}
}

// WithQuickness sets the transition quickness factor.
func WithQuickness(q float64) Option {
	return func(c *Camera) {
		c.Quickness = q
	}
}

// New creates a camera over grid.
func New(grid core.Grid, opts ...Option) *Camera {
	c := &Camera{
		grid: grid,
		Size: DefaultSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Size < 0 {
		c.Size = 0
	}
	return c
}

// Grid returns the full map.
func (c *Camera) Grid() core.Grid {
	return c.grid
}

// Window returns the bounds of the window anchored at (x, y), clipped to
// [0, rows-1] x [0, cols-1]. The far edges are exclusive, so the result is
// empty for an empty map or an anchor past the last row or column.
func (c *Camera) Window(x, y int) core.Rect {
	rows, cols := c.grid.Rows(), c.grid.Cols()
	if rows == 0 || cols == 0 {
		return core.Rect{}
	}

	yMin := core.Clip(0, y, rows-1)
	yMax := core.Clip(0, y+c.Size, rows-1)
	xMin := core.Clip(0, x, cols-1)
	xMax := core.Clip(0, x+c.Size, cols-1)

	return core.NewRect(xMin, yMin, xMax-xMin, yMax-yMin)
}

// SetPosition returns the part of the map visible from anchor (x, y).
// Rows of the result share storage with the map. The camera anchor is not
// changed; use MoveTo for that.
func (c *Camera) SetPosition(x, y int) core.Grid {
	w := c.Window(x, y)
	view := make(core.Grid, w.H)
	for i := range view {
		view[i] = c.grid[w.Y+i][w.X:w.Right()]
	}
	return view
}

// View returns the part of the map visible from the current anchor.
func (c *Camera) View() core.Grid {
	return c.SetPosition(c.X, c.Y)
}

// SetPositionStyled plans a transition from the current anchor to (x, y).
// It returns TransitionSteps waypoints sampled on an ease-in/ease-out sine
// curve; each waypoint adds the eased progress since the previous sample onto
// a running position, so the path moves monotonically toward the target.
// The camera itself is not moved.
func (c *Camera) SetPositionStyled(x, y int) []Waypoint {
	cx, cy := float64(c.X), float64(c.Y)
	dx, dy := float64(x)-cx, float64(y)-cy

	path := make([]Waypoint, 0, TransitionSteps)
	prev := 0.0
	for i := 0; i < TransitionSteps; i++ {
		eased := EaseInOutSine(float64(i+1) / TransitionSteps)
		cx += (eased - prev) * dx
		cy += (eased - prev) * dy
		prev = eased
		path = append(path, Waypoint{X: cx, Y: cy})
	}
	return path
}

// MoveTo sets the anchor immediately and drops any planned path.
func (c *Camera) MoveTo(x, y int) {
	c.X, c.Y = x, y
	c.path = nil
}

// Moving reports whether a planned path is still being stepped.
func (c *Camera) Moving() bool {
	return len(c.path) > 0
}

// Follow keeps target at least margin cells away from the window edges.
// When the target leaves that inner area a styled transition is planned
// toward the anchor that centers the target. Returns true if a path was planned.
func (c *Camera) Follow(target core.Point, margin int) bool {
	if c.Size == 0 {
		return false
	}
	margin = core.Clip(0, margin, (c.Size-1)/2)

	x, y := c.X, c.Y
	if c.Moving() {
		end := c.path[len(c.path)-1].Point()
		x, y = end.X, end.Y
	}
	inner := core.NewRect(x+margin, y+margin, c.Size-2*margin, c.Size-2*margin)
	if inner.ContainsPoint(target) {
		return false
	}

	ax := core.Clip(0, target.X-c.Size/2, core.Max(0, c.grid.Cols()-c.Size))
	ay := core.Clip(0, target.Y-c.Size/2, core.Max(0, c.grid.Rows()-c.Size))
	if ax == x && ay == y {
		return false
	}
	c.path = c.SetPositionStyled(ax, ay)
	return true
}

// Step advances the anchor along the planned path. Returns false when idle.
func (c *Camera) Step() bool {
	if len(c.path) == 0 {
		return false
	}
	n := core.Clip(1, 1+int(c.Quickness*TransitionSteps), len(c.path))
	p := c.path[n-1].Point()
	c.X, c.Y = p.X, p.Y
	c.path = c.path[n:]
	return true
}

// Package maze models the wall matrix a level is played on, generates random
// perfect mazes and tracks the player moving through them.
package maze

import (
	"github.com/vovakirdan/echomaze/internal/core"
)

// Map symbols used by level files.
const (
	WallRune  = '#'
	StartRune = 'S'
	EndRune   = 'E'
	FloorRune = ' '
)

// connection bits for wall glyph selection
const (
	connN = 1 << iota
	connS
	connE
	connW
)

var glyphByConnections = [16]rune{
	0:                             '·',
	connN:                         '╵',
	connS:                         '╷',
	connE:                         '╶',
	connW:                         '╴',
	connN | connS:                 '│',
	connE | connW:                 '─',
	connN | connE:                 '└',
	connN | connW:                 '┘',
	connS | connE:                 '┌',
	connS | connW:                 '┐',
	connN | connS | connE:         '├',
	connN | connS | connW:         '┤',
	connE | connW | connN:         '┴',
	connE | connW | connS:         '┬',
	connN | connS | connE | connW: '┼',
}

// Maze is a rows x cols wall matrix with start and end cells.
type Maze struct {
	walls [][]bool
	rows  int
	cols  int

	Start core.Point
	Ends  []core.Point
}

// New creates a maze of the given size with no walls.
func New(rows, cols int) *Maze {
	rows, cols = core.Max(rows, 0), core.Max(cols, 0)
	walls := make([][]bool, rows)
	for y := range walls {
		walls[y] = make([]bool, cols)
	}
	return &Maze{walls: walls, rows: rows, cols: cols}
}

// FromGrid builds a maze from map rows. WallRune and box-drawing glyphs are
// walls; StartRune and EndRune mark the start and end cells.
func FromGrid(g core.Grid) *Maze {
	m := New(g.Rows(), g.Cols())
	for y := 0; y < m.rows; y++ {
		for x := 0; x < m.cols; x++ {
			switch r := g.At(x, y); {
			case r == StartRune:
				m.Start = core.Pt(x, y)
			case r == EndRune:
				m.Ends = append(m.Ends, core.Pt(x, y))
			case isWallRune(r):
				m.walls[y][x] = true
			}
		}
	}
	return m
}

func isWallRune(r rune) bool {
	if r == WallRune {
		return true
	}
	for _, g := range glyphByConnections {
		if r == g {
			return true
		}
	}
	return false
}

// Rows returns the number of rows.
func (m *Maze) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Maze) Cols() int { return m.cols }

// Inside reports whether p lies on the matrix.
func (m *Maze) Inside(p core.Point) bool {
	return p.X >= 0 && p.X < m.cols && p.Y >= 0 && p.Y < m.rows
}

// Wall reports whether p is a wall. Cells off the matrix count as walls.
func (m *Maze) Wall(p core.Point) bool {
	if !m.Inside(p) {
		return true
	}
	return m.walls[p.Y][p.X]
}

// SetWall sets or clears a wall. Points off the matrix are ignored.
func (m *Maze) SetWall(p core.Point, wall bool) {
	if m.Inside(p) {
		m.walls[p.Y][p.X] = wall
	}
}

// IsEnd reports whether p is one of the end cells.
func (m *Maze) IsEnd(p core.Point) bool {
	for _, e := range m.Ends {
		if e == p {
			return true
		}
	}
	return false
}

// DistanceToWall counts the open cells from p (exclusive) in direction dir
// until the next wall.
func (m *Maze) DistanceToWall(p, dir core.Point) int {
	if dir == (core.Point{}) {
		return 0
	}
	n := 0
	for q := p.Add(dir); !m.Wall(q); q = q.Add(dir) {
		n++
	}
	return n
}

// Glyph returns the box-drawing rune for the wall at p, or FloorRune.
func (m *Maze) Glyph(p core.Point) rune {
	if !m.Inside(p) || !m.walls[p.Y][p.X] {
		return FloorRune
	}
	return glyphByConnections[m.connections(p)]
}

func (m *Maze) connections(p core.Point) int {
	c := 0
	if m.wallAt(p.X, p.Y-1) {
		c |= connN
	}
	if m.wallAt(p.X, p.Y+1) {
		c |= connS
	}
	if m.wallAt(p.X+1, p.Y) {
		c |= connE
	}
	if m.wallAt(p.X-1, p.Y) {
		c |= connW
	}
	return c
}

// wallAt is Wall without the off-matrix rule, so border walls do not
// connect to the outside.
func (m *Maze) wallAt(x, y int) bool {
	return x >= 0 && x < m.cols && y >= 0 && y < m.rows && m.walls[y][x]
}

// Glyphs renders the maze with each cell two columns wide. The second column
// continues east-facing walls so corridors look square on a terminal.
func (m *Maze) Glyphs() core.Grid {
	g := make(core.Grid, m.rows)
	for y := range g {
		g[y] = make([]rune, 2*m.cols)
		for x := 0; x < m.cols; x++ {
			p := core.Pt(x, y)
			g[y][2*x] = m.Glyph(p)
			g[y][2*x+1] = FloorRune
			if m.walls[y][x] && m.wallAt(x+1, y) {
				g[y][2*x+1] = '─'
			}
		}
	}
	return g
}

// Grid returns the maze in level-file notation.
func (m *Maze) Grid() core.Grid {
	g := make(core.Grid, m.rows)
	for y := range g {
		g[y] = make([]rune, m.cols)
		for x := range g[y] {
			if m.walls[y][x] {
				g[y][x] = WallRune
			} else {
				g[y][x] = FloorRune
			}
		}
	}
	if m.Inside(m.Start) {
		g[m.Start.Y][m.Start.X] = StartRune
	}
	for _, e := range m.Ends {
		if m.Inside(e) {
			g[e.Y][e.X] = EndRune
		}
	}
	return g
}

package levels

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/echomaze/internal/core"
	"github.com/vovakirdan/echomaze/internal/levels/formats"
	"github.com/vovakirdan/echomaze/internal/maze"
)

// Box is a colored region of the map. While the player stands in it, the
// Reveal area of the maze is visible and the score does not drain.
type Box struct {
	Color  core.Color
	Rect   core.Rect
	Reveal core.Rect
}

// Dialogue is a message triggered by stepping on a cell.
type Dialogue struct {
	At   core.Point
	Text string
}

// Level is a validated level definition.
type Level struct {
	ID       string
	Name     string
	Map      core.Grid
	Start    core.Point
	Ends     []core.Point
	Boxes    []Box
	Dialogue []Dialogue
	// Source is the file the level came from, "builtin:<file>" for embedded levels.
	Source string
}

// Title returns the display name.
func (l *Level) Title() string {
	if l.Name == "" {
		return "Level " + l.ID
	}
	return l.Name
}

// Maze builds the wall matrix for the level.
func (l *Level) Maze() *maze.Maze {
	m := maze.FromGrid(l.Map)
	m.Start = l.Start
	m.Ends = append([]core.Point(nil), l.Ends...)
	return m
}

// BoxAt returns the box containing p.
func (l *Level) BoxAt(p core.Point) (Box, bool) {
	for _, b := range l.Boxes {
		if b.Rect.ContainsPoint(p) {
			return b, true
		}
	}
	return Box{}, false
}

// fromFormat converts and validates a parsed file. Problems are reported as
// ErrInvalid.
func fromFormat(f formats.Level, id string) (Level, error) {
	if f.ID != "" {
		id = f.ID
	}
	lvl := Level{ID: id, Name: f.Name, Map: core.GridFromRows(f.Map)}

	invalid := func(format string, args ...any) (Level, error) {
		return Level{}, fmt.Errorf("%w: level %s: %s", ErrInvalid, id, fmt.Sprintf(format, args...))
	}

	if lvl.Map.Rows() == 0 || lvl.Map.Cols() == 0 {
		return invalid("empty map")
	}
	m := maze.FromGrid(lvl.Map)
	bounds := core.NewRect(0, 0, m.Cols(), m.Rows())

	open := func(p core.Point) bool { return m.Inside(p) && !m.Wall(p) }

	switch {
	case f.Start != nil:
		p, ok := point(f.Start)
		if !ok {
			return invalid("start must be [x, y]")
		}
		lvl.Start = p
	case strings.ContainsRune(strings.Join(f.Map, ""), maze.StartRune):
		lvl.Start = m.Start
	default:
		return invalid("no start cell")
	}
	if !open(lvl.Start) {
		return invalid("start %v is not an open cell", lvl.Start)
	}

	lvl.Ends = append(lvl.Ends, m.Ends...)
	for _, e := range f.Ends {
		p, ok := point(e)
		if !ok {
			return invalid("ends must be [x, y] pairs")
		}
		if !m.IsEnd(p) {
			lvl.Ends = append(lvl.Ends, p)
		}
	}
	if len(lvl.Ends) == 0 {
		return invalid("no end cell")
	}
	for _, e := range lvl.Ends {
		if !open(e) {
			return invalid("end %v is not an open cell", e)
		}
	}

	for i, fb := range f.Boxes {
		color, ok := core.ParseColor(fb.Color)
		if !ok {
			return invalid("box %d: unknown color %q", i, fb.Color)
		}
		at, ok := point(fb.At)
		if !ok {
			return invalid("box %d: at must be [x, y]", i)
		}
		size := core.Pt(1, 1)
		if fb.Size != nil {
			if size, ok = point(fb.Size); !ok || size.X <= 0 || size.Y <= 0 {
				return invalid("box %d: size must be [w, h] > 0", i)
			}
		}
		b := Box{Color: color, Rect: core.NewRect(at.X, at.Y, size.X, size.Y), Reveal: bounds}
		if !contains(bounds, b.Rect) {
			return invalid("box %d: outside the map", i)
		}
		if fb.Reveal != nil {
			if len(fb.Reveal) != 4 {
				return invalid("box %d: reveal must be [x, y, w, h]", i)
			}
			b.Reveal = core.NewRect(fb.Reveal[0], fb.Reveal[1], fb.Reveal[2], fb.Reveal[3])
			if b.Reveal.Empty() || !contains(bounds, b.Reveal) {
				return invalid("box %d: reveal area empty or outside the map", i)
			}
		}
		for j, other := range lvl.Boxes {
			if other.Rect.Intersects(b.Rect) {
				return invalid("box %d overlaps box %d", i, j)
			}
		}
		lvl.Boxes = append(lvl.Boxes, b)
	}

	for i, fd := range f.Dialogue {
		at, ok := point(fd.At)
		if !ok || !m.Inside(at) {
			return invalid("dialogue %d: at must be a cell of the map", i)
		}
		lvl.Dialogue = append(lvl.Dialogue, Dialogue{At: at, Text: fd.Text})
	}

	return lvl, nil
}

func point(v []int) (core.Point, bool) {
	if len(v) != 2 {
		return core.Point{}, false
	}
	return core.Pt(v[0], v[1]), true
}

func contains(outer, inner core.Rect) bool {
	return inner.X >= outer.X && inner.Y >= outer.Y &&
		inner.Right() <= outer.Right() && inner.Bottom() <= outer.Bottom()
}
